package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/frontkit/internal/adapter"
	"github.com/MKhiriev/frontkit/internal/descriptor"
	handler "github.com/MKhiriev/frontkit/internal/handler/http"
	"github.com/MKhiriev/frontkit/internal/metrics"
	"github.com/MKhiriev/frontkit/internal/server"
	"github.com/MKhiriev/frontkit/internal/service"
	"github.com/MKhiriev/frontkit/internal/tui"
	"github.com/MKhiriev/frontkit/internal/utils"
	"github.com/MKhiriev/frontkit/internal/workers"
)

// Dev runs the dev server until ctx is canceled, a stop signal arrives or
// the user quits the terminal UI.
func (a *App) Dev(ctx context.Context) error {
	root, err := a.Root()
	if err != nil {
		return err
	}
	mode := a.Mode(descriptor.ModeDevelopment)
	loader, err := a.Loader(descriptor.ModeDevelopment)
	if err != nil {
		return err
	}

	log := a.logger
	useTUI := tui.Enabled(a.cfg.App.NoTUI, a.terminal)
	var logs *tui.LogBuffer
	if useTUI {
		logs = tui.NewLogBuffer(tui.DefaultLogLines)
		log = log.WithOutput(zerolog.ConsoleWriter{Out: logs, TimeFormat: time.TimeOnly, NoColor: true})
	}

	m := metrics.New()
	dev := service.NewDevService(loader, a.fs, m, log)
	if err = dev.Start(ctx); err != nil {
		dev.Close()
		return fmt.Errorf("start dev server: %w", err)
	}
	desc := dev.Descriptor()

	h := handler.NewDevHandler(dev, a.fs, m, log)
	srv, err := server.NewServer("dev", h.InitDev(), server.Config{
		Host:       desc.Server.Host,
		Port:       desc.Server.Port,
		StrictPort: desc.Server.StrictPort,
		Base:       desc.Base,
	}, log, server.WithOnShutdown(dev.Close))
	if err != nil {
		dev.Close()
		return err
	}

	urls := srv.URLs()
	if !useTUI {
		a.printURLs("dev server running", urls)
	}
	if desc.Server.Open {
		if err := utils.OpenBrowser(urls.Local); err != nil {
			log.Warn().Err(err).Msg("could not open the browser")
		}
	}

	checker := adapter.NewHTTPUpstreamChecker(adapter.CheckerConfig{Timeout: a.cfg.Adapter.CheckTimeout}, log)
	ws := []workers.Worker{
		serverWorker{run: srv.RunServer},
		workers.NewEnvWatcher(root, mode, a.cfg.FilePath, dev, log).WithDebounce(a.cfg.Workers.Debounce),
		workers.NewUpstreamWorker(checker, desc.ProxyTable(), log),
	}
	if useTUI {
		ws = append(ws, tui.New(dev, urls, a.info, logs, log))
	}

	err = workers.NewWorkers(ws...).Run(ctx)
	srv.Shutdown()
	if errors.Is(err, errServerStopped) || errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	return err
}

func (a *App) printURLs(title string, urls server.URLs) {
	fmt.Fprintf(a.stdout, "\n  %s\n\n", title)
	fmt.Fprintf(a.stdout, "  Local:   %s\n", urls.Local)
	for _, u := range urls.Network {
		fmt.Fprintf(a.stdout, "  Network: %s\n", u)
	}
	fmt.Fprintln(a.stdout)
}
