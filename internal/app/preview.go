package app

import (
	"context"
	"errors"

	"github.com/MKhiriev/frontkit/internal/descriptor"
	handler "github.com/MKhiriev/frontkit/internal/handler/http"
	"github.com/MKhiriev/frontkit/internal/server"
	"github.com/MKhiriev/frontkit/internal/service"
)

// Preview serves the finished build until ctx is canceled or a stop signal
// arrives.
func (a *App) Preview(ctx context.Context) error {
	desc, err := a.Descriptor(descriptor.ModeProduction)
	if err != nil {
		return err
	}

	preview, err := service.NewPreviewService(a.fs, desc, a.logger)
	if err != nil {
		if errors.Is(err, service.ErrOutDirMissing) {
			a.logger.Error().Msg(`no build found, run "frontkit build" first`)
		}
		return err
	}

	h := handler.NewPreviewHandler(preview, desc, a.logger)
	srv, err := server.NewServer("preview", h.InitPreview(), server.Config{
		Host:       desc.Preview.Host,
		Port:       desc.Preview.Port,
		StrictPort: desc.Preview.StrictPort,
		Base:       desc.Base,
	}, a.logger)
	if err != nil {
		return err
	}

	a.printURLs("preview server running", srv.URLs())
	return srv.RunServer(ctx)
}
