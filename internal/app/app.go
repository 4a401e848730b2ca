package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/MKhiriev/frontkit/internal/config"
	"github.com/MKhiriev/frontkit/internal/descriptor"
	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/internal/service"
	"github.com/MKhiriev/frontkit/models"
)

// App runs the frontkit commands for one resolved tool configuration.
type App struct {
	cfg    *config.StructuredConfig
	info   models.AppBuildInfo
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
	logger *logger.Logger

	// terminal is the file behind stdout, nil when stdout is not a file.
	terminal *os.File
	opts     []descriptor.Option
}

// Option customizes [New].
type Option func(*App)

// WithFs replaces the disk filesystem.
func WithFs(fs afero.Fs) Option {
	return func(a *App) {
		a.fs = fs
	}
}

// WithDescriptorOptions passes opts to every descriptor the app defines.
func WithDescriptorOptions(opts ...descriptor.Option) Option {
	return func(a *App) {
		a.opts = append(a.opts, opts...)
	}
}

// New returns an App writing command output to stdout and stderr.
func New(cfg *config.StructuredConfig, info models.AppBuildInfo, stdout, stderr io.Writer, logger *logger.Logger, opts ...Option) *App {
	a := &App{
		cfg:    cfg,
		info:   info,
		fs:     afero.NewOsFs(),
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
	if f, ok := stdout.(*os.File); ok {
		a.terminal = f
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Root returns the absolute project root.
func (a *App) Root() (string, error) {
	root, err := filepath.Abs(a.cfg.App.Root)
	if err != nil {
		return "", fmt.Errorf("resolve project root: %w", err)
	}
	return root, nil
}

// Mode returns the configured mode, or fallback when none is set.
func (a *App) Mode(fallback string) string {
	if a.cfg.App.Mode != "" {
		return a.cfg.App.Mode
	}
	return fallback
}

// Loader returns a descriptor loader for the command's default mode.
func (a *App) Loader(defaultMode string) (service.DescriptorLoader, error) {
	root, err := a.Root()
	if err != nil {
		return nil, err
	}
	return service.NewDescriptorLoader(a.Mode(defaultMode), root, a.cfg.DescriptorOverrides(), a.opts...), nil
}

// Descriptor loads the descriptor for the command's default mode.
func (a *App) Descriptor(defaultMode string) (*descriptor.Descriptor, error) {
	loader, err := a.Loader(defaultMode)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

// serverWorker adapts a server to a worker that ends its group when the
// server stops.
type serverWorker struct {
	run func(ctx context.Context) error
}

func (w serverWorker) Run(ctx context.Context) error {
	if err := w.run(ctx); err != nil {
		return err
	}
	return errServerStopped
}
