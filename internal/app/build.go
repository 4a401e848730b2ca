package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/MKhiriev/frontkit/internal/descriptor"
	"github.com/MKhiriev/frontkit/internal/report"
	"github.com/MKhiriev/frontkit/internal/service"
	"github.com/MKhiriev/frontkit/internal/store"
	"github.com/MKhiriev/frontkit/models"
)

// Build runs one production build and records it in the history.
func (a *App) Build(ctx context.Context) (service.BuildReport, error) {
	desc, err := a.Descriptor(descriptor.ModeProduction)
	if err != nil {
		return service.BuildReport{}, err
	}

	var repository store.BuildRepository
	repos, err := store.NewRepositories(ctx, a.cfg.Storage.DB.DSN, desc.CacheDirPath(), a.logger)
	switch {
	case errors.Is(err, store.ErrHistoryDisabled):
		a.logger.Debug().Msg("build history is disabled")
	case err != nil:
		a.logger.Warn().Err(err).Msg("build history is unavailable, the build is not recorded")
	default:
		defer repos.Close()
		repository = repos.BuildRepository
	}

	printer := report.NewPrinter(a.stdout, !color.NoColor && a.terminal != nil)
	return service.NewBuildService(a.fs, repository, printer, a.logger).Build(ctx, desc)
}

// History returns up to limit recent builds, newest first.
func (a *App) History(ctx context.Context, limit int) ([]models.BuildRecord, error) {
	desc, err := a.Descriptor(descriptor.ModeProduction)
	if err != nil {
		return nil, err
	}

	repos, err := store.NewRepositories(ctx, a.cfg.Storage.DB.DSN, desc.CacheDirPath(), a.logger)
	if err != nil {
		return nil, err
	}
	defer repos.Close()

	records, err := repos.BuildRepository.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	return records, nil
}
