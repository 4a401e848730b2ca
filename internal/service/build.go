package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/MKhiriev/frontkit/internal/bundler"
	"github.com/MKhiriev/frontkit/internal/descriptor"
	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/internal/report"
	"github.com/MKhiriev/frontkit/internal/store"
	"github.com/MKhiriev/frontkit/models"
)

// BuildReport is the outcome of a production build.
type BuildReport struct {
	OutDir  string
	Rows    []report.Row
	Summary report.Summary
	Public  []string
	Took    time.Duration
	Record  models.BuildRecord
}

type buildService struct {
	fs         afero.Fs
	repository store.BuildRepository
	printer    *report.Printer
	logger     *logger.Logger
	now        func() time.Time
}

// NewBuildService constructs a [BuildService]. repository and printer may be
// nil to skip the history and the report table.
func NewBuildService(fs afero.Fs, repository store.BuildRepository, printer *report.Printer, logger *logger.Logger) BuildService {
	return &buildService{
		fs:         fs,
		repository: repository,
		printer:    printer,
		logger:     logger,
		now:        time.Now,
	}
}

// Build implements [BuildService]: empty the output dir, bundle, write the
// outputs and index.html, copy the public dir, print the report and record
// the build in the history.
//
// A failing history store only logs a warning.
func (s *buildService) Build(ctx context.Context, desc *descriptor.Descriptor) (BuildReport, error) {
	start := s.now()
	outDir := desc.OutDirPath()

	s.logger.Info().
		Str("mode", desc.Mode).
		Str("target", desc.Build.Target).
		Msg("building for " + desc.Mode)

	if desc.Build.EmptyOutDir {
		err := bundler.EmptyDir(s.fs, desc.Root, outDir)
		switch {
		case errors.Is(err, bundler.ErrOutsideRoot):
			s.logger.Warn().Str("out_dir", outDir).Msg("out dir is not inside the project root and will not be emptied")
		case err != nil:
			return BuildReport{}, fmt.Errorf("empty out dir: %w", err)
		}
	}

	res, err := bundler.Build(ctx, desc, bundler.TargetBuild)
	if err != nil {
		return BuildReport{}, err
	}
	for _, w := range res.Warnings {
		s.logger.Warn().Msg(w)
	}

	index, err := bundler.ReadIndex(desc.Root)
	if err != nil {
		return BuildReport{}, err
	}
	index, err = bundler.TransformHTML(index, res, bundler.HTMLOptions{
		Base:         desc.Base,
		Replacements: desc.HTMLReplacements(),
	})
	if err != nil {
		return BuildReport{}, err
	}

	files := append(res.Files, bundler.OutputFile{
		Path:     bundler.IndexHTML,
		Contents: index,
		Kind:     bundler.KindHTML,
	})
	if err = bundler.WriteOutputs(s.fs, outDir, files); err != nil {
		return BuildReport{}, err
	}

	public, err := bundler.CopyDir(s.fs, desc.PublicDirPath(), outDir)
	if err != nil {
		return BuildReport{}, err
	}

	rows, sum, err := report.Compute(ctx, files, desc.Build.ChunkSizeWarningLimit)
	if err != nil {
		return BuildReport{}, err
	}
	took := s.now().Sub(start)

	if s.printer != nil {
		s.printer.Print(displayDir(desc.Root, outDir), rows, sum, took, desc.Build.ChunkSizeWarningLimit)
	}

	record := models.NewBuildRecord(desc.Mode, desc.Build.OutDir, start)
	record.Duration = took
	record.Files = sum.Files
	record.TotalBytes = sum.TotalBytes
	record.GzipBytes = sum.GzipBytes
	record.Warnings = sum.Warnings

	if s.repository != nil {
		if err = s.repository.Save(ctx, record); err != nil {
			s.logger.Warn().Err(err).Msg("build history was not recorded")
		}
	}

	return BuildReport{
		OutDir:  outDir,
		Rows:    rows,
		Summary: sum,
		Public:  public,
		Took:    took,
		Record:  record,
	}, nil
}

// displayDir returns outDir relative to root when it is inside it.
func displayDir(root, outDir string) string {
	if rel, err := filepath.Rel(root, outDir); err == nil && bundler.Inside(root, outDir) {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(outDir)
}
