package service

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/MKhiriev/frontkit/internal/bundler"
	"github.com/MKhiriev/frontkit/internal/descriptor"
	"github.com/MKhiriev/frontkit/internal/logger"
)

type previewService struct {
	fs     afero.Fs
	dir    string
	logger *logger.Logger
}

// NewPreviewService checks that the build output of desc exists and returns
// a [PreviewService] over it. A missing output dir is [ErrOutDirMissing].
func NewPreviewService(fs afero.Fs, desc *descriptor.Descriptor, logger *logger.Logger) (PreviewService, error) {
	dir := desc.OutDirPath()

	ok, err := afero.DirExists(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutDirMissing, dir)
	}
	if ok, _ = afero.Exists(fs, filepath.Join(dir, bundler.IndexHTML)); !ok {
		logger.Warn().Str("out_dir", dir).Msg("index.html is missing from the build output")
	}

	return &previewService{fs: fs, dir: dir, logger: logger}, nil
}

// Dir implements [PreviewService].
func (s *previewService) Dir() string {
	return s.dir
}

// FileSystem implements [PreviewService].
func (s *previewService) FileSystem() http.FileSystem {
	return afero.NewHttpFs(afero.NewBasePathFs(s.fs, s.dir))
}

// Index implements [PreviewService].
func (s *previewService) Index() ([]byte, error) {
	return afero.ReadFile(s.fs, filepath.Join(s.dir, bundler.IndexHTML))
}
