package http

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/frontkit/internal/bundler"
	"github.com/MKhiriev/frontkit/internal/clientenv"
	"github.com/MKhiriev/frontkit/internal/descriptor"
	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/internal/service"
)

const projectRoot = "/project"

var builtAt = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

// newTestHandler creates a Handler with a nop logger for middleware tests.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

func newDescriptor(t *testing.T, mode string, env map[string]string) *descriptor.Descriptor {
	t.Helper()
	desc, err := descriptor.Define(mode, clientenv.FromMap(env),
		descriptor.WithRoot(projectRoot),
		descriptor.WithVersion("1.2.3"),
		descriptor.WithClock(func() time.Time { return builtAt }),
	)
	require.NoError(t, err)
	return desc
}

// fakeDev is a DevService over a fixed descriptor. Tests fill its asset
// store and publish to its hub directly.
type fakeDev struct {
	desc   *descriptor.Descriptor
	assets *service.AssetStore
	hub    *service.Hub
	status service.BuildStatus
}

func newFakeDev(desc *descriptor.Descriptor) *fakeDev {
	return &fakeDev{
		desc:   desc,
		assets: service.NewAssetStore(),
		hub:    service.NewHub(),
	}
}

func (f *fakeDev) Start(context.Context) error        { return nil }
func (f *fakeDev) Restart(context.Context) error      { return nil }
func (f *fakeDev) Descriptor() *descriptor.Descriptor { return f.desc }
func (f *fakeDev) Assets() *service.AssetStore        { return f.assets }
func (f *fakeDev) Events() *service.Hub               { return f.hub }
func (f *fakeDev) Status() service.BuildStatus        { return f.status }
func (f *fakeDev) Close()                             { f.hub.Close() }

func (f *fakeDev) build(files ...bundler.OutputFile) uint64 {
	return f.assets.Replace(&bundler.Result{Files: files}, []byte("<html><body>app</body></html>"), builtAt)
}

func writeFile(t *testing.T, fs afero.Fs, path, contents string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(contents), 0o644))
}
