// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/frontkit/internal/bundler"
	"github.com/MKhiriev/frontkit/internal/descriptor"
	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/internal/mock"
	"github.com/MKhiriev/frontkit/internal/report"
	"github.com/MKhiriev/frontkit/models"
)

func newTestBuildService(repo *mock.MockBuildRepository, out *bytes.Buffer) *buildService {
	svc := NewBuildService(afero.NewOsFs(), repo, report.NewPrinter(out, false), logger.Nop()).(*buildService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestBuildService_WritesOutputsAndRecordsHistory(t *testing.T) {
	root := writeProject(t, sampleProject())
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dist"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dist", "stale.txt"), []byte("old"), 0o600))

	ctrl := gomock.NewController(t)
	repo := mock.NewMockBuildRepository(ctrl)

	var saved models.BuildRecord
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r models.BuildRecord) error {
		saved = r
		return nil
	})

	var out bytes.Buffer
	svc := newTestBuildService(repo, &out)
	desc := loadDescriptor(t, descriptor.ModeProduction, root)

	rep, err := svc.Build(context.Background(), desc)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "dist"), rep.OutDir)
	assert.NoFileExists(t, filepath.Join(root, "dist", "stale.txt"))
	assert.FileExists(t, filepath.Join(root, "dist", "robots.txt"))
	assert.Equal(t, []string{"robots.txt"}, rep.Public)

	index, err := os.ReadFile(filepath.Join(root, "dist", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "<title>production</title>")
	assert.Contains(t, string(index), `rel="stylesheet"`)
	assert.NotContains(t, string(index), ClientScriptPath)

	var js []byte
	for _, r := range rep.Rows {
		if r.Kind == bundler.KindJS {
			js, err = os.ReadFile(filepath.Join(root, "dist", filepath.FromSlash(r.Path)))
			require.NoError(t, err)
		}
	}
	require.NotNil(t, js)
	assert.NotContains(t, string(js), "booting")

	assert.Equal(t, "production", saved.Mode)
	assert.Equal(t, "dist", saved.OutDir)
	assert.Equal(t, fixedNow, saved.StartedAt)
	assert.Equal(t, rep.Summary.Files, saved.Files)
	assert.Equal(t, rep.Summary.TotalBytes, saved.TotalBytes)
	assert.Equal(t, rep.Record.ID, saved.ID)

	assert.Contains(t, out.String(), "dist/index.html")
	assert.Contains(t, out.String(), "✓ built")
}

func TestBuildService_HistoryFailureIsNotFatal(t *testing.T) {
	root := writeProject(t, sampleProject())

	ctrl := gomock.NewController(t)
	repo := mock.NewMockBuildRepository(ctrl)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("database is locked"))

	var out bytes.Buffer
	_, err := newTestBuildService(repo, &out).Build(context.Background(), loadDescriptor(t, descriptor.ModeProduction, root))
	assert.NoError(t, err)
}

func TestBuildService_NilRepositoryAndPrinter(t *testing.T) {
	root := writeProject(t, sampleProject())

	svc := NewBuildService(afero.NewOsFs(), nil, nil, logger.Nop())
	rep, err := svc.Build(context.Background(), loadDescriptor(t, descriptor.ModeProduction, root))
	require.NoError(t, err)
	assert.Positive(t, rep.Summary.Files)
}

func TestBuildService_SyntaxErrorSkipsHistory(t *testing.T) {
	files := sampleProject()
	files["src/main.js"] = "export const = ;"
	root := writeProject(t, files)

	ctrl := gomock.NewController(t)
	repo := mock.NewMockBuildRepository(ctrl)

	var out bytes.Buffer
	_, err := newTestBuildService(repo, &out).Build(context.Background(), loadDescriptor(t, descriptor.ModeProduction, root))

	var buildErr *bundler.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.NotEmpty(t, buildErr.Texts())
	assert.NoDirExists(t, filepath.Join(root, "dist", "assets"))
}

func TestBuildService_OutDirOutsideRootIsNotEmptied(t *testing.T) {
	root := writeProject(t, sampleProject())
	outside := filepath.Join(t.TempDir(), "shared")
	require.NoError(t, os.MkdirAll(outside, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "keep.txt"), []byte("keep"), 0o600))

	desc := loadDescriptor(t, descriptor.ModeProduction, root)
	desc.Build.OutDir = outside

	svc := NewBuildService(afero.NewOsFs(), nil, nil, logger.Nop())
	_, err := svc.Build(context.Background(), desc)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outside, "keep.txt"))
	assert.FileExists(t, filepath.Join(outside, "index.html"))
}

func TestDisplayDir(t *testing.T) {
	assert.Equal(t, "dist", displayDir("/app", "/app/dist"))
	assert.Equal(t, "/srv/out", displayDir("/app", "/srv/out"))
}
