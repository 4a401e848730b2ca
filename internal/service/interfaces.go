// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the dev, build and preview workflows on top of
// the descriptor, the bundler and the history store.
package service

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/frontkit/internal/descriptor"
)

// DescriptorLoader produces a fresh descriptor, reading the client env again.
type DescriptorLoader interface {
	Load() (*descriptor.Descriptor, error)
}

// RebuildObserver receives the outcome of every dev rebuild.
type RebuildObserver interface {
	ObserveRebuild(took time.Duration, failed bool)
}

// DevService runs the watch build behind the dev server.
type DevService interface {
	// Start loads the descriptor and runs the first build. Later builds are
	// triggered by source changes.
	Start(ctx context.Context) error
	// Restart re-reads the env and the descriptor and recreates the watcher.
	Restart(ctx context.Context) error
	// Descriptor returns the descriptor of the running watcher.
	Descriptor() *descriptor.Descriptor
	// Assets returns the outputs of the latest successful build.
	Assets() *AssetStore
	// Events returns the live reload hub.
	Events() *Hub
	// Status reports the latest build.
	Status() BuildStatus
	// Close stops the watcher and disconnects every subscriber.
	Close()
}

// BuildService runs one production build.
type BuildService interface {
	Build(ctx context.Context, desc *descriptor.Descriptor) (BuildReport, error)
}

// PreviewService exposes a finished build.
type PreviewService interface {
	// Dir is the absolute output directory.
	Dir() string
	// FileSystem serves the output directory.
	FileSystem() http.FileSystem
	// Index returns the built index.html.
	Index() ([]byte, error)
}
