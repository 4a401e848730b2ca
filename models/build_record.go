// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/google/uuid"
)

// BuildRecord is one row of the build history: what was built, in which mode,
// how long it took and how big the result was.
type BuildRecord struct {
	ID         uuid.UUID
	Mode       string
	OutDir     string
	StartedAt  time.Time
	Duration   time.Duration
	Files      int
	TotalBytes int64
	GzipBytes  int64
	Warnings   int
}

// NewBuildRecord returns a record with a fresh ID and the given start time.
func NewBuildRecord(mode, outDir string, startedAt time.Time) BuildRecord {
	return BuildRecord{
		ID:        uuid.New(),
		Mode:      mode,
		OutDir:    outDir,
		StartedAt: startedAt.UTC(),
	}
}
