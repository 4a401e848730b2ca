// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background tasks of the dev command next to the
// server.
//
// It defines the Worker interface and a Workers aggregate that runs every
// worker concurrently and stops them together.
package workers

import "context"

// Worker is a background task. Run blocks until ctx is canceled or the task
// is done. A returned error stops the other workers of the same [Workers].
type Worker interface {
	Run(ctx context.Context) error
}

// Restarter is restarted by [EnvWatcher] when a watched file changes.
type Restarter interface {
	Restart(ctx context.Context) error
}
