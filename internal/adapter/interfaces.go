// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the outside services frontkit depends on.
//
// Its only client today is [UpstreamChecker], which checks whether a proxy
// target answers before the dev server starts forwarding to it.
package adapter

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/upstream_checker_mock.go -package=mock

// UpstreamChecker checks proxy targets.
type UpstreamChecker interface {
	// Check sends one HEAD request to target. Any HTTP response, whatever its
	// status, counts as reachable. A transport failure returns
	// [ErrUpstreamUnreachable].
	Check(ctx context.Context, target string) (Status, error)
}

// Status is the outcome of one check.
type Status struct {
	Target     string
	Reachable  bool
	StatusCode int
	Latency    time.Duration
}

// Healthy reports whether the upstream answered without a server error.
func (s Status) Healthy() bool {
	return s.Reachable && s.StatusCode < 500
}
