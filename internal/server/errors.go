// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrPortInUse indicates that the requested port is taken and strictPort
	// forbids trying another one.
	ErrPortInUse = errors.New("port is already in use")
	// ErrNoFreePort indicates that every port of the fallback range is taken.
	ErrNoFreePort = errors.New("no free port found")
)
