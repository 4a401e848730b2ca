// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import "errors"

var (
	// ErrUnknownFormat indicates an unsupported descriptor dump format.
	ErrUnknownFormat = errors.New("unknown output format")

	errServerStopped = errors.New("server stopped")
)
