// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrOutDirMissing is returned by preview when there is no build to serve.
	ErrOutDirMissing = errors.New("build output directory does not exist, run build first")

	// ErrNotStarted is returned by dev operations called before Start.
	ErrNotStarted = errors.New("dev service is not started")

	// ErrNoBuild means the dev server has no successful build to serve yet.
	ErrNoBuild = errors.New("no successful build yet")
)
