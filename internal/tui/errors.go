// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "errors"

// ErrUserQuit is returned by [TUI.Run] when the user pressed q. It stops the
// other workers of the dev command.
var ErrUserQuit = errors.New("quit by user")
