// Package tui implements the interactive terminal screen of the dev
// command: server URLs, the last build and recent log lines, plus keyboard
// shortcuts to restart, open or copy the server.
package tui

import (
	"context"
	"errors"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/internal/server"
	"github.com/MKhiriev/frontkit/internal/service"
	"github.com/MKhiriev/frontkit/internal/utils"
	"github.com/MKhiriev/frontkit/models"
)

// Enabled reports whether the terminal UI can run: it is not switched off
// and out is a terminal.
func Enabled(noTUI bool, out *os.File) bool {
	if noTUI || out == nil {
		return false
	}
	fd := out.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TUI is the dev screen. It runs as a worker next to the server.
type TUI struct {
	dev    service.DevService
	urls   server.URLs
	info   models.AppBuildInfo
	logs   *LogBuffer
	logger *logger.Logger
}

// New returns the dev screen. logs receives the log output while the screen
// is shown.
func New(dev service.DevService, urls server.URLs, info models.AppBuildInfo, logs *LogBuffer, logger *logger.Logger) *TUI {
	return &TUI{dev: dev, urls: urls, info: info, logs: logs, logger: logger}
}

// Run shows the screen until ctx is canceled or the user quits, in which
// case it returns [ErrUserQuit].
func (t *TUI) Run(ctx context.Context) error {
	model := newDevModel(ctx, t.dev, t.urls, t.info, t.logs, utils.OpenBrowser, clipboard.WriteAll)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil
		}
		t.logger.Err(err).Str("func", "*TUI.Run").Msg("terminal UI failed")
		return err
	}

	result, ok := finalModel.(devModel)
	if ok && result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
