package bundler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

var (
	// ErrNoEntryPoints indicates an index.html without module scripts.
	ErrNoEntryPoints = errors.New("no module entry points in index.html")
	// ErrUnsupportedTarget indicates a build target esbuild has no constant for.
	ErrUnsupportedTarget = errors.New("unsupported build target")
	// ErrOutsideRoot indicates an output directory outside the project root.
	ErrOutsideRoot = errors.New("directory is outside the project root")
)

// BuildError carries the esbuild error diagnostics of a failed build.
type BuildError struct {
	// Messages are the formatted diagnostics, one per error.
	Messages []string
	raw      []api.Message
}

func newBuildError(msgs []api.Message) *BuildError {
	formatted := api.FormatMessages(msgs, api.FormatMessagesOptions{
		Kind: api.ErrorMessage,
	})
	for i := range formatted {
		formatted[i] = strings.TrimRight(formatted[i], "\n")
	}
	return &BuildError{Messages: formatted, raw: msgs}
}

func (e *BuildError) Error() string {
	if len(e.raw) == 1 {
		return fmt.Sprintf("build failed: %s", e.raw[0].Text)
	}
	return fmt.Sprintf("build failed with %d errors", len(e.raw))
}

// Texts returns the bare error texts with their locations.
func (e *BuildError) Texts() []string {
	out := make([]string, 0, len(e.raw))
	for _, m := range e.raw {
		if m.Location != nil {
			out = append(out, fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text))
			continue
		}
		out = append(out, m.Text)
	}
	return out
}
