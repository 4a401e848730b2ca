// Package testrunner hands the test settings of the descriptor to vitest.
//
// The settings are written to a generated config module in the cache dir,
// then vitest is started through npx with that config and the user's
// arguments. Its output is streamed unchanged.
package testrunner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/MKhiriev/frontkit/internal/descriptor"
	"github.com/MKhiriev/frontkit/internal/logger"
)

// ConfigFile is the name of the generated vitest config.
const ConfigFile = "vitest.config.mjs"

var (
	// ErrTestsFailed indicates that vitest exited with a non-zero code.
	ErrTestsFailed = errors.New("tests failed")
	// ErrRunnerNotFound indicates that npx is not installed.
	ErrRunnerNotFound = errors.New("npx not found, install Node.js to run tests")
)

type commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Runner starts vitest for a project.
type Runner struct {
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
	logger *logger.Logger

	command commandFunc
}

// NewRunner returns a runner writing the config to fs and streaming the
// test output to stdout and stderr. fs must be backed by the real disk for
// vitest to find the config.
func NewRunner(fs afero.Fs, stdout, stderr io.Writer, logger *logger.Logger) *Runner {
	return &Runner{
		fs:      fs,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logger,
		command: exec.CommandContext,
	}
}

// ConfigPath returns where the generated config of desc lives.
func ConfigPath(desc *descriptor.Descriptor) string {
	return filepath.Join(desc.CacheDirPath(), ConfigFile)
}

type vitestConfig struct {
	Test   descriptor.Test   `json:"test"`
	Define map[string]string `json:"define,omitempty"`
}

// RenderConfig renders the config module for desc.
func RenderConfig(desc *descriptor.Descriptor) ([]byte, error) {
	body, err := json.MarshalIndent(vitestConfig{Test: desc.Test, Define: desc.Define}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode vitest config: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("// generated by frontkit, do not edit\n")
	b.WriteString("export default ")
	b.Write(body)
	b.WriteString(";\n")
	return b.Bytes(), nil
}

// WriteConfig writes the config module of desc and returns its path.
func (r *Runner) WriteConfig(desc *descriptor.Descriptor) (string, error) {
	data, err := RenderConfig(desc)
	if err != nil {
		return "", err
	}

	path := ConfigPath(desc)
	if err := r.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	if err := afero.WriteFile(r.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Args returns the npx arguments running vitest once with the config at
// configPath.
func Args(desc *descriptor.Descriptor, configPath string, extra []string) []string {
	args := []string{"vitest", "run", "--config", configPath, "--mode", desc.Mode, "--root", desc.Root}
	return append(args, extra...)
}

// Run writes the config and runs vitest in the project root. A failing test
// run is reported as [ErrTestsFailed].
func (r *Runner) Run(ctx context.Context, desc *descriptor.Descriptor, extra []string) error {
	configPath, err := r.WriteConfig(desc)
	if err != nil {
		return err
	}

	args := Args(desc, configPath, extra)
	cmd := r.command(ctx, "npx", args...)
	cmd.Dir = desc.Root
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	r.logger.Debug().Strs("args", args).Str("dir", desc.Root).Msg("starting vitest")

	err = cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, exec.ErrNotFound):
		return ErrRunnerNotFound
	case errors.As(err, &exitErr):
		return fmt.Errorf("%w: exit code %d", ErrTestsFailed, exitErr.ExitCode())
	default:
		return fmt.Errorf("run vitest: %w", err)
	}
}
