package testrunner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/frontkit/internal/clientenv"
	"github.com/MKhiriev/frontkit/internal/descriptor"
	"github.com/MKhiriev/frontkit/internal/logger"
)

func newDescriptor(t *testing.T, root string) *descriptor.Descriptor {
	t.Helper()
	desc, err := descriptor.Define(descriptor.ModeTest, clientenv.FromMap(nil),
		descriptor.WithRoot(root),
		descriptor.WithVersion("1.2.3"),
		descriptor.WithClock(func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }),
	)
	require.NoError(t, err)
	return desc
}

func TestRenderConfig(t *testing.T) {
	data, err := RenderConfig(newDescriptor(t, "/project"))
	require.NoError(t, err)

	src := string(data)
	assert.True(t, strings.HasPrefix(src, "// generated by frontkit"))
	assert.Contains(t, src, "export default {")
	assert.Contains(t, src, `"environment": "jsdom"`)
	assert.Contains(t, src, `"setupFiles": [`)
	assert.Contains(t, src, `"./src/test/setup.ts"`)
	assert.Contains(t, src, `"provider": "v8"`)
	assert.Contains(t, src, `"__APP_VERSION__": "\"1.2.3\""`)
	assert.True(t, strings.HasSuffix(src, "};\n"))
}

func TestWriteConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	desc := newDescriptor(t, "/project")
	r := NewRunner(fs, nil, nil, logger.Nop())

	path, err := r.WriteConfig(desc)
	require.NoError(t, err)
	assert.Equal(t, "/project/node_modules/.frontkit/vitest.config.mjs", path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"globals": true`)
}

func TestArgs(t *testing.T) {
	desc := newDescriptor(t, "/project")
	assert.Equal(t,
		[]string{"vitest", "run", "--config", "/c.mjs", "--mode", "test", "--root", "/project", "--coverage", "src/a.test.ts"},
		Args(desc, "/c.mjs", []string{"--coverage", "src/a.test.ts"}),
	)
}

// helperCommand re-runs the test binary as a stand-in for npx.
func helperCommand(exitCode int) commandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("HELPER_EXIT_CODE=%d", exitCode))
		return cmd
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	fmt.Fprintln(os.Stdout, strings.Join(args[1:], " "))
	code := 0
	_, _ = fmt.Sscanf(os.Getenv("HELPER_EXIT_CODE"), "%d", &code)
	os.Exit(code)
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	desc := newDescriptor(t, root)

	var stdout, stderr bytes.Buffer
	r := NewRunner(afero.NewOsFs(), &stdout, &stderr, logger.Nop())
	r.command = helperCommand(0)

	require.NoError(t, r.Run(context.Background(), desc, []string{"--reporter", "dot"}))
	assert.Contains(t, stdout.String(), "npx vitest run --config "+ConfigPath(desc))
	assert.Contains(t, stdout.String(), "--reporter dot")

	_, err := os.Stat(ConfigPath(desc))
	assert.NoError(t, err)
}

func TestRun_TestsFail(t *testing.T) {
	desc := newDescriptor(t, t.TempDir())

	r := NewRunner(afero.NewOsFs(), &bytes.Buffer{}, &bytes.Buffer{}, logger.Nop())
	r.command = helperCommand(3)

	err := r.Run(context.Background(), desc, nil)
	assert.ErrorIs(t, err, ErrTestsFailed)
	assert.Contains(t, err.Error(), "exit code 3")
}

func TestRun_RunnerNotFound(t *testing.T) {
	desc := newDescriptor(t, t.TempDir())

	r := NewRunner(afero.NewOsFs(), &bytes.Buffer{}, &bytes.Buffer{}, logger.Nop())
	r.command = func(ctx context.Context, _ string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "frontkit-missing-binary-for-tests", args...)
	}

	assert.ErrorIs(t, r.Run(context.Background(), desc, nil), ErrRunnerNotFound)
}
