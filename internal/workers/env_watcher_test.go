package workers

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/frontkit/internal/logger"
)

type countingRestarter struct {
	calls atomic.Int32
}

func (r *countingRestarter) Restart(context.Context) error {
	r.calls.Add(1)
	return nil
}

func startEnvWatcher(t *testing.T, root, configFile string) *countingRestarter {
	t.Helper()
	target := &countingRestarter{}
	w := NewEnvWatcher(root, "development", configFile, target, logger.Nop())
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	// give the watcher time to register the directories
	time.Sleep(100 * time.Millisecond)
	return target
}

func TestNewEnvWatcher_Files(t *testing.T) {
	w := NewEnvWatcher("/project", "staging", "/etc/frontkit.toml", &countingRestarter{}, logger.Nop())

	assert.Equal(t, []string{
		"/etc/frontkit.toml",
		"/project/.env",
		"/project/.env.local",
		"/project/.env.staging",
		"/project/.env.staging.local",
		"/project/package.json",
	}, w.Files())
}

func TestEnvWatcher_RestartsOnEnvChange(t *testing.T) {
	root := t.TempDir()
	target := startEnvWatcher(t, root, "")

	require.NoError(t, os.WriteFile(filepath.Join(root, ".env.local"), []byte("VITE_A=1\n"), 0o644))

	assert.Eventually(t, func() bool { return target.calls.Load() == 1 }, 3*time.Second, 10*time.Millisecond)
}

func TestEnvWatcher_DebouncesBurst(t *testing.T) {
	root := t.TempDir()
	target := startEnvWatcher(t, root, "")

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("VITE_A=1\n"), 0o644))
	}

	assert.Eventually(t, func() bool { return target.calls.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.EqualValues(t, 1, target.calls.Load())
}

func TestEnvWatcher_IgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	target := startEnvWatcher(t, root, "")

	require.NoError(t, os.WriteFile(filepath.Join(root, "main.ts"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env.production"), []byte("x"), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.EqualValues(t, 0, target.calls.Load())
}

func TestEnvWatcher_WatchesConfigFile(t *testing.T) {
	root := t.TempDir()
	configDir := t.TempDir()
	configFile := filepath.Join(configDir, "frontkit.yaml")
	target := startEnvWatcher(t, root, configFile)

	require.NoError(t, os.WriteFile(configFile, []byte("app:\n  mode: staging\n"), 0o644))

	assert.Eventually(t, func() bool { return target.calls.Load() == 1 }, 3*time.Second, 10*time.Millisecond)
}

func TestEnvWatcher_MissingDirFails(t *testing.T) {
	w := NewEnvWatcher(filepath.Join(t.TempDir(), "missing"), "development", "", &countingRestarter{}, logger.Nop())
	assert.Error(t, w.Run(context.Background()))
}
