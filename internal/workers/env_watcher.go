package workers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/frontkit/internal/clientenv"
	"github.com/MKhiriev/frontkit/internal/logger"
)

// DefaultDebounce is the quiet period after the last change before the dev
// server restarts.
const DefaultDebounce = 150 * time.Millisecond

const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// EnvWatcher restarts the dev server when a dotenv file of the mode,
// package.json or the tool config file changes.
//
// Directories are watched rather than the files, so files that do not exist
// yet and files replaced by editors are noticed too.
type EnvWatcher struct {
	files    map[string]struct{}
	target   Restarter
	debounce time.Duration
	logger   *logger.Logger
}

// NewEnvWatcher returns a watcher of the files root/.env* for mode,
// root/package.json and configFile (optional).
func NewEnvWatcher(root, mode, configFile string, target Restarter, logger *logger.Logger) *EnvWatcher {
	files := make(map[string]struct{})
	for _, name := range clientenv.Files(mode) {
		files[filepath.Join(root, name)] = struct{}{}
	}
	files[filepath.Join(root, "package.json")] = struct{}{}
	if configFile != "" {
		if abs, err := filepath.Abs(configFile); err == nil {
			configFile = abs
		}
		files[filepath.Clean(configFile)] = struct{}{}
	}

	return &EnvWatcher{
		files:    files,
		target:   target,
		debounce: DefaultDebounce,
		logger:   logger,
	}
}

// WithDebounce sets the quiet period before a restart. Non-positive values
// keep the default.
func (w *EnvWatcher) WithDebounce(d time.Duration) *EnvWatcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Files returns the watched paths, sorted.
func (w *EnvWatcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Run implements [Worker].
func (w *EnvWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	dirs := make(map[string]struct{})
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.logger.Debug().Strs("files", w.Files()).Msg("watching env files")

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		changed string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, watched := w.files[filepath.Clean(ev.Name)]; !watched || ev.Op&watchedOps == 0 {
				continue
			}
			changed = ev.Name
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerC = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("file watcher error")

		case <-timerC:
			timerC = nil
			w.logger.Info().Str("file", filepath.Base(changed)).Msg("config changed, restarting dev server")
			if err := w.target.Restart(ctx); err != nil {
				w.logger.Err(err).Str("func", "*EnvWatcher.Run").Msg("error restarting dev server")
			}
		}
	}
}
