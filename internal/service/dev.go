package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/MKhiriev/frontkit/internal/bundler"
	"github.com/MKhiriev/frontkit/internal/descriptor"
	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/internal/optimizer"
)

// ClientScriptPath is the URL of the live reload client injected into the
// dev index.html.
const ClientScriptPath = "/__frontkit/client.js"

// BuildStatus describes the latest dev build.
type BuildStatus struct {
	OK       bool          `json:"ok"`
	Errors   []string      `json:"errors,omitempty"`
	Warnings int           `json:"warnings"`
	Files    int           `json:"files"`
	Took     time.Duration `json:"took"`
	At       time.Time     `json:"at"`
	Version  uint64        `json:"version"`
}

type nopRebuildObserver struct{}

func (nopRebuildObserver) ObserveRebuild(time.Duration, bool) {}

type devService struct {
	loader   DescriptorLoader
	fs       afero.Fs
	assets   *AssetStore
	hub      *Hub
	observer RebuildObserver
	logger   *logger.Logger
	now      func() time.Time

	// lifecycle serializes Start and Restart, so at most one watcher exists.
	lifecycle sync.Mutex

	mu      sync.Mutex
	desc    *descriptor.Descriptor
	watcher *bundler.Watcher
	status  BuildStatus
	closed  bool
}

// NewDevService constructs a [DevService]. observer may be nil.
func NewDevService(loader DescriptorLoader, fs afero.Fs, observer RebuildObserver, logger *logger.Logger) DevService {
	if observer == nil {
		observer = nopRebuildObserver{}
	}
	return &devService{
		loader:   loader,
		fs:       fs,
		assets:   NewAssetStore(),
		hub:      NewHub(),
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
}

// Start implements [DevService].
func (s *devService) Start(ctx context.Context) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	return s.start(ctx)
}

// Restart implements [DevService]. On failure the previous watcher is
// already stopped and the error is pushed to the browsers.
func (s *devService) Restart(ctx context.Context) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	old := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}

	if err := s.start(ctx); err != nil {
		s.logger.Err(err).Str("func", "*devService.Restart").Msg("error restarting dev server")
		s.publishError([]string{err.Error()})
		return err
	}
	s.logger.Info().Msg("dev server restarted")
	return nil
}

func (s *devService) start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	desc, err := s.loader.Load()
	if err != nil {
		return err
	}
	s.optimize(desc)

	watcher, err := bundler.NewWatcher(desc, func(rb bundler.Rebuild) {
		s.onRebuild(desc, rb)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		watcher.Close()
		return context.Canceled
	}
	replaced := s.watcher
	s.desc = desc
	s.watcher = watcher
	s.mu.Unlock()

	if replaced != nil {
		replaced.Close()
	}

	s.logger.Debug().
		Str("mode", desc.Mode).
		Strs("env_files", desc.Env().LoadedFiles()).
		Int("env_keys", desc.Env().Len()).
		Msg("descriptor loaded")

	return watcher.Start()
}

// optimize compares the dependency metadata with the cache and logs when the
// pre-bundled dependencies changed. The following build reloads every page.
func (s *devService) optimize(desc *descriptor.Descriptor) {
	changed, meta, err := optimizer.Check(s.fs, desc.Root, desc.CacheDirPath(),
		desc.OptimizeDeps.Include, desc.OptimizeDeps.Target, s.now())
	if err != nil {
		s.logger.Warn().Err(err).Msg("dependency optimizer check failed")
		return
	}
	if changed {
		s.logger.Info().
			Str("hash", meta.Hash).
			Strs("include", meta.Include).
			Msg("new dependencies optimized, reloading")
	}
}

func (s *devService) onRebuild(desc *descriptor.Descriptor, rb bundler.Rebuild) {
	s.observer.ObserveRebuild(rb.Took, rb.Err != nil)

	if rb.Err != nil {
		s.failed(rb)
		return
	}

	index, err := bundler.ReadIndex(desc.Root)
	if err == nil {
		index, err = bundler.TransformHTML(index, rb.Result, bundler.HTMLOptions{
			Base:         desc.Base,
			Replacements: desc.HTMLReplacements(),
			ClientScript: ClientScriptPath,
		})
	}
	if err != nil {
		s.failed(bundler.Rebuild{Err: err, Took: rb.Took})
		return
	}

	at := s.now()
	version := s.assets.Replace(rb.Result, index, at)

	for _, w := range rb.Result.Warnings {
		s.logger.Warn().Msg(w)
	}
	s.setStatus(BuildStatus{
		OK:       true,
		Warnings: len(rb.Result.Warnings),
		Files:    len(rb.Result.Files),
		Took:     rb.Took,
		At:       at,
		Version:  version,
	})
	s.logger.Info().
		Int("files", len(rb.Result.Files)).
		Dur("took", rb.Took).
		Uint64("version", version).
		Msg("build ready")

	s.hub.Publish(Event{Type: EventReload, Data: strconv.FormatUint(version, 10)})
}

func (s *devService) failed(rb bundler.Rebuild) {
	s.assets.SetError(rb.Err)

	messages := []string{rb.Err.Error()}
	var buildErr *bundler.BuildError
	if errors.As(rb.Err, &buildErr) {
		messages = buildErr.Texts()
	}

	s.setStatus(BuildStatus{
		Errors:  messages,
		Took:    rb.Took,
		At:      s.now(),
		Version: s.assets.Version(),
	})
	s.logger.Error().Err(rb.Err).Msg("build failed")
	s.publishError(messages)
}

func (s *devService) publishError(messages []string) {
	data, _ := json.Marshal(struct {
		Messages []string `json:"messages"`
	}{messages})
	s.hub.Publish(Event{Type: EventBuildError, Data: string(data)})
}

func (s *devService) setStatus(st BuildStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
}

// Descriptor implements [DevService].
func (s *devService) Descriptor() *descriptor.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.desc
}

// Assets implements [DevService].
func (s *devService) Assets() *AssetStore {
	return s.assets
}

// Events implements [DevService].
func (s *devService) Events() *Hub {
	return s.hub
}

// Status implements [DevService].
func (s *devService) Status() BuildStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Close implements [DevService].
func (s *devService) Close() {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.closed = true
	s.mu.Unlock()

	if w != nil {
		w.Close()
	}
	s.hub.Close()
}
