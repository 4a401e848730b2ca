// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bundler

import (
	"context"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/MKhiriev/frontkit/internal/descriptor"
)

// VendorChunk names the dev chunk holding the optimizeDeps modules.
const VendorChunk = "vendor"

// Prepare reads the entry points of the project and returns the complete
// esbuild options, plugins included.
func Prepare(desc *descriptor.Descriptor, target Target) (api.BuildOptions, error) {
	index, err := ReadIndex(desc.Root)
	if err != nil {
		return api.BuildOptions{}, err
	}
	entries, err := EntryPoints(index)
	if err != nil {
		return api.BuildOptions{}, err
	}

	var groups []descriptor.ChunkGroup
	if target == TargetDev {
		groups = installedGroups(desc.Root, []descriptor.ChunkGroup{
			{Name: VendorChunk, Modules: desc.OptimizeDeps.Include},
		})
	} else {
		groups = installedGroups(desc.Root, desc.Build.ManualChunks)
	}
	for _, g := range groups {
		entries = append(entries, ChunkEntry(g.Name))
	}

	opts, err := Options(desc, target, entries)
	if err != nil {
		return api.BuildOptions{}, err
	}
	opts.Plugins = []api.Plugin{
		chunksPlugin(desc.Root, groups),
		cssModulesPlugin(desc.CSS.Modules.LocalsConvention == descriptor.LocalsCamelCaseOnly),
		assetsPlugin(desc.Build.AssetsInlineLimit),
	}
	return opts, nil
}

// Build runs one build. Cancelling ctx cancels the running build.
func Build(ctx context.Context, desc *descriptor.Descriptor, target Target) (*Result, error) {
	opts, err := Prepare(desc, target)
	if err != nil {
		return nil, err
	}

	bctx, cerr := api.Context(opts)
	if cerr != nil {
		return nil, newBuildError(cerr.Errors)
	}
	defer bctx.Dispose()

	stop := context.AfterFunc(ctx, bctx.Cancel)
	defer stop()

	res := bctx.Rebuild()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newResult(res, opts.AbsWorkingDir, opts.Outdir)
}

// Rebuild is the outcome of one watch cycle: a result or an error, and the
// time the build took.
type Rebuild struct {
	Result *Result
	Err    error
	Took   time.Duration
}

// Watcher rebuilds on source changes and reports every result.
type Watcher struct {
	bctx      api.BuildContext
	closeOnce sync.Once
}

// NewWatcher prepares a dev build context. onResult is called after every
// build; calls are sequential.
func NewWatcher(desc *descriptor.Descriptor, onResult func(Rebuild)) (*Watcher, error) {
	opts, err := Prepare(desc, TargetDev)
	if err != nil {
		return nil, err
	}

	workDir, outDir := opts.AbsWorkingDir, opts.Outdir
	opts.Plugins = append(opts.Plugins, api.Plugin{
		Name: "frontkit:notify",
		Setup: func(build api.PluginBuild) {
			var started time.Time
			build.OnStart(func() (api.OnStartResult, error) {
				started = time.Now()
				return api.OnStartResult{}, nil
			})
			build.OnEnd(func(res *api.BuildResult) (api.OnEndResult, error) {
				result, err := newResult(*res, workDir, outDir)
				onResult(Rebuild{Result: result, Err: err, Took: time.Since(started)})
				return api.OnEndResult{}, nil
			})
		},
	})

	bctx, cerr := api.Context(opts)
	if cerr != nil {
		return nil, newBuildError(cerr.Errors)
	}
	return &Watcher{bctx: bctx}, nil
}

// Start runs the initial build and starts watching. The initial result is
// delivered to onResult before Start returns.
func (w *Watcher) Start() error {
	w.bctx.Rebuild()
	return w.bctx.Watch(api.WatchOptions{})
}

// Rebuild forces a build outside the watch cycle.
func (w *Watcher) Rebuild() {
	w.bctx.Rebuild()
}

// Close stops watching and releases the build context.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		w.bctx.Cancel()
		w.bctx.Dispose()
	})
}
