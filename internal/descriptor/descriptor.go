// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package descriptor

import (
	"path/filepath"

	"github.com/MKhiriev/frontkit/internal/clientenv"
	"github.com/MKhiriev/frontkit/internal/proxy"
)

// Modes known to the tool. Any other mode name is accepted and treated as a
// non-production mode.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
	ModeTest        = "test"
)

// Descriptor is the single declarative record handed to the external
// toolchain. It is built once by [Define] and treated as read-only.
type Descriptor struct {
	Mode string `json:"mode" yaml:"mode"`
	Root string `json:"root" yaml:"root"`

	// CacheDir holds optimizer metadata, build history and generated test
	// runner config.
	CacheDir string `json:"cacheDir" yaml:"cacheDir"`

	// PublicDir is copied verbatim into the build output and served at "/"
	// by the dev server.
	PublicDir string `json:"publicDir" yaml:"publicDir"`

	// Base is the public URL path the app is served from.
	Base string `json:"base" yaml:"base"`

	Plugins      []Plugin          `json:"plugins" yaml:"plugins"`
	EnvPrefix    []string          `json:"envPrefix" yaml:"envPrefix"`
	Resolve      Resolve           `json:"resolve" yaml:"resolve"`
	Server       DevServer         `json:"server" yaml:"server"`
	Preview      PreviewServer     `json:"preview" yaml:"preview"`
	Build        Build             `json:"build" yaml:"build"`
	OptimizeDeps OptimizeDeps      `json:"optimizeDeps" yaml:"optimizeDeps"`
	Strip        Strip             `json:"esbuild" yaml:"esbuild"`
	Define       map[string]string `json:"define" yaml:"define"`
	CSS          CSS               `json:"css" yaml:"css"`
	Test         Test              `json:"test" yaml:"test"`

	env clientenv.Env
}

// Plugin names a toolchain feature switched on for the project together with
// its options.
type Plugin struct {
	Name    string            `json:"name" yaml:"name"`
	Options map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Plugin names understood by the bundler adapter.
const (
	PluginReact         = "react-swc"
	PluginTSConfigPaths = "tsconfig-paths"
)

// Resolve holds module resolution settings.
type Resolve struct {
	// Alias maps bare import prefixes to replacements. Empty by default:
	// tsconfig "paths" cover aliasing.
	Alias map[string]string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// HMR configures the live-reload channel of the dev server.
type HMR struct {
	// Overlay shows build errors on top of the page.
	Overlay bool `json:"overlay" yaml:"overlay"`
}

// DevServer configures the development server.
type DevServer struct {
	Host       string       `json:"host" yaml:"host"`
	Port       int          `json:"port" yaml:"port"`
	StrictPort bool         `json:"strictPort" yaml:"strictPort"`
	Open       bool         `json:"open" yaml:"open"`
	CORS       bool         `json:"cors" yaml:"cors"`
	HMR        HMR          `json:"hmr" yaml:"hmr"`
	Proxy      []proxy.Rule `json:"proxy" yaml:"proxy"`
}

// PreviewServer configures the static server for a finished build.
type PreviewServer struct {
	Host       string `json:"host" yaml:"host"`
	Port       int    `json:"port" yaml:"port"`
	StrictPort bool   `json:"strictPort" yaml:"strictPort"`
}

// SourceMap selects how source maps are emitted.
type SourceMap string

const (
	SourceMapNone   SourceMap = "none"
	SourceMapInline SourceMap = "inline"
)

// Minifier selects the minifier. The empty value disables minification.
type Minifier string

const (
	MinifyOff     Minifier = ""
	MinifyESBuild Minifier = "esbuild"
)

// ChunkGroup names a set of modules emitted together as one cacheable chunk.
type ChunkGroup struct {
	Name    string   `json:"name" yaml:"name"`
	Modules []string `json:"modules" yaml:"modules"`
}

// Build configures production output.
//
// CSSCodeSplit is informational for the external toolchain. The bundler
// always splits: esbuild emits the CSS imported by each entry point as that
// entry's own stylesheet.
type Build struct {
	Target                string       `json:"target" yaml:"target"`
	OutDir                string       `json:"outDir" yaml:"outDir"`
	AssetsDir             string       `json:"assetsDir" yaml:"assetsDir"`
	SourceMap             SourceMap    `json:"sourcemap" yaml:"sourcemap"`
	CSSCodeSplit          bool         `json:"cssCodeSplit" yaml:"cssCodeSplit"`
	Minify                Minifier     `json:"minify" yaml:"minify"`
	EmptyOutDir           bool         `json:"emptyOutDir" yaml:"emptyOutDir"`
	AssetsInlineLimit     int64        `json:"assetsInlineLimit" yaml:"assetsInlineLimit"`
	ManualChunks          []ChunkGroup `json:"manualChunks" yaml:"manualChunks"`
	ChunkSizeWarningLimit int64        `json:"chunkSizeWarningLimit" yaml:"chunkSizeWarningLimit"`
}

// OptimizeDeps lists dependencies pre-bundled for the dev server.
type OptimizeDeps struct {
	Include []string `json:"include" yaml:"include"`
	Target  string   `json:"target" yaml:"target"`
}

// Strip lists statement kinds dropped from bundles.
type Strip struct {
	Drop []string `json:"drop" yaml:"drop"`
}

// Statement kinds for [Strip.Drop].
const (
	DropConsole  = "console"
	DropDebugger = "debugger"
)

// CSSModules configures *.module.css handling.
type CSSModules struct {
	LocalsConvention string `json:"localsConvention" yaml:"localsConvention"`
}

// LocalsCamelCaseOnly exports class names only in camelCase form.
const LocalsCamelCaseOnly = "camelCaseOnly"

// CSS groups stylesheet options.
type CSS struct {
	Modules CSSModules `json:"modules" yaml:"modules"`
}

// Coverage configures the test runner's coverage collection.
type Coverage struct {
	Provider string   `json:"provider" yaml:"provider"`
	Reporter []string `json:"reporter" yaml:"reporter"`
	Exclude  []string `json:"exclude" yaml:"exclude"`
}

// Test configures the external test runner.
type Test struct {
	Globals     bool     `json:"globals" yaml:"globals"`
	Environment string   `json:"environment" yaml:"environment"`
	SetupFiles  []string `json:"setupFiles" yaml:"setupFiles"`
	CSS         bool     `json:"css" yaml:"css"`
	Coverage    Coverage `json:"coverage" yaml:"coverage"`
}

// IsProduction reports whether the descriptor was built for production.
func (d *Descriptor) IsProduction() bool {
	return d.Mode == ModeProduction
}

// Env returns the client environment the descriptor was built from.
func (d *Descriptor) Env() clientenv.Env {
	return d.env
}

// HasPlugin reports whether a plugin with the given name is enabled.
func (d *Descriptor) HasPlugin(name string) bool {
	_, ok := d.Plugin(name)
	return ok
}

// Plugin returns the enabled plugin with the given name.
func (d *Descriptor) Plugin(name string) (Plugin, bool) {
	for _, p := range d.Plugins {
		if p.Name == name {
			return p, true
		}
	}
	return Plugin{}, false
}

// ProxyTable returns the dev proxy rules as a lookup table.
func (d *Descriptor) ProxyTable() proxy.Table {
	return proxy.Table(d.Server.Proxy)
}

// Path resolves a root-relative path. Absolute paths are returned as is.
func (d *Descriptor) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(d.Root, rel)
}

// OutDirPath returns the absolute build output directory.
func (d *Descriptor) OutDirPath() string {
	return d.Path(d.Build.OutDir)
}

// CacheDirPath returns the absolute cache directory.
func (d *Descriptor) CacheDirPath() string {
	return d.Path(d.CacheDir)
}

// PublicDirPath returns the absolute public directory.
func (d *Descriptor) PublicDirPath() string {
	return d.Path(d.PublicDir)
}
