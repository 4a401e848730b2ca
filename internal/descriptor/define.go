// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/frontkit/internal/clientenv"
	"github.com/MKhiriev/frontkit/internal/proxy"
)

// Fixed values of the descriptor.
const (
	DefaultHost           = "0.0.0.0"
	DevPort               = 3000
	PreviewPort           = 5000
	DefaultAPITarget      = "http://localhost:8080"
	APIContext            = "/api"
	APITargetKey          = "VITE_API_URL"
	DefaultEnvPrefix      = "VITE_"
	BuildTarget           = "es2020"
	DefaultOutDir         = "dist"
	DefaultAssetsDir      = "assets"
	DefaultPublicDir      = "public"
	DefaultCacheDir       = "node_modules/.frontkit"
	AssetsInlineLimit     = 4096
	ChunkSizeWarningLimit = 1000
	TestSetupFile         = "./src/test/setup.ts"

	// UndefinedVersion is the define value used when no app version is known.
	UndefinedVersion = "undefined"

	defineAppVersion = "__APP_VERSION__"
	defineBuildDate  = "__BUILD_DATE__"
	npmVersionEnv    = "npm_package_version"
)

type options struct {
	root    string
	now     func() time.Time
	version *string
	lookup  func(string) (string, bool)
}

// Option customizes [Define].
type Option func(*options)

// WithRoot sets the project root. Defaults to the working directory.
func WithRoot(root string) Option {
	return func(o *options) {
		o.root = root
	}
}

// WithClock sets the time source used for the build date constant.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithVersion pins the app version instead of looking it up.
func WithVersion(version string) Option {
	return func(o *options) {
		o.version = &version
	}
}

// WithLookupEnv replaces os.LookupEnv for the version lookup.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(o *options) {
		o.lookup = lookup
	}
}

// Define builds the descriptor for mode from an already loaded client env.
//
// Everything except the proxy target, the mode-dependent build flags and the
// compile-time constants is fixed.
func Define(mode string, env clientenv.Env, opts ...Option) (*Descriptor, error) {
	o := options{
		now:    time.Now,
		lookup: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve project root: %w", err)
		}
		o.root = wd
	}
	if mode == "" {
		mode = ModeDevelopment
	}

	version := UndefinedVersion
	if o.version != nil {
		version = *o.version
	} else {
		v, err := lookupVersion(o.root, o.lookup)
		if err != nil {
			return nil, err
		}
		if v != "" {
			version = v
		}
	}

	d := &Descriptor{
		Mode:      mode,
		Root:      o.root,
		CacheDir:  DefaultCacheDir,
		PublicDir: DefaultPublicDir,
		Base:      "/",
		Plugins: []Plugin{
			{Name: PluginReact, Options: map[string]string{
				"jsxImportSource": "react",
				"devTarget":       BuildTarget,
			}},
			{Name: PluginTSConfigPaths},
		},
		EnvPrefix: []string{DefaultEnvPrefix},
		Server: DevServer{
			Host:       DefaultHost,
			Port:       DevPort,
			StrictPort: true,
			Open:       true,
			CORS:       true,
			HMR:        HMR{Overlay: true},
			Proxy: []proxy.Rule{{
				Context:      APIContext,
				Target:       apiTarget(env),
				ChangeOrigin: true,
				Secure:       false,
				Rewrite:      proxy.StripPrefix(APIContext),
			}},
		},
		Preview: PreviewServer{
			Host:       DefaultHost,
			Port:       PreviewPort,
			StrictPort: true,
		},
		Build: Build{
			Target:            BuildTarget,
			OutDir:            DefaultOutDir,
			AssetsDir:         DefaultAssetsDir,
			SourceMap:         SourceMapInline,
			CSSCodeSplit:      true,
			Minify:            MinifyOff,
			EmptyOutDir:       true,
			AssetsInlineLimit: AssetsInlineLimit,
			ManualChunks: []ChunkGroup{
				{Name: "react", Modules: []string{"react", "react-dom", "react-router-dom"}},
				{Name: "mui", Modules: []string{"@mui/material", "@mui/icons-material"}},
			},
			ChunkSizeWarningLimit: ChunkSizeWarningLimit,
		},
		OptimizeDeps: OptimizeDeps{
			Include: []string{"react", "react-dom", "react-router-dom"},
			Target:  BuildTarget,
		},
		Strip: Strip{Drop: []string{}},
		Define: map[string]string{
			defineAppVersion: jsonLiteral(version),
			defineBuildDate:  jsonLiteral(o.now().UTC().Format("2006-01-02T15:04:05.000Z")),
		},
		CSS: CSS{Modules: CSSModules{LocalsConvention: LocalsCamelCaseOnly}},
		Test: Test{
			Globals:     true,
			Environment: "jsdom",
			SetupFiles:  []string{TestSetupFile},
			CSS:         true,
			Coverage: Coverage{
				Provider: "v8",
				Reporter: []string{"text", "html"},
				Exclude:  []string{"src/test/**", "**/*.d.ts"},
			},
		},
		env: env,
	}

	if d.IsProduction() {
		d.Build.SourceMap = SourceMapNone
		d.Build.Minify = MinifyESBuild
		d.Strip.Drop = []string{DropConsole, DropDebugger}
	}

	return d, nil
}

// apiTarget returns VITE_API_URL when it is set to a non-empty value.
func apiTarget(env clientenv.Env) string {
	if target := env.Value(APITargetKey); target != "" {
		return target
	}
	return DefaultAPITarget
}

type packageManifest struct {
	Version string `json:"version"`
}

// lookupVersion returns the app version from the package manager env, or
// from package.json. An empty result means unknown.
func lookupVersion(root string, lookup func(string) (string, bool)) (string, error) {
	if v, ok := lookup(npmVersionEnv); ok && v != "" {
		return v, nil
	}

	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read package.json: %w", err)
	}

	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", fmt.Errorf("%w: package.json: %w", ErrInvalidManifest, err)
	}
	return strings.TrimSpace(manifest.Version), nil
}

// jsonLiteral renders s as a JavaScript expression. UndefinedVersion stays a
// bare identifier.
func jsonLiteral(s string) string {
	if s == UndefinedVersion {
		return s
	}
	b, _ := json.Marshal(s)
	return string(b)
}
