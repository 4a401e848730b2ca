package bundler

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/MKhiriev/frontkit/internal/descriptor"
)

// Target selects what the options are built for.
type Target int

const (
	// TargetBuild produces hashed, optionally minified production output.
	TargetBuild Target = iota
	// TargetDev produces unhashed output for the dev server.
	TargetDev
)

func (t Target) String() string {
	if t == TargetDev {
		return "dev"
	}
	return "build"
}

var targets = map[string]api.Target{
	"esnext": api.ESNext,
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
}

// ParseTarget maps a target name such as "es2020" to esbuild's constant.
func ParseTarget(name string) (api.Target, error) {
	t, ok := targets[strings.ToLower(name)]
	if !ok {
		return api.DefaultTarget, fmt.Errorf("%w: %q", ErrUnsupportedTarget, name)
	}
	return t, nil
}

var drops = map[string]api.Drop{
	descriptor.DropConsole:  api.DropConsole,
	descriptor.DropDebugger: api.DropDebugger,
}

// Options maps the descriptor to esbuild build options for the given entry
// points. Plugins are attached by the caller.
func Options(desc *descriptor.Descriptor, target Target, entries []string) (api.BuildOptions, error) {
	targetName := desc.Build.Target
	if target == TargetDev {
		if react, ok := desc.Plugin(descriptor.PluginReact); ok && react.Options["devTarget"] != "" {
			targetName = react.Options["devTarget"]
		}
	}
	esTarget, err := ParseTarget(targetName)
	if err != nil {
		return api.BuildOptions{}, err
	}

	opts := api.BuildOptions{
		AbsWorkingDir: desc.Root,
		EntryPoints:   entries,
		Bundle:        true,
		Splitting:     true,
		Format:        api.FormatESModule,
		Platform:      api.PlatformBrowser,
		Target:        esTarget,
		Outdir:        desc.OutDirPath(),
		PublicPath:    desc.Base,
		Metafile:      true,
		Write:         false,
		LogLevel:      api.LogLevelSilent,
		Define:        defines(desc),
		Alias:         desc.Resolve.Alias,
		Loader: map[string]api.Loader{
			".js":  api.LoaderJSX,
			".svg": api.LoaderFile,
		},
	}

	switch desc.Build.SourceMap {
	case descriptor.SourceMapInline:
		opts.Sourcemap = api.SourceMapInline
	default:
		opts.Sourcemap = api.SourceMapNone
	}

	if desc.Build.Minify == descriptor.MinifyESBuild {
		opts.MinifyWhitespace = true
		opts.MinifyIdentifiers = true
		opts.MinifySyntax = true
	}

	for _, name := range desc.Strip.Drop {
		if d, ok := drops[name]; ok {
			opts.Drop |= d
		}
	}

	if react, ok := desc.Plugin(descriptor.PluginReact); ok {
		opts.JSX = api.JSXAutomatic
		opts.JSXImportSource = react.Options["jsxImportSource"]
		opts.JSXDev = target == TargetDev && !desc.IsProduction()
	}

	if desc.HasPlugin(descriptor.PluginTSConfigPaths) {
		if tsconfig := filepath.Join(desc.Root, "tsconfig.json"); fileExists(tsconfig) {
			opts.Tsconfig = tsconfig
		}
	}

	assetsDir := desc.Build.AssetsDir
	if target == TargetDev {
		opts.EntryNames = path.Join(assetsDir, "[name]")
		opts.ChunkNames = path.Join(assetsDir, "[name]-[hash]")
		opts.AssetNames = path.Join(assetsDir, "[name]")
	} else {
		opts.EntryNames = path.Join(assetsDir, "[name]-[hash]")
		opts.ChunkNames = path.Join(assetsDir, "[name]-[hash]")
		opts.AssetNames = path.Join(assetsDir, "[name]-[hash]")
	}

	return opts, nil
}

// defines adds process.env.NODE_ENV to the descriptor's client defines.
func defines(desc *descriptor.Descriptor) map[string]string {
	out := desc.ClientDefines()
	nodeEnv := "development"
	if desc.IsProduction() {
		nodeEnv = "production"
	}
	b, _ := json.Marshal(nodeEnv)
	out["process.env.NODE_ENV"] = string(b)
	return out
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
