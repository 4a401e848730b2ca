package bundler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/MKhiriev/frontkit/internal/descriptor"
)

// ChunkNamespace is the esbuild namespace of virtual manual-chunk entries.
const ChunkNamespace = "frontkit-chunk"

const assetFilter = `\.(png|jpe?g|gif|svg|webp|avif|ico|bmp|woff2?|ttf|eot|otf|mp4|webm|ogg|mp3|wav|flac|aac|pdf|txt)$`

// assetsPlugin inlines small assets as data URLs and emits larger ones as
// files.
func assetsPlugin(limit int64) api.Plugin {
	return api.Plugin{
		Name: "frontkit:assets",
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: assetFilter, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					data, err := os.ReadFile(args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					contents := string(data)
					loader := api.LoaderFile
					if int64(len(data)) <= limit {
						loader = api.LoaderDataURL
					}
					return api.OnLoadResult{Contents: &contents, Loader: loader}, nil
				})
		},
	}
}

// cssModulesPlugin loads *.module.css as local CSS, converting class names
// to camelCase first when camelCase is set.
func cssModulesPlugin(camelCase bool) api.Plugin {
	return api.Plugin{
		Name: "frontkit:css-modules",
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: `\.module\.css$`, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					data, err := os.ReadFile(args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					contents := string(data)
					if camelCase {
						contents = CamelCaseSelectors(contents)
					}
					return api.OnLoadResult{Contents: &contents, Loader: api.LoaderLocalCSS}, nil
				})
		},
	}
}

// ChunkEntry returns the entry point name of a manual chunk group.
func ChunkEntry(name string) string {
	return ChunkNamespace + ":" + name
}

// chunksPlugin resolves the virtual entries of manual chunk groups. Each
// entry re-exports the group's installed modules, so code splitting moves
// them into chunks shared with the app entries.
func chunksPlugin(root string, groups []descriptor.ChunkGroup) api.Plugin {
	byName := make(map[string][]string, len(groups))
	for _, g := range groups {
		byName[g.Name] = g.Modules
	}

	return api.Plugin{
		Name: "frontkit:chunks",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: "^" + ChunkNamespace + ":"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{
						Path:      strings.TrimPrefix(args.Path, ChunkNamespace+":"),
						Namespace: ChunkNamespace,
					}, nil
				})
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: ChunkNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					modules, ok := byName[args.Path]
					if !ok {
						return api.OnLoadResult{}, fmt.Errorf("unknown chunk group %q", args.Path)
					}
					var b strings.Builder
					for _, mod := range modules {
						fmt.Fprintf(&b, "export * from %q;\n", mod)
					}
					contents := b.String()
					return api.OnLoadResult{
						Contents:   &contents,
						ResolveDir: root,
						Loader:     api.LoaderJS,
					}, nil
				})
		},
	}
}

// InstalledModules filters modules to those with a package.json under a
// node_modules directory of root or one of its parents.
func InstalledModules(root string, modules []string) []string {
	var out []string
	for _, mod := range modules {
		if moduleInstalled(root, mod) {
			out = append(out, mod)
		}
	}
	return out
}

func moduleInstalled(root, mod string) bool {
	dir := root
	for {
		if fileExists(filepath.Join(dir, "node_modules", filepath.FromSlash(mod), "package.json")) {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// installedGroups keeps the groups with at least one installed module,
// pruned to those modules.
func installedGroups(root string, groups []descriptor.ChunkGroup) []descriptor.ChunkGroup {
	var out []descriptor.ChunkGroup
	for _, g := range groups {
		if mods := InstalledModules(root, g.Modules); len(mods) > 0 {
			out = append(out, descriptor.ChunkGroup{Name: g.Name, Modules: mods})
		}
	}
	return out
}
