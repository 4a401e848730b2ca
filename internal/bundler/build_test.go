package bundler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/frontkit/internal/descriptor"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	}
	return root
}

func sampleProject() map[string]string {
	return map[string]string{
		"index.html": `<!doctype html><html><head><title>%VITE_TITLE%</title></head>` +
			`<body><div id="root"></div><script type="module" src="/src/main.js"></script></body></html>`,
		"src/main.js": `import styles from "./app.module.css";
import icon from "./icon.png";
import big from "./big.png";
import { answer } from "fake-lib";
console.log("hello from main");
export const state = { cls: styles.navBar, icon, big, answer, title: import.meta.env.VITE_TITLE };
`,
		"src/app.module.css":                  `.nav-bar { color: red; }`,
		"src/icon.png":                        "\x89PNG\r\n\x1a\nsmall",
		"src/big.png":                         "\x89PNG\r\n\x1a\n" + strings.Repeat("x", 5000),
		"node_modules/fake-lib/package.json":  `{"name":"fake-lib","module":"index.js"}`,
		"node_modules/fake-lib/index.js":      `export const answer = 42;`,
		"node_modules/other-lib/package.json": `{"name":"other-lib","module":"index.js"}`,
		"node_modules/other-lib/index.js":     `export const unused = 1;`,
	}
}

func TestBuild_Production(t *testing.T) {
	root := writeProject(t, sampleProject())
	d := newDescriptor(t, descriptor.ModeProduction, root, map[string]string{"VITE_TITLE": "Shop"})
	d.Build.ManualChunks = []descriptor.ChunkGroup{
		{Name: "vendor", Modules: []string{"fake-lib", "not-installed"}},
		{Name: "mui", Modules: []string{"@mui/material"}},
	}

	res, err := Build(context.Background(), d, TargetBuild)
	require.NoError(t, err)

	entry, ok := res.Entries["src/main.js"]
	require.True(t, ok)
	assert.Regexp(t, regexp.MustCompile(`^assets/main-[A-Z0-9]+\.js$`), entry.Script)
	assert.Regexp(t, regexp.MustCompile(`^assets/main-[A-Z0-9]+\.css$`), entry.CSS)

	main, ok := res.File(entry.Script)
	require.True(t, ok)
	js := string(main.Contents)
	assert.NotContains(t, js, "hello from main")
	assert.NotContains(t, js, "sourceMappingURL")
	assert.Contains(t, js, "data:image/png")
	assert.Contains(t, js, `"Shop"`)

	var bigFound, chunkFound bool
	for _, f := range res.Files {
		assert.False(t, strings.HasPrefix(f.Path, "assets/vendor-"), f.Path)
		if strings.HasPrefix(f.Path, "assets/big-") {
			bigFound = true
			assert.Equal(t, KindAsset, f.Kind)
		}
		if strings.HasPrefix(f.Path, "assets/chunk-") && bytes.Contains(f.Contents, []byte("42")) {
			chunkFound = true
		}
	}
	assert.True(t, bigFound, "assets above the inline limit are emitted as files")
	assert.True(t, chunkFound, "manual chunk modules land in a shared chunk")
}

func TestBuild_DevelopmentKeepsConsoleAndInlineMaps(t *testing.T) {
	root := writeProject(t, sampleProject())
	d := newDescriptor(t, descriptor.ModeDevelopment, root, nil)

	res, err := Build(context.Background(), d, TargetDev)
	require.NoError(t, err)

	entry := res.Entries["src/main.js"]
	assert.Equal(t, "assets/main.js", entry.Script)
	main, ok := res.File(entry.Script)
	require.True(t, ok)
	assert.Contains(t, string(main.Contents), "hello from main")
	assert.Contains(t, string(main.Contents), "sourceMappingURL=data:")
}

func TestBuild_SyntaxErrorIsBuildError(t *testing.T) {
	files := sampleProject()
	files["src/main.js"] = "export const = ;"
	root := writeProject(t, files)
	d := newDescriptor(t, descriptor.ModeProduction, root, nil)

	_, err := Build(context.Background(), d, TargetBuild)
	var buildErr *BuildError
	require.True(t, errors.As(err, &buildErr), "got %v", err)
	assert.NotEmpty(t, buildErr.Messages)
}

func TestBuild_NoIndex(t *testing.T) {
	d := newDescriptor(t, descriptor.ModeProduction, t.TempDir(), nil)

	_, err := Build(context.Background(), d, TargetBuild)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuild_TransformHTML(t *testing.T) {
	root := writeProject(t, sampleProject())
	d := newDescriptor(t, descriptor.ModeProduction, root, map[string]string{"VITE_TITLE": "Shop"})

	res, err := Build(context.Background(), d, TargetBuild)
	require.NoError(t, err)

	index, err := ReadIndex(root)
	require.NoError(t, err)
	out, err := TransformHTML(index, res, HTMLOptions{Base: d.Base, Replacements: d.HTMLReplacements()})
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<title>Shop</title>")
	assert.Contains(t, html, `src="/`+res.Entries["src/main.js"].Script+`"`)
	assert.Contains(t, html, `href="/`+res.Entries["src/main.js"].CSS+`"`)
}

func TestWatcher_DeliversInitialAndChangedBuilds(t *testing.T) {
	root := writeProject(t, sampleProject())
	d := newDescriptor(t, descriptor.ModeDevelopment, root, nil)

	var (
		mu      sync.Mutex
		results []*Result
		errs    []error
	)
	w, err := NewWatcher(d, func(rb Rebuild) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, rb.Result)
		errs = append(errs, rb.Err)
		assert.Positive(t, rb.Took)
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Start())

	mu.Lock()
	require.NotEmpty(t, results)
	require.NoError(t, errs[0])
	mu.Unlock()

	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.js"), []byte("export const = ;"), 0o600))
	w.Rebuild()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		var be *BuildError
		return errors.As(errs[len(errs)-1], &be)
	}, 5*time.Second, 20*time.Millisecond)
}
