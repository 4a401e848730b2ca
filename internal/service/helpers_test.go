package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/frontkit/internal/descriptor"
)

var fixedNow = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

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
		"index.html": `<!doctype html><html><head><title>%MODE%</title></head>` +
			`<body><div id="root"></div><script type="module" src="/src/main.js"></script></body></html>`,
		"src/main.js":       "import \"./style.css\";\nconsole.log(\"booting\");\nexport const version = __APP_VERSION__;\n",
		"src/style.css":     "body { margin: 0; }\n",
		"public/robots.txt": "User-agent: *\n",
		".env":              "VITE_TITLE=Shop\nSECRET=hidden\n",
	}
}

func newLoader(mode, root string, overrides descriptor.Overrides) DescriptorLoader {
	return NewDescriptorLoader(mode, root, overrides,
		descriptor.WithVersion("1.2.3"),
		descriptor.WithClock(func() time.Time { return fixedNow }),
		descriptor.WithLookupEnv(func(string) (string, bool) { return "", false }),
	)
}

func loadDescriptor(t *testing.T, mode, root string) *descriptor.Descriptor {
	t.Helper()
	desc, err := newLoader(mode, root, descriptor.Overrides{}).Load()
	require.NoError(t, err)
	return desc
}
