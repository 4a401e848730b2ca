package bundler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryPoints(t *testing.T) {
	src := []byte(`<!doctype html>
<html>
  <head>
    <script type="module" src="/src/main.tsx"></script>
    <script src="/legacy.js"></script>
    <script type="module" src="https://cdn.example.com/lib.js"></script>
  </head>
  <body>
    <script type="module" src="./src/widget.ts?v=2"></script>
    <script type="module" src="/src/main.tsx"></script>
    <script type="module">console.log("inline")</script>
  </body>
</html>`)

	entries, err := EntryPoints(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main.tsx", "src/widget.ts"}, entries)
}

func TestEntryPoints_NoModules(t *testing.T) {
	_, err := EntryPoints([]byte(`<html><body><script src="/app.js"></script></body></html>`))
	assert.ErrorIs(t, err, ErrNoEntryPoints)
}

func TestReadIndex_Missing(t *testing.T) {
	_, err := ReadIndex(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadIndex(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<html></html>"), 0o600))

	data, err := ReadIndex(root)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}
