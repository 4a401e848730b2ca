package bundler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexSrc = `<!doctype html>
<html>
  <head><title>%VITE_TITLE% (%MODE%)</title></head>
  <body>
    <div id="root">%UNKNOWN%</div>
    <script type="module" src="/src/main.tsx"></script>
  </body>
</html>`

func TestTransformHTML(t *testing.T) {
	res := &Result{Entries: map[string]Entry{
		"src/main.tsx": {Script: "assets/main-ABC.js", CSS: "assets/main-DEF.css"},
	}}

	out, err := TransformHTML([]byte(indexSrc), res, HTMLOptions{
		Base:         "/",
		Replacements: map[string]string{"%VITE_TITLE%": "Shop", "%MODE%": "production"},
	})
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<title>Shop (production)</title>")
	assert.Contains(t, html, "%UNKNOWN%")
	assert.Contains(t, html, `<script type="module" src="/assets/main-ABC.js"></script>`)
	assert.Contains(t, html, `<link rel="stylesheet" href="/assets/main-DEF.css"/>`)
	assert.NotContains(t, html, "/__frontkit/client.js")
}

func TestTransformHTML_ClientScriptAndBase(t *testing.T) {
	res := &Result{Entries: map[string]Entry{
		"src/main.tsx": {Script: "assets/main.js"},
	}}

	out, err := TransformHTML([]byte(indexSrc), res, HTMLOptions{
		Base:         "/app/",
		ClientScript: "/__frontkit/client.js",
	})
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `src="/app/assets/main.js"`)
	assert.Contains(t, html, `<script type="module" src="/__frontkit/client.js"></script>`)
	assert.NotContains(t, html, "stylesheet")
}

func TestTransformHTML_UnknownEntryKept(t *testing.T) {
	out, err := TransformHTML([]byte(indexSrc), &Result{}, HTMLOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(out), `src="/src/main.tsx"`)
}

func TestURLPath(t *testing.T) {
	assert.Equal(t, "/assets/a.js", URLPath("/", "assets/a.js"))
	assert.Equal(t, "/assets/a.js", URLPath("", "assets/a.js"))
	assert.Equal(t, "/app/assets/a.js", URLPath("/app/", "assets/a.js"))
}
