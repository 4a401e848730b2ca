package http

import (
	"bytes"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/MKhiriev/frontkit/internal/bundler"
	"github.com/MKhiriev/frontkit/internal/logger"
)

const (
	cacheNoCache   = "no-cache"
	cacheImmutable = "public, max-age=31536000, immutable"
)

// devAsset serves, in order, an output of the latest build, a file of the
// public dir, or index.html for client-side routes.
func (h *Handler) devAsset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	desc := h.dev.Descriptor()
	if desc == nil {
		http.Error(w, "dev server is starting", http.StatusServiceUnavailable)
		return
	}
	rel, ok := relativePath(desc.Base, r.URL.Path)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	assets := h.dev.Assets()
	if rel != "" && rel != bundler.IndexHTML {
		if a, ok := assets.Get(rel); ok {
			if h.metrics != nil {
				h.metrics.AssetServed(string(a.Kind))
			}
			w.Header().Set("ETag", a.ETag)
			w.Header().Set("Cache-Control", cacheNoCache)
			setContentType(w, rel, a.Contents)
			http.ServeContent(w, r, rel, a.ModTime, bytes.NewReader(a.Contents))
			return
		}
		if serveFile(w, r, afero.NewHttpFs(afero.NewBasePathFs(h.fs, desc.PublicDirPath())), rel, cacheNoCache) {
			return
		}
		if !wantsIndex(r, rel) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
	}

	index, ok := assets.Index()
	if !ok {
		msg := "no build available yet"
		if err := assets.Err(); err != nil {
			msg = "build failed: " + err.Error()
		}
		http.Error(w, msg, http.StatusServiceUnavailable)
		return
	}
	serveIndex(w, r, index, assets.BuiltAt())
}

// previewFile serves a file of the build output, or index.html for
// client-side routes. Hashed assets are cached for good.
func (h *Handler) previewFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	rel, ok := relativePath(h.desc.Base, r.URL.Path)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if rel != "" && rel != bundler.IndexHTML {
		cache := cacheNoCache
		if strings.HasPrefix(rel, h.desc.Build.AssetsDir+"/") {
			cache = cacheImmutable
		}
		if serveFile(w, r, h.preview.FileSystem(), rel, cache) {
			return
		}
		if !wantsIndex(r, rel) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
	}

	index, err := h.preview.Index()
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.previewFile").Msg("error reading index.html")
		w.WriteHeader(http.StatusNotFound)
		return
	}
	serveIndex(w, r, index, time.Time{})
}

// relativePath strips base from an URL path. ok is false for paths outside
// base.
func relativePath(base, urlPath string) (string, bool) {
	if base == "" {
		base = "/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if urlPath+"/" == base {
		return "", true
	}
	if !strings.HasPrefix(urlPath, base) {
		return "", false
	}
	rel := strings.TrimPrefix(path.Clean("/"+strings.TrimPrefix(urlPath, base)), "/")
	return rel, true
}

// wantsIndex reports whether a miss should fall back to index.html: the
// path has no extension and the client accepts HTML.
func wantsIndex(r *http.Request, rel string) bool {
	if path.Ext(rel) != "" {
		return false
	}
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}

func serveIndex(w http.ResponseWriter, r *http.Request, index []byte, modTime time.Time) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", cacheNoCache)
	http.ServeContent(w, r, bundler.IndexHTML, modTime, bytes.NewReader(index))
}

// serveFile serves rel from fsys when it is a regular file. It reports false
// when there is no such file.
func serveFile(w http.ResponseWriter, r *http.Request, fsys http.FileSystem, rel, cache string) bool {
	f, err := fsys.Open("/" + rel)
	if err != nil {
		return false
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil || stat.IsDir() {
		return false
	}

	w.Header().Set("Cache-Control", cache)
	if ct := mime.TypeByExtension(path.Ext(rel)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	http.ServeContent(w, r, stat.Name(), stat.ModTime(), f)
	return true
}

func setContentType(w http.ResponseWriter, name string, contents []byte) {
	ct := mime.TypeByExtension(path.Ext(name))
	if ct == "" {
		ct = http.DetectContentType(contents)
	}
	w.Header().Set("Content-Type", ct)
}
