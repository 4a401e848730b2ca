package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/frontkit/internal/descriptor"
	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/internal/service"
)

func newPreviewRouter(t *testing.T) http.Handler {
	t.Helper()
	desc := newDescriptor(t, descriptor.ModeProduction, nil)
	fs := afero.NewMemMapFs()
	writeFile(t, fs, projectRoot+"/dist/index.html", "<html><body>built</body></html>")
	writeFile(t, fs, projectRoot+"/dist/assets/index-AB12.js", strings.Repeat("let a=1;", 100))
	writeFile(t, fs, projectRoot+"/dist/robots.txt", "User-agent: *")

	preview, err := service.NewPreviewService(fs, desc, logger.Nop())
	require.NoError(t, err)
	return NewPreviewHandler(preview, desc, logger.Nop()).InitPreview()
}

func TestPreview_Files(t *testing.T) {
	router := newPreviewRouter(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
		wantCache  string
	}{
		{"root", "/", http.StatusOK, "<body>built</body>", cacheNoCache},
		{"hashed asset", "/assets/index-AB12.js", http.StatusOK, "let a=1;", cacheImmutable},
		{"public file", "/robots.txt", http.StatusOK, "User-agent", cacheNoCache},
		{"client route", "/orders/42", http.StatusOK, "<body>built</body>", cacheNoCache},
		{"missing asset", "/assets/gone.js", http.StatusNotFound, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
			if tt.wantCache != "" {
				assert.Equal(t, tt.wantCache, rr.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestPreview_GzipsAssets(t *testing.T) {
	router := newPreviewRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/assets/index-AB12.js", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("let a=1;", 100), string(body))
}

func TestPreview_ProxiesAPI(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "upstream "+r.URL.Path)
	}))
	t.Cleanup(upstream.Close)

	desc := newDescriptor(t, descriptor.ModeProduction, map[string]string{descriptor.APITargetKey: upstream.URL})
	fs := afero.NewMemMapFs()
	writeFile(t, fs, projectRoot+"/dist/index.html", "<html></html>")
	preview, err := service.NewPreviewService(fs, desc, logger.Nop())
	require.NoError(t, err)
	router := NewPreviewHandler(preview, desc, logger.Nop()).InitPreview()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/items", nil))
	assert.Equal(t, "upstream /items", rr.Body.String())
}

func TestPreview_MiddlewaresWrapEveryPath(t *testing.T) {
	router := newPreviewRouter(t)

	for _, target := range []string{"/", "/assets/index-AB12.js", "/orders/42", "/assets/gone.js"} {
		t.Run(target, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			req.Header.Set(traceIDHeader, "trace-"+target)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, "trace-"+target, rr.Header().Get(traceIDHeader))
		})
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}
