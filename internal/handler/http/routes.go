package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MKhiriev/frontkit/internal/service"
)

// Internal endpoints of the dev server.
const (
	internalPrefix = "/__frontkit"
	EventsPath     = internalPrefix + "/events"
	ClientPath     = service.ClientScriptPath
	MetricsPath    = internalPrefix + "/metrics"
	StatusPath     = internalPrefix + "/status"
)

// InitDev returns the router of the dev server.
func (h *Handler) InitDev() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if desc := h.dev.Descriptor(); desc != nil && desc.Server.CORS {
		router.Use(cors.AllowAll().Handler)
	}
	router.Use(h.withProxy)

	router.Get(EventsPath, h.events)
	router.Get(ClientPath, h.clientScript)
	router.Get(StatusPath, h.status)
	if h.metrics != nil {
		router.Method("GET", MetricsPath, h.metrics.Handler())
	}

	router.NotFound(h.devAsset)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// InitPreview returns the router of the preview server.
func (h *Handler) InitPreview() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withProxy)
	router.Use(withGZip)

	router.Handle("/*", http.HandlerFunc(h.previewFile))
	router.NotFound(h.previewFile)

	return router
}
