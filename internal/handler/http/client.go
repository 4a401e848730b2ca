package http

import (
	_ "embed"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/frontkit/internal/utils"
)

//go:embed client.js
var clientScript string

const (
	overlayPlaceholder = "__FRONTKIT_OVERLAY__"
	eventsPlaceholder  = "__FRONTKIT_EVENTS__"
)

// clientScript serves the live reload client. The overlay flag follows the
// current descriptor.
func (h *Handler) clientScript(w http.ResponseWriter, r *http.Request) {
	overlay := true
	if desc := h.dev.Descriptor(); desc != nil {
		overlay = desc.Server.HMR.Overlay
	}

	script := strings.NewReplacer(
		overlayPlaceholder, strconv.FormatBool(overlay),
		eventsPlaceholder, strconv.Quote(EventsPath),
	).Replace(clientScript)

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write([]byte(script))
	}
}

// status reports the latest dev build as JSON.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, h.dev.Status(), http.StatusOK)
}
