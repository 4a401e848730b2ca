package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/internal/service"
)

// keepAliveInterval is how often an idle event stream gets a comment line.
var keepAliveInterval = 30 * time.Second

// events streams build events to the browser as server-sent events. The
// first event is "connected" carrying the current build version.
func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	rc := http.NewResponseController(w)

	ch, cancel := h.dev.Events().Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	connected := service.Event{
		Type: service.EventConnected,
		Data: strconv.FormatUint(h.dev.Assets().Version(), 10),
	}
	if err := writeEvent(w, connected); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		log.Err(err).Str("func", "*Handler.events").Msg("event stream is not flushable")
		return
	}

	if h.metrics != nil {
		h.metrics.ClientConnected()
		defer h.metrics.ClientDisconnected()
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := writeEvent(w, ev); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

// writeEvent writes ev in the event stream format. Every line of the data
// becomes its own data field.
func writeEvent(w io.Writer, ev service.Event) error {
	var b strings.Builder
	fmt.Fprintf(&b, "event: %s\n", ev.Type)
	for _, line := range strings.Split(ev.Data, "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
