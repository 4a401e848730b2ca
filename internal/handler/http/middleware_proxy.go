package http

import (
	"net/http"
	"sync"

	"github.com/MKhiriev/frontkit/internal/descriptor"
	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/internal/proxy"
)

// dynamicProxy dispatches to the proxy rules of the current descriptor. The
// rules are rebuilt when a dev restart swaps the descriptor.
type dynamicProxy struct {
	current  func() *descriptor.Descriptor
	observer proxy.Observer
	logger   *logger.Logger

	mu   sync.Mutex
	desc *descriptor.Descriptor
	mw   func(http.Handler) http.Handler
}

func newDynamicProxy(current func() *descriptor.Descriptor, observer proxy.Observer, logger *logger.Logger) *dynamicProxy {
	return &dynamicProxy{current: current, observer: observer, logger: logger}
}

// middleware returns the proxy middleware for the current descriptor, or nil
// when there is none.
func (p *dynamicProxy) middleware() (func(http.Handler) http.Handler, error) {
	desc := p.current()
	if desc == nil {
		return nil, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if desc == p.desc {
		return p.mw, nil
	}
	mw, err := proxy.Middleware(desc.ProxyTable(), p.logger, p.observer)
	if err != nil {
		return nil, err
	}
	p.desc, p.mw = desc, mw
	return mw, nil
}

// withProxy hands requests matching a proxy rule to the upstream before any
// route is considered.
func (h *Handler) withProxy(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mw, err := h.proxies.middleware()
		if err != nil {
			logger.FromRequest(r).Err(err).Msg("invalid proxy rules")
			http.Error(w, "invalid proxy rules", http.StatusInternalServerError)
			return
		}
		if mw == nil {
			next.ServeHTTP(w, r)
			return
		}
		mw(next).ServeHTTP(w, r)
	})
}
