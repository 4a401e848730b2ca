package proxy

import (
	"crypto/tls"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/MKhiriev/frontkit/internal/logger"
)

// Observer receives the outcome of every proxied request.
type Observer interface {
	ObserveProxy(context string, status int)
}

type nopObserver struct{}

func (nopObserver) ObserveProxy(string, int) {}

// NewHandler builds a reverse proxy for rule.
//
// The rule's rewrite is applied once to the incoming path; the query string
// is kept. Upstream failures are answered with 502 Bad Gateway.
func NewHandler(rule Rule, log *logger.Logger, observer Observer) (http.Handler, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if observer == nil {
		observer = nopObserver{}
	}

	target, _ := url.Parse(rule.Target)

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !rule.Secure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // dev proxy to self-signed upstreams
	}

	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Path = ForwardPath(rule, pr.In.URL.Path)
			pr.Out.URL.RawPath = ""
			pr.SetURL(target)
			if !rule.ChangeOrigin {
				pr.Out.Host = pr.In.Host
			}
		},
		Transport: transport,
		ModifyResponse: func(resp *http.Response) error {
			observer.ObserveProxy(rule.Context, resp.StatusCode)
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Error().
				Err(err).
				Str("context", rule.Context).
				Str("target", rule.Target).
				Str("uri", r.RequestURI).
				Msg("http proxy error")
			observer.ObserveProxy(rule.Context, http.StatusBadGateway)
			w.WriteHeader(http.StatusBadGateway)
		},
	}

	return rp, nil
}

// ForwardPath returns the upstream path for an incoming path: the rule's
// rewrite applied once, with a leading slash guaranteed.
func ForwardPath(rule Rule, path string) string {
	rewritten := rule.Rewrite.Apply(path)
	if !strings.HasPrefix(rewritten, "/") {
		rewritten = "/" + rewritten
	}
	return rewritten
}

// Middleware returns an http middleware that hands requests matching one of
// the table's rules to that rule's proxy and passes everything else on.
func Middleware(table Table, log *logger.Logger, observer Observer) (func(http.Handler) http.Handler, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	handlers := make(map[string]http.Handler, len(table))
	for _, rule := range table {
		h, err := NewHandler(rule, log, observer)
		if err != nil {
			return nil, err
		}
		handlers[rule.Context] = h
		log.Debug().Str("context", rule.Context).Str("target", rule.Target).Msg("proxy rule registered")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rule, ok := table.Match(r.URL.Path); ok {
				handlers[rule.Context].ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}
