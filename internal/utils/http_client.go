package utils

import (
	"net/http"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so callers get its whole API and can be
// extended with frontkit-specific behaviour.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with its own connection pool.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}

// NoRedirectPolicy makes the client return the first response instead of
// following redirects.
func NoRedirectPolicy() resty.RedirectPolicy {
	return resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	})
}
