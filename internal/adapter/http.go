package adapter

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/internal/utils"
)

// DefaultCheckTimeout bounds one check when no timeout is configured.
const DefaultCheckTimeout = 2 * time.Second

// CheckerConfig configures [NewHTTPUpstreamChecker].
type CheckerConfig struct {
	Timeout time.Duration
	// Secure verifies TLS certificates of https targets.
	Secure bool
}

type httpUpstreamChecker struct {
	client *utils.HTTPClient
	logger *logger.Logger
	now    func() time.Time
}

// NewHTTPUpstreamChecker constructs a resty-backed [UpstreamChecker]. Redirects
// are not followed: a 3xx already proves the upstream is up.
func NewHTTPUpstreamChecker(cfg CheckerConfig, log *logger.Logger) UpstreamChecker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultCheckTimeout
	}

	client := utils.NewHTTPClient()
	client.
		SetTimeout(cfg.Timeout).
		SetRedirectPolicy(utils.NoRedirectPolicy())
	if !cfg.Secure {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // dev upstreams often use self-signed certs
	}

	return &httpUpstreamChecker{client: client, logger: log, now: time.Now}
}

// Check implements [UpstreamChecker].
func (p *httpUpstreamChecker) Check(ctx context.Context, target string) (Status, error) {
	baseURL, err := normalizeBaseURL(target)
	if err != nil {
		return Status{Target: target}, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	status := Status{Target: baseURL}
	start := p.now()

	resp, err := p.client.R().
		SetContext(ctx).
		Head(baseURL)
	status.Latency = p.now().Sub(start)
	if err != nil && (resp == nil || resp.RawResponse == nil) {
		p.logger.Debug().Err(err).Str("target", baseURL).Msg("upstream check failed")
		return status, fmt.Errorf("%w: %s: %w", ErrUpstreamUnreachable, baseURL, err)
	}

	status.Reachable = true
	status.StatusCode = resp.StatusCode()
	p.logger.Debug().
		Str("target", baseURL).
		Int("status", status.StatusCode).
		Dur("latency", status.Latency).
		Msg("upstream answered")

	return status, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
