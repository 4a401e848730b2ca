// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/frontkit/internal/logger"
)

// newMockedChecker returns a checker whose transport is replaced by httpmock.
func newMockedChecker(t *testing.T) *httpUpstreamChecker {
	t.Helper()
	p := NewHTTPUpstreamChecker(CheckerConfig{Timeout: time.Second}, logger.Nop()).(*httpUpstreamChecker)

	httpmock.ActivateNonDefault(p.client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return p
}

func TestCheck_AnyStatusIsReachable(t *testing.T) {
	p := newMockedChecker(t)

	for _, code := range []int{http.StatusOK, http.StatusNotFound, http.StatusMethodNotAllowed, http.StatusServiceUnavailable} {
		httpmock.Reset()
		httpmock.RegisterResponder(http.MethodHead, "http://localhost:8080",
			httpmock.NewStringResponder(code, ""))

		status, err := p.Check(context.Background(), "http://localhost:8080/")
		require.NoError(t, err, "status %d", code)
		assert.True(t, status.Reachable)
		assert.Equal(t, code, status.StatusCode)
		assert.Equal(t, "http://localhost:8080", status.Target)
		assert.Equal(t, code < 500, status.Healthy())
	}
}

func TestCheck_AddsSchemeToBareHost(t *testing.T) {
	p := newMockedChecker(t)
	httpmock.RegisterResponder(http.MethodHead, "http://api.internal:9000",
		httpmock.NewStringResponder(http.StatusNoContent, ""))

	status, err := p.Check(context.Background(), "api.internal:9000")
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:9000", status.Target)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestCheck_TransportErrorIsUnreachable(t *testing.T) {
	p := newMockedChecker(t)
	httpmock.RegisterResponder(http.MethodHead, "http://localhost:8080",
		httpmock.NewErrorResponder(errors.New("connection refused")))

	status, err := p.Check(context.Background(), "http://localhost:8080")
	assert.ErrorIs(t, err, ErrUpstreamUnreachable)
	assert.False(t, status.Reachable)
	assert.False(t, status.Healthy())
}

func TestCheck_InvalidTarget(t *testing.T) {
	p := newMockedChecker(t)

	for _, target := range []string{"", "   ", "http://"} {
		_, err := p.Check(context.Background(), target)
		assert.ErrorIs(t, err, ErrInvalidTarget, "target %q", target)
	}
	assert.Zero(t, httpmock.GetTotalCallCount())
}

func TestCheck_RedirectIsNotFollowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		http.Redirect(w, r, "/login", http.StatusFound)
	}))
	defer srv.Close()

	p := NewHTTPUpstreamChecker(CheckerConfig{}, logger.Nop())
	status, err := p.Check(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, status.StatusCode)
}

func TestCheck_ClosedServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL
	srv.Close()

	p := NewHTTPUpstreamChecker(CheckerConfig{Timeout: time.Second}, logger.Nop())
	_, err := p.Check(context.Background(), target)
	assert.ErrorIs(t, err, ErrUpstreamUnreachable)
}
