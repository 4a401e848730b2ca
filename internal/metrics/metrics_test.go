package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", StatusClass(200))
	assert.Equal(t, "3xx", StatusClass(304))
	assert.Equal(t, "5xx", StatusClass(502))
	assert.Equal(t, "unknown", StatusClass(0))
	assert.Equal(t, "unknown", StatusClass(600))
}

func TestObserveProxy(t *testing.T) {
	m := New()
	m.ObserveProxy("/api", 200)
	m.ObserveProxy("/api", 201)
	m.ObserveProxy("/api", 502)

	assert.InDelta(t, 2, testutil.ToFloat64(m.proxyRequests.WithLabelValues("/api", "2xx")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.proxyRequests.WithLabelValues("/api", "5xx")), 0)
}

func TestObserveRebuild(t *testing.T) {
	m := New()
	m.ObserveRebuild(20*time.Millisecond, false)
	m.ObserveRebuild(30*time.Millisecond, true)

	assert.InDelta(t, 1, testutil.ToFloat64(m.rebuildFailures), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.rebuildDuration))
}

func TestClientsGauge(t *testing.T) {
	m := New()
	m.ClientConnected()
	m.ClientConnected()
	m.ClientDisconnected()

	assert.InDelta(t, 1, testutil.ToFloat64(m.sseClients), 0)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.AssetServed("js")
	m.ObserveProxy("/api", 404)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/__frontkit/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `frontkit_assets_served_total{kind="js"} 1`)
	assert.Contains(t, string(body), `frontkit_proxy_requests_total{class="4xx",rule="/api"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.AssetServed("css")

	assert.InDelta(t, 1, testutil.ToFloat64(a.assetsServed.WithLabelValues("css")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.assetsServed.WithLabelValues("css")), 0)
}
