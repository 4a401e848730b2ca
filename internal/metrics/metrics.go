// Package metrics holds the Prometheus collectors of the dev server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "frontkit"

// Metrics holds all collectors on a private registry, so several dev servers
// in one process (tests) never clash.
type Metrics struct {
	registry *prometheus.Registry

	proxyRequests   *prometheus.CounterVec
	rebuildDuration prometheus.Histogram
	rebuildFailures prometheus.Counter
	assetsServed    *prometheus.CounterVec
	sseClients      prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		proxyRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proxy_requests_total",
			Help:      "Requests forwarded by the dev proxy, by rule and status class.",
		}, []string{"rule", "class"}),
		rebuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rebuild_duration_seconds",
			Help:      "Duration of dev rebuilds.",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		rebuildFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rebuild_failures_total",
			Help:      "Dev rebuilds that ended with errors.",
		}),
		assetsServed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assets_served_total",
			Help:      "Assets served from the in-memory dev build, by kind.",
		}, []string{"kind"}),
		sseClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "event_clients",
			Help:      "Browsers connected to the live reload stream.",
		}),
	}
}

// ObserveProxy counts one proxied request.
func (m *Metrics) ObserveProxy(rule string, status int) {
	m.proxyRequests.WithLabelValues(rule, StatusClass(status)).Inc()
}

// ObserveRebuild records a finished rebuild.
func (m *Metrics) ObserveRebuild(took time.Duration, failed bool) {
	m.rebuildDuration.Observe(took.Seconds())
	if failed {
		m.rebuildFailures.Inc()
	}
}

// AssetServed counts one asset answered from the dev build.
func (m *Metrics) AssetServed(kind string) {
	m.assetsServed.WithLabelValues(kind).Inc()
}

// ClientConnected and ClientDisconnected track live reload subscribers.
func (m *Metrics) ClientConnected()    { m.sseClients.Inc() }
func (m *Metrics) ClientDisconnected() { m.sseClients.Dec() }

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// StatusClass renders an HTTP status as "2xx", "5xx" and so on.
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
