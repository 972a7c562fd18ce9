package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the console's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	exportRows       *prometheus.CounterVec
	enrichFallbacks  *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rental_admin",
			Name:      "upstream_requests_total",
			Help:      "Requests issued to the rental API, by operation and HTTP status.",
		}, []string{"op", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rental_admin",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of rental API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		exportRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rental_admin",
			Name:      "export_rows_total",
			Help:      "Rows written to spreadsheet exports.",
		}, []string{"screen"}),
		enrichFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rental_admin",
			Name:      "export_enrich_fallbacks_total",
			Help:      "Export rows that fell back to the list record after a failed detail fetch.",
		}, []string{"screen"}),
	}
	reg.MustRegister(m.upstreamRequests, m.upstreamDuration, m.exportRows, m.enrichFallbacks)
	return m
}

// ObserveUpstream records one rental API call. status 0 means transport failure.
func (m *Metrics) ObserveUpstream(op string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(op, strconv.Itoa(status)).Inc()
	m.upstreamDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) ObserveExport(screen string, rows, fallbacks int) {
	if m == nil {
		return
	}
	m.exportRows.WithLabelValues(screen).Add(float64(rows))
	if fallbacks > 0 {
		m.enrichFallbacks.WithLabelValues(screen).Add(float64(fallbacks))
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
