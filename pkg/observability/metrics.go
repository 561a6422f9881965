// Package observability provides Prometheus metrics for the server and
// a handler that serves the text exposition format through the server's
// own codec.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal counts served requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weblet_requests_total",
			Help: "Total requests served",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weblet_request_duration_seconds",
			Help:    "Request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// ConnectionsActive tracks connections currently being served.
	ConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "weblet_connections_active",
			Help: "Active connections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		ConnectionsActive,
	)
}

// Recorder feeds the server's per-request observations into the
// Prometheus collectors. It implements server.Recorder.
type Recorder struct{}

// ConnOpened increments the active-connections gauge.
func (Recorder) ConnOpened() {
	ConnectionsActive.Inc()
}

// ConnClosed decrements the active-connections gauge.
func (Recorder) ConnClosed() {
	ConnectionsActive.Dec()
}

// ObserveRequest records one served request.
func (Recorder) ObserveRequest(method string, status int, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, statusClass(status)).Inc()
	RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// statusClass collapses a status code into its class ("2xx", "4xx", …)
// to keep label cardinality bounded.
func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
