package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
	Checkouts *prometheus.CounterVec
	Exports   *prometheus.CounterVec

	registry *prometheus.Registry
}

// New registers the collectors on a private registry so several instances
// can coexist in one process.
func New(namespace string) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Completed checkouts by payment method.",
	}, []string{"payment_method"})
	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Generated exports by format and outcome.",
	}, []string{"format", "outcome"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(requests, latency, checkouts, exports)
	return &Metrics{
		Requests:  requests,
		LatencyMS: latency,
		Checkouts: checkouts,
		Exports:   exports,
		registry:  reg,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCheckout counts a completed sale. Safe on a nil receiver.
func (m *Metrics) ObserveCheckout(method string) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(method).Inc()
}

// ObserveExport counts an export attempt. Safe on a nil receiver.
func (m *Metrics) ObserveExport(format string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Exports.WithLabelValues(format, outcome).Inc()
}
