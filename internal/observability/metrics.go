// Package observability holds the Prometheus metrics exposed on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates the dashboard's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	PaymentOutcomes  *prometheus.CounterVec
	AccountsServed   prometheus.Counter
	AccountsListSecs prometheus.Histogram
}

// New creates a Metrics set on its own registry, so repeated construction
// (one server per test) never trips duplicate-registration panics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gridbill_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		PaymentOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gridbill_payment_validations_total",
			Help: "Payment validation outcomes (accepted, rejected, malformed).",
		}, []string{"outcome"}),
		AccountsServed: factory.NewCounter(prometheus.CounterOpts{
			Name: "gridbill_accounts_served_total",
			Help: "Account records returned by the listing endpoint.",
		}),
		AccountsListSecs: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridbill_accounts_list_duration_seconds",
			Help:    "Account listing handler duration, including the artificial delay.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Registry exposes the backing registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
