package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes recorded per adapter call.
const (
	OutcomeSuccess = "success"
	OutcomeNoData  = "no_data"
	OutcomeError   = "error"
)

// Metrics holds the Prometheus counters and histograms for the aggregation
// engine.
type Metrics struct {
	ProviderFetches *prometheus.CounterVec   // labels: source, outcome
	FallbackDepth   *prometheus.HistogramVec // labels: source; stations consulted per request
	SummaryRequests *prometheus.CounterVec   // labels: outcome={ok,invalid,error}
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.ProviderFetches, m.FallbackDepth, m.SummaryRequests)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry,
// so parallel tests do not trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ProviderFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dive_marine",
			Name:      "provider_fetch_total",
			Help:      "Adapter calls by source and outcome.",
		}, []string{"source", "outcome"}),
		FallbackDepth: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dive_marine",
			Name:      "fallback_depth",
			Help:      "Stations consulted per metric family per request.",
			Buckets:   []float64{1, 2, 3, 5, 10},
		}, []string{"source"}),
		SummaryRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dive_marine",
			Name:      "summary_requests_total",
			Help:      "Summary requests by outcome.",
		}, []string{"outcome"}),
	}
}
