package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the advisory
// pipeline and the upstream weather clients.
type Metrics struct {
	AdvisoryRequests *prometheus.CounterVec // labels: outcome={success,not_found,unavailable,error}
	AdvisoryDuration prometheus.Histogram

	UpstreamRequests *prometheus.CounterVec   // labels: target={geocode,forecast}, outcome={success,error,empty}
	UpstreamDuration *prometheus.HistogramVec // labels: target={geocode,forecast}
	CacheLookups     *prometheus.CounterVec   // labels: target={geocode,forecast}, result={hit,miss}

	Logins        *prometheus.CounterVec // labels: outcome={success,rejected}
	Registrations *prometheus.CounterVec // labels: outcome={success,duplicate,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.AdvisoryRequests,
		m.AdvisoryDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.CacheLookups,
		m.Logins,
		m.Registrations,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// construct the service graph repeatedly without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		AdvisoryRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farm_advisor",
			Name:      "advisory_requests_total",
			Help:      "Advisory computations by outcome.",
		}, []string{"outcome"}),
		AdvisoryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "farm_advisor",
			Name:      "advisory_duration_seconds",
			Help:      "Duration of a full geocode-fetch-score advisory run.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farm_advisor",
			Name:      "upstream_requests_total",
			Help:      "OpenWeather API requests by target and outcome.",
		}, []string{"target", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "farm_advisor",
			Name:      "upstream_duration_seconds",
			Help:      "OpenWeather API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 12},
		}, []string{"target"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farm_advisor",
			Name:      "cache_lookups_total",
			Help:      "Upstream result cache lookups by target and result.",
		}, []string{"target", "result"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farm_advisor",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farm_advisor",
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome.",
		}, []string{"outcome"}),
	}
}
