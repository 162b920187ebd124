package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerAttempts *prometheus.CounterVec
	providerFailures *prometheus.CounterVec
	fetchLatency     *prometheus.HistogramVec
	degradedTotal    *prometheus.CounterVec
	recommendations  *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		providerAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockmind_provider_attempts_total",
				Help: "Total number of quote provider fetch attempts",
			},
			[]string{"provider"},
		),
		providerFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockmind_provider_failures_total",
				Help: "Total number of quote provider failures by kind",
			},
			[]string{"provider", "kind"},
		),
		fetchLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockmind_fetch_duration_seconds",
				Help:    "Duration of quote fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		degradedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockmind_degraded_responses_total",
				Help: "Total number of degraded recommendation responses",
			},
			[]string{"source"},
		),
		recommendations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockmind_recommendations_total",
				Help: "Total number of recommendations by action",
			},
			[]string{"action"},
		),
	}
}

// RecordProviderAttempt records one fetch attempt against a provider.
func (r *Recorder) RecordProviderAttempt(provider string) {
	r.providerAttempts.WithLabelValues(provider).Inc()
}

// RecordProviderFailure records a provider failure by kind (retryable, terminal).
func (r *Recorder) RecordProviderFailure(provider, kind string) {
	r.providerFailures.WithLabelValues(provider, kind).Inc()
}

// RecordFetchLatency records fetch latency in seconds.
func (r *Recorder) RecordFetchLatency(provider string, seconds float64) {
	r.fetchLatency.WithLabelValues(provider).Observe(seconds)
}

// RecordDegraded records a degraded response by its source.
func (r *Recorder) RecordDegraded(source string) {
	r.degradedTotal.WithLabelValues(source).Inc()
}

// RecordRecommendation records an emitted recommendation action.
func (r *Recorder) RecordRecommendation(action string) {
	r.recommendations.WithLabelValues(action).Inc()
}
