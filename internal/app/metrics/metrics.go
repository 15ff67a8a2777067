// Package metrics exposes pipeline counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the pipeline's Prometheus collectors.
type Metrics struct {
	JobsProcessed    *prometheus.CounterVec
	PollDuration     *prometheus.HistogramVec
	QuotaRejections  prometheus.Counter
	SpeakersResolved *prometheus.CounterVec
	ProviderRetries  *prometheus.CounterVec
}

// New registers the collectors on the given registerer. Pass
// prometheus.DefaultRegisterer in production.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		JobsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "meetscribe_jobs_processed_total",
			Help: "Jobs that reached a terminal pipeline outcome, by provider and status.",
		}, []string{"provider", "status"}),

		PollDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meetscribe_poll_duration_seconds",
			Help:    "End-to-end duration of one poll request, by provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),

		QuotaRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "meetscribe_quota_rejections_total",
			Help: "Jobs rejected by the quota guard.",
		}),

		SpeakersResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "meetscribe_speakers_resolved_total",
			Help: "Speakers processed by identity resolution, by outcome.",
		}, []string{"outcome"}),

		ProviderRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "meetscribe_provider_retries_total",
			Help: "Transient provider failures that triggered a retry.",
		}, []string{"provider"}),
	}
}
