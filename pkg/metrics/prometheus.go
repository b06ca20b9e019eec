package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	cacheLookups   *prometheus.CounterVec
	localThrottles prometheus.Counter
	providerErrors *prometheus.CounterVec
	stageDuration  *prometheus.HistogramVec
	analyses       *prometheus.CounterVec
}

// New creates a recorder registered with the default registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a recorder registered with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stocklens",
				Subsystem: "quotes",
				Name:      "cache_lookups_total",
				Help:      "Quote cache lookups by result",
			},
			[]string{"result"},
		),
		localThrottles: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: "stocklens",
				Subsystem: "quotes",
				Name:      "local_throttles_total",
				Help:      "Quote lookups refused by the per-symbol window",
			},
		),
		providerErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stocklens",
				Name:      "provider_errors_total",
				Help:      "Upstream provider failures by kind",
			},
			[]string{"provider", "kind"},
		),
		stageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stocklens",
				Subsystem: "analysis",
				Name:      "stage_duration_seconds",
				Help:      "Duration of analysis pipeline stages",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"stage"},
		),
		analyses: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stocklens",
				Subsystem: "analysis",
				Name:      "runs_total",
				Help:      "Finished analysis runs by outcome",
			},
			[]string{"result"},
		),
	}
}

// RecordCacheHit counts a quote served from cache. Quote counters carry no
// symbol label; symbols come straight from request input.
func (r *Recorder) RecordCacheHit(string) {
	r.cacheLookups.WithLabelValues("hit").Inc()
}

// RecordCacheMiss counts a quote that required a provider call.
func (r *Recorder) RecordCacheMiss(string) {
	r.cacheLookups.WithLabelValues("miss").Inc()
}

func (r *Recorder) RecordLocalThrottle(string) {
	r.localThrottles.Inc()
}

func (r *Recorder) RecordProviderError(provider, kind string) {
	r.providerErrors.WithLabelValues(provider, kind).Inc()
}

func (r *Recorder) RecordStage(stage string, seconds float64) {
	r.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordAnalysis counts a finished run; result is "ok" or a failure kind.
func (r *Recorder) RecordAnalysis(result string) {
	r.analyses.WithLabelValues(result).Inc()
}
