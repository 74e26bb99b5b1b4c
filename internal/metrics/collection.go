package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vfg2006/social-metrics-api/internal/domain"
)

// CollectionMetrics expõe a telemetria das coletas e do rollup
type CollectionMetrics struct {
	SnapshotsTotal     *prometheus.CounterVec
	CollectionDuration *prometheus.HistogramVec
	RetriesTotal       *prometheus.CounterVec
	UpstreamErrors     *prometheus.CounterVec
	RateLimitRemaining *prometheus.GaugeVec
	JobRunsTotal       *prometheus.CounterVec
}

// NewCollectionMetrics registra as métricas em reg. Com reg nil usa o registry padrão.
func NewCollectionMetrics(reg prometheus.Registerer) *CollectionMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &CollectionMetrics{
		SnapshotsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "social_snapshots_total",
				Help: "Total number of collection attempts per platform and status",
			},
			[]string{"platform", "status"},
		),
		CollectionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "social_collection_duration_seconds",
				Help:    "Time spent collecting one platform snapshot",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"platform"},
		),
		RetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "social_upstream_retries_total",
				Help: "Total number of retried upstream requests",
			},
			[]string{"platform"},
		),
		UpstreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "social_upstream_errors_total",
				Help: "Total number of upstream requests that failed after retries",
			},
			[]string{"platform"},
		),
		RateLimitRemaining: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "social_rate_limit_remaining",
				Help: "Last observed remaining quota per platform",
			},
			[]string{"platform"},
		),
		JobRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "social_scheduler_job_runs_total",
				Help: "Total number of scheduler job runs per job and outcome",
			},
			[]string{"job", "outcome"},
		),
	}
}

// ObserveSnapshot registra o resultado de uma coleta. Aceita receiver nil.
func (m *CollectionMetrics) ObserveSnapshot(platform domain.Platform, status domain.CollectionStatus, elapsed time.Duration, api domain.APIMetrics) {
	if m == nil {
		return
	}

	p := string(platform)
	m.SnapshotsTotal.WithLabelValues(p, string(status)).Inc()
	m.CollectionDuration.WithLabelValues(p).Observe(elapsed.Seconds())
	m.RetriesTotal.WithLabelValues(p).Add(float64(api.RetryCount))
	m.UpstreamErrors.WithLabelValues(p).Add(float64(api.ErrorCount))

	if !api.RateLimits.ResetTime.IsZero() {
		m.RateLimitRemaining.WithLabelValues(p).Set(float64(api.RateLimits.Remaining))
	}
}

// ObserveJob conta uma execução de job do scheduler (outcome: success, failed, skipped)
func (m *CollectionMetrics) ObserveJob(job, outcome string) {
	if m == nil {
		return
	}
	m.JobRunsTotal.WithLabelValues(job, outcome).Inc()
}
