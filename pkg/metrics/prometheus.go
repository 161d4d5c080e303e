package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	evaluationsTotal prometheus.Counter
	candidates       prometheus.Gauge
	topScore         prometheus.Gauge
	rejectionsTotal  *prometheus.CounterVec
	fetchErrorsTotal *prometheus.CounterVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		evaluationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "flippulse_evaluations_total",
				Help: "Total number of completed evaluation passes",
			},
		),
		candidates: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "flippulse_candidates",
				Help: "Number of accepted flip candidates in the latest pass",
			},
		),
		topScore: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "flippulse_top_score",
				Help: "Score of the best ranked candidate in the latest pass",
			},
		),
		rejectionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flippulse_rejections_total",
				Help: "Total number of per-item rejections by pipeline stage",
			},
			[]string{"stage"},
		),
		fetchErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flippulse_fetch_errors_total",
				Help: "Total number of data source fetch errors",
			},
			[]string{"source"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flippulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordEvaluation records a completed evaluation pass.
func (r *Recorder) RecordEvaluation(candidates int, topScore float64) {
	r.evaluationsTotal.Inc()
	r.candidates.Set(float64(candidates))
	r.topScore.Set(topScore)
}

// RecordRejections records per-stage rejection counts for a pass.
func (r *Recorder) RecordRejections(byStage map[string]int) {
	for stage, n := range byStage {
		r.rejectionsTotal.WithLabelValues(stage).Add(float64(n))
	}
}

// RecordFetchError records a data source fetch failure.
func (r *Recorder) RecordFetchError(source string) {
	r.fetchErrorsTotal.WithLabelValues(source).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
