package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes Prometheus instruments for committee operations.
type Recorder struct {
	decisionsTotal *prometheus.CounterVec
	lastScore      *prometheus.GaugeVec
	scoreDist      prometheus.Histogram
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		decisionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "committee_decisions_total",
				Help: "Total decisions issued, by symbol and verdict",
			},
			[]string{"symbol", "decision"},
		),
		lastScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "committee_last_score",
				Help: "Last final score for a symbol",
			},
			[]string{"symbol"},
		),
		scoreDist: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "committee_score_distribution",
				Help:    "Distribution of final scores across evaluations",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "committee_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "committee_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordDecision records a committee verdict for a symbol.
func (r *Recorder) RecordDecision(symbol, decision string) {
	r.decisionsTotal.WithLabelValues(symbol, decision).Inc()
}

// RecordScore records the final score for a symbol.
func (r *Recorder) RecordScore(symbol string, score int) {
	r.lastScore.WithLabelValues(symbol).Set(float64(score))
	r.scoreDist.Observe(float64(score))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
