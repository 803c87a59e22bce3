package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	snapshotsTotal *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	subsetSize     *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		snapshotsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staypulse_snapshots_total",
				Help: "Total number of dashboard snapshots computed",
			},
			[]string{"filter"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staypulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		subsetSize: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "staypulse_subset_size",
				Help: "Listings in the last computed subset per filter",
			},
			[]string{"filter"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "staypulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSnapshot records a computed dashboard snapshot.
func (r *Recorder) RecordSnapshot(filter string) {
	r.snapshotsTotal.WithLabelValues(filterLabel(filter)).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSubsetSize records the size of the last computed subset.
func (r *Recorder) RecordSubsetSize(filter string, n int) {
	r.subsetSize.WithLabelValues(filterLabel(filter)).Set(float64(n))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

func filterLabel(filter string) string {
	if filter == "" {
		return "all"
	}
	return filter
}
