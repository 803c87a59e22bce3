package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	DashboardLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "staypulse",
			Subsystem: "dashboard",
			Name:      "latency_seconds",
			Help:      "Latency of dashboard endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	DashboardErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "staypulse",
			Subsystem: "dashboard",
			Name:      "errors_total",
			Help:      "Errors by dashboard endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(DashboardLatency, DashboardErrors)
	})
}
