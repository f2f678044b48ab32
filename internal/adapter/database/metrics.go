package database

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	statements *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		statements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todolists_statements_total",
				Help: "Total number of statements executed against the relational store",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todolists_statement_duration_seconds",
				Help:    "Duration of statements executed against the relational store",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	registry.MustRegister(metrics.statements, metrics.duration)

	return metrics
}

// Observe is safe to call on a nil *Metrics.
func (m *Metrics) Observe(operation string, outcome string, duration time.Duration) {
	if m == nil {
		return
	}

	m.statements.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}
