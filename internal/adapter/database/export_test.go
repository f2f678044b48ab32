package database

import "github.com/prometheus/client_golang/prometheus"

func StatementCounter(m *Metrics, operation string, outcome string) prometheus.Counter {
	return m.statements.WithLabelValues(operation, outcome)
}
