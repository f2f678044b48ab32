package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"todolists/internal/adapter/telemetry"
	"todolists/pkg/config"
)

func TestNewContainer_WithoutEndpoint(t *testing.T) {
	ctx := context.Background()

	container, err := telemetry.NewContainer(ctx, config.TelemetryConfig{
		ServiceName:    "todolists",
		ServiceVersion: "test",
	}, "test")
	require.NoError(t, err)

	families, err := container.PrometheusRegistry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	assert.NoError(t, container.Shutdown(ctx))
}

func TestNewContainer_RuntimeMetricsReachReader(t *testing.T) {
	ctx := context.Background()

	container, err := telemetry.NewContainer(ctx, config.TelemetryConfig{ServiceName: "todolists"}, "test")
	require.NoError(t, err)
	defer container.Shutdown(ctx)

	var collected metricdata.ResourceMetrics
	require.NoError(t, container.MetricReader.Collect(ctx, &collected))

	var names []string
	for _, scope := range collected.ScopeMetrics {
		for _, m := range scope.Metrics {
			names = append(names, m.Name)
		}
	}

	assert.NotEmpty(t, names)
}
