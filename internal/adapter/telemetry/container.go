package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"todolists/pkg/config"
	"todolists/pkg/tracing"
)

// Container owns the process-wide telemetry providers. The CLI exits after one
// command and serves no scrape endpoint, so runtime metrics are pulled through
// MetricReader and statement metrics gathered from PrometheusRegistry on demand.
type Container struct {
	MeterProvider      *sdkmetric.MeterProvider
	MetricReader       *sdkmetric.ManualReader
	PrometheusRegistry *prometheus.Registry

	shutdownTracer func(context.Context) error
}

func NewContainer(ctx context.Context, cfg config.TelemetryConfig, environment string) (*Container, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.ServiceName),
		semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentKey.String(environment),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	reader := sdkmetric.NewManualReader()

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(meterProvider)

	shutdownTracer, err := tracing.InitTracer(ctx, cfg, environment)

	if err != nil {
		return nil, err
	}

	err = runtime.Start(
		runtime.WithMeterProvider(meterProvider),
		runtime.WithMinimumReadMemStatsInterval(time.Second),
	)

	if err != nil {
		return nil, err
	}

	return &Container{
		MeterProvider:      meterProvider,
		MetricReader:       reader,
		PrometheusRegistry: registry,
		shutdownTracer:     shutdownTracer,
	}, nil
}

func (c *Container) Shutdown(ctx context.Context) error {
	return errors.Join(
		c.shutdownTracer(ctx),
		c.MeterProvider.Shutdown(ctx),
	)
}
