package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"insurance-server/internal/infra/node"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

type ShutdownFunc func() error

const (
	_serviceName      = "insurance-server"
	_endpointVariable = "INSURANCE_SERVER_OTELCOL_ENDPOINT"
	_defaultEndpoint  = "localhost:4317"
	_collectPeriod    = 30 * time.Second
	_collectTimeout   = 35 * time.Second
	_minimumInterval  = time.Minute
)

// Request latencies in milliseconds. Form submissions sit in the low
// hundreds; option fetches can take seconds.
var _histogramBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

func startOTel(info *node.Node) ShutdownFunc {
	slog.Info("starting OTel providers", slog.String("endpoint", otelEndpoint()))

	ctx := context.Background()
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(_serviceName),
		semconv.ServiceVersionKey.String(info.Version),
		semconv.ServiceInstanceIDKey.String(info.ID),
	)

	stopMetrics, err := startMeterProvider(ctx, res)
	if err != nil {
		panic(err)
	}

	stopTraces, err := startTracerProvider(ctx, res)
	if err != nil {
		panic(err)
	}

	return func() error {
		return errors.Join(stopMetrics(), stopTraces())
	}
}

func otelEndpoint() string {
	if value, ok := os.LookupEnv(_endpointVariable); ok && value != "" {
		return value
	}
	return _defaultEndpoint
}

func startTracerProvider(ctx context.Context, res *resource.Resource) (ShutdownFunc, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(otelEndpoint()),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return func() error { return provider.Shutdown(ctx) }, nil
}

func startMeterProvider(ctx context.Context, res *resource.Resource) (ShutdownFunc, error) {
	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(otelEndpoint()),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	reader := metric.NewPeriodicReader(exporter,
		metric.WithTimeout(_collectTimeout),
		metric.WithInterval(_collectPeriod),
	)
	latencies := metric.NewView(
		metric.Instrument{Name: "*", Kind: metric.InstrumentKindHistogram},
		metric.Stream{Aggregation: metric.AggregationExplicitBucketHistogram{Boundaries: _histogramBuckets}},
	)

	provider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(reader),
		metric.WithView(latencies),
	)
	otel.SetMeterProvider(provider)

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(_minimumInterval)); err != nil {
		return nil, err
	}

	return func() error { return provider.Shutdown(ctx) }, nil
}
