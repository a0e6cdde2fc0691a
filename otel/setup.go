// Package otel provides optional OpenTelemetry integration for fetch
// invocations. Tracing is enabled only when an OTLP endpoint is
// configured in the environment; the stdout JSON contract is never
// affected.
package otel

import (
	"context"
	"os"

	otelglobal "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ytfetch"

// Setup installs a global tracer provider exporting over OTLP/HTTP when
// OTEL_EXPORTER_OTLP_ENDPOINT (or the traces-specific variant) is set.
// It returns a shutdown func that flushes pending spans, and whether
// tracing was enabled. With no endpoint configured it is a no-op.
func Setup(ctx context.Context, serviceVersion string) (shutdown func(context.Context) error, enabled bool, err error) {
	noop := func(context.Context) error { return nil }

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" &&
		os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") == "" {
		return noop, false, nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return noop, false, err
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	))
	if err != nil {
		return noop, false, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otelglobal.SetTracerProvider(provider)

	return provider.Shutdown, true, nil
}

// Tracer returns the ytfetch tracer from the global provider.
func Tracer() trace.Tracer {
	return otelglobal.Tracer(serviceName)
}

// Meter returns the ytfetch meter from the global provider.
func Meter() metric.Meter {
	return otelglobal.Meter(serviceName)
}
