package otel_test

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	ytotel "github.com/halcyon-tools/ytfetch/otel"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	out := map[string]metricdata.Metrics{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestFetchObserver_RecordsSuccess(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	observer, err := ytotel.NewFetchObserver(provider.Meter("test"))
	if err != nil {
		t.Fatalf("NewFetchObserver() error = %v", err)
	}

	observer.Observe(context.Background(), "dQw4w9WgXcQ", "", 250*time.Millisecond)

	metrics := collect(t, reader)
	if _, ok := metrics["ytfetch.fetches"]; !ok {
		t.Error("missing ytfetch.fetches metric")
	}
	if _, ok := metrics["ytfetch.fetch.duration"]; !ok {
		t.Error("missing ytfetch.fetch.duration metric")
	}
	if _, ok := metrics["ytfetch.failures"]; ok {
		t.Error("ytfetch.failures should not be recorded on success")
	}
}

func TestFetchObserver_RecordsFailureCode(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	observer, err := ytotel.NewFetchObserver(provider.Meter("test"))
	if err != nil {
		t.Fatalf("NewFetchObserver() error = %v", err)
	}

	observer.Observe(context.Background(), "dQw4w9WgXcQ", "NETWORK_ERROR", time.Second)

	metrics := collect(t, reader)
	failures, ok := metrics["ytfetch.failures"]
	if !ok {
		t.Fatal("missing ytfetch.failures metric")
	}
	sum, ok := failures.Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) == 0 {
		t.Fatalf("failures data = %T", failures.Data)
	}
	if sum.DataPoints[0].Value != 1 {
		t.Errorf("failures = %d, want 1", sum.DataPoints[0].Value)
	}
}

func TestFetchObserver_NilIsSafe(t *testing.T) {
	var observer *ytotel.FetchObserver
	observer.Observe(context.Background(), "dQw4w9WgXcQ", "", time.Second)
}
