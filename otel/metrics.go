package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FetchObserver records counters and a duration histogram for fetch
// invocations.
type FetchObserver struct {
	fetches  metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

// NewFetchObserver creates a FetchObserver using the given meter.
func NewFetchObserver(meter metric.Meter) (*FetchObserver, error) {
	fetches, err := meter.Int64Counter("ytfetch.fetches",
		metric.WithDescription("Number of transcript fetch invocations"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("ytfetch.failures",
		metric.WithDescription("Number of failed fetch invocations"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("ytfetch.fetch.duration",
		metric.WithDescription("Duration of fetch invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &FetchObserver{
		fetches:  fetches,
		failures: failures,
		duration: duration,
	}, nil
}

// Observe records one completed fetch invocation. errorCode is empty on
// success and a taxonomy code on failure.
func (o *FetchObserver) Observe(ctx context.Context, videoID, errorCode string, elapsed time.Duration) {
	if o == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("video_id", videoID))
	o.fetches.Add(ctx, 1, attrs)
	o.duration.Record(ctx, elapsed.Seconds(), attrs)

	if errorCode != "" {
		o.failures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("video_id", videoID),
			attribute.String("error_code", errorCode),
		))
	}
}
