package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartFetchSpan starts the span covering one transcript fetch
// invocation, carrying the video ID and the per-invocation request ID.
func StartFetchSpan(ctx context.Context, tracer trace.Tracer, videoID, invocationID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "fetch:"+videoID,
		trace.WithAttributes(
			attribute.String("ytfetch.video_id", videoID),
			attribute.String("ytfetch.invocation_id", invocationID),
		),
	)
}

// EndFetchSpan records the outcome on the span and ends it. A non-empty
// errorCode marks the span as failed with the taxonomy code attached.
func EndFetchSpan(span trace.Span, language, errorCode string) {
	if language != "" {
		span.SetAttributes(attribute.String("ytfetch.language", language))
	}
	if errorCode != "" {
		span.SetAttributes(attribute.String("ytfetch.error_code", errorCode))
		span.SetStatus(codes.Error, errorCode)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
