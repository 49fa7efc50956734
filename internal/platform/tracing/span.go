// Package tracing holds the span rules shared by the HTTP and usecase layers.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Child starts name under the span already in ctx. Without a valid parent it
// returns ctx untouched and a no-op span, so background work and filtered
// routes never create standalone root traces.
func Child(ctx context.Context, tracer trace.Tracer, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if name == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return tracer.Start(ctx, name, opts...)
}
