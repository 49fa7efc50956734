package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/fantasy-coach/internal/platform/tracing"
)

var usecaseTracer = otel.Tracer("fantasy-coach/internal/usecase")

func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracing.Child(ctx, usecaseTracer, name)
}
