package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/fantasy-coach/internal/platform/tracing"
)

var apiTracer = otel.Tracer("fantasy-coach/internal/interfaces/httpapi")

const handlerSpanPrefix = "httpapi.Handler."

// startSpan only opens spans for handler entry points. Helpers such as
// writeJSON pass through with the request span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !strings.HasPrefix(name, handlerSpanPrefix) {
		return tracing.Child(ctx, apiTracer, "")
	}
	return tracing.Child(ctx, apiTracer, name)
}
