package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/kbukum/arraygate"

// SpanHTTPRequest is the provisional name of a server span; the tracing
// middleware renames it to "METHOD route" once gin has matched the route.
const SpanHTTPRequest = "http.request"

// Span attribute keys.
const (
	AttrOperationName = "arraygate.operation"
	AttrOutcome       = "arraygate.outcome"
	AttrRequestID     = "request.id"
	AttrUserID        = "enduser.id"
	AttrDurationMs    = "duration_ms"
	AttrHTTPMethod    = "http.method"
	AttrHTTPRoute     = "http.route"
	AttrHTTPStatus    = "http.status_code"
)

// StartSpan starts a span on the global tracer provider.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, opts...)
}

// SetSpanAttribute sets key on the span in ctx. Values of unsupported types
// are dropped.
func SetSpanAttribute(ctx context.Context, key string, value any) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	var kv attribute.KeyValue
	switch v := value.(type) {
	case string:
		kv = attribute.String(key, v)
	case int:
		kv = attribute.Int(key, v)
	case int64:
		kv = attribute.Int64(key, v)
	case bool:
		kv = attribute.Bool(key, v)
	default:
		return
	}
	span.SetAttributes(kv)
}
