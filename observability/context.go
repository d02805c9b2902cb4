package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/arraygate/logger"
)

// OutcomeOK is the outcome recorded for a successful operation.
const OutcomeOK = "ok"

// OperationContext tracks one traced and metered auth operation from start
// to outcome.
//
//	ctx, op := observability.StartOperation(ctx, metrics, "gateway", "login")
//	defer func() { op.End(ctx, outcome, err) }()
type OperationContext struct {
	Component string
	Name      string
	RequestID string
	UserID    string
	StartTime time.Time

	metrics *Metrics
	span    trace.Span
}

// StartOperation opens a span named "<component>.<name>", tagged with the
// request id carried on ctx. metrics may be nil.
func StartOperation(ctx context.Context, metrics *Metrics, component, name string) (context.Context, *OperationContext) {
	oc := &OperationContext{
		Component: component,
		Name:      name,
		RequestID: logger.RequestIDFromContext(ctx),
		StartTime: time.Now(),
		metrics:   metrics,
	}
	attrs := []attribute.KeyValue{attribute.String(AttrOperationName, name)}
	if oc.RequestID != "" {
		attrs = append(attrs, attribute.String(AttrRequestID, oc.RequestID))
	}
	ctx, oc.span = StartSpan(ctx, component+"."+name, trace.WithAttributes(attrs...))
	return ctx, oc
}

// SetUser records the user the operation acted for.
func (oc *OperationContext) SetUser(username string) {
	oc.UserID = username
	oc.span.SetAttributes(attribute.String(AttrUserID, username))
}

// End closes the span and records the attempt under outcome. A non-nil err
// marks the span failed.
func (oc *OperationContext) End(ctx context.Context, outcome string, err error) {
	d := oc.Duration()
	if err != nil {
		oc.span.RecordError(err)
		oc.span.SetStatus(codes.Error, outcome)
	}
	oc.span.SetAttributes(
		attribute.String(AttrOutcome, outcome),
		attribute.Int64(AttrDurationMs, d.Milliseconds()),
	)
	oc.span.End()
	oc.metrics.AuthAttempt(ctx, oc.Name, outcome, d)
}

// Duration returns the time elapsed since the operation started.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
