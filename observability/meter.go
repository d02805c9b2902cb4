package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Meter returns a meter from the global provider. Instruments created before
// the observability component starts are rebound when it installs the real
// provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the service instruments:
//
//	arraygate.http.requests   counter    route, status_class
//	arraygate.http.duration   histogram  route (seconds)
//	arraygate.http.in_flight  up-down    -
//	arraygate.auth.attempts   counter    operation, outcome
//	arraygate.auth.duration   histogram  operation (seconds)
//	arraygate.array.length    histogram  operation
//	arraygate.users           gauge      - (see ObserveUsers)
//
// A nil *Metrics records nothing.
type Metrics struct {
	meter metric.Meter

	httpRequests metric.Int64Counter
	httpDuration metric.Float64Histogram
	httpInFlight metric.Int64UpDownCounter
	authAttempts metric.Int64Counter
	authDuration metric.Float64Histogram
	arrayLength  metric.Int64Histogram
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{meter: meter}
	var err error

	if m.httpRequests, err = meter.Int64Counter("arraygate.http.requests",
		metric.WithDescription("Completed HTTP requests")); err != nil {
		return nil, instrumentErr("arraygate.http.requests", err)
	}
	if m.httpDuration, err = meter.Float64Histogram("arraygate.http.duration",
		metric.WithDescription("HTTP request latency"), metric.WithUnit("s")); err != nil {
		return nil, instrumentErr("arraygate.http.duration", err)
	}
	if m.httpInFlight, err = meter.Int64UpDownCounter("arraygate.http.in_flight",
		metric.WithDescription("HTTP requests being served")); err != nil {
		return nil, instrumentErr("arraygate.http.in_flight", err)
	}
	if m.authAttempts, err = meter.Int64Counter("arraygate.auth.attempts",
		metric.WithDescription("Register, login and token checks by outcome")); err != nil {
		return nil, instrumentErr("arraygate.auth.attempts", err)
	}
	if m.authDuration, err = meter.Float64Histogram("arraygate.auth.duration",
		metric.WithDescription("Time spent in register, login and token checks"), metric.WithUnit("s")); err != nil {
		return nil, instrumentErr("arraygate.auth.duration", err)
	}
	if m.arrayLength, err = meter.Int64Histogram("arraygate.array.length",
		metric.WithDescription("Number of elements submitted to array operations"),
		metric.WithExplicitBucketBoundaries(0, 1, 10, 100, 1000, 10000)); err != nil {
		return nil, instrumentErr("arraygate.array.length", err)
	}
	return m, nil
}

func instrumentErr(name string, err error) error {
	return fmt.Errorf("observability: create %s: %w", name, err)
}

// ObserveUsers registers the arraygate.users gauge, reading count on every
// collection.
func (m *Metrics) ObserveUsers(count func() int) error {
	if m == nil {
		return nil
	}
	_, err := m.meter.Int64ObservableGauge("arraygate.users",
		metric.WithDescription("Registered users"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(count()))
			return nil
		}),
	)
	if err != nil {
		return instrumentErr("arraygate.users", err)
	}
	return nil
}

// RequestStarted marks a request as in flight.
func (m *Metrics) RequestStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.httpInFlight.Add(ctx, 1)
}

// RequestFinished records a completed request. route is "METHOD /path".
func (m *Metrics) RequestFinished(ctx context.Context, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpInFlight.Add(ctx, -1)
	m.httpRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
		attribute.String("status_class", statusClass(status)),
	))
	m.httpDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("route", route)))
}

// AuthAttempt records one register, login or authenticate call.
func (m *Metrics) AuthAttempt(ctx context.Context, operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	op := attribute.String("operation", operation)
	m.authAttempts.Add(ctx, 1, metric.WithAttributes(op, attribute.String("outcome", outcome)))
	m.authDuration.Record(ctx, d.Seconds(), metric.WithAttributes(op))
}

// ArrayInput records the size of an array operation's input.
func (m *Metrics) ArrayInput(ctx context.Context, operation string, n int) {
	if m == nil {
		return
	}
	m.arrayLength.Record(ctx, int64(n), metric.WithAttributes(attribute.String("operation", operation)))
}

// statusClass buckets a status code as "2xx", "4xx" and so on.
func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "other"
	}
	return strconv.Itoa(status/100) + "xx"
}
