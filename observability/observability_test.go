package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/arraygate/component"
	"github.com/kbukum/arraygate/logger"
)

// recordSpans installs an in-memory tracer provider for the duration of the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return rec
}

func TestStartSpan(t *testing.T) {
	rec := recordSpans(t)

	_, span := StartSpan(context.Background(), "test-operation")
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 || ended[0].Name() != "test-operation" {
		t.Fatalf("expected one span named test-operation, got %d", len(ended))
	}
}

func collect(t *testing.T) (*Metrics, func() map[string]metricdata.Aggregation) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, func() map[string]metricdata.Aggregation {
		var rm metricdata.ResourceMetrics
		if err := reader.Collect(context.Background(), &rm); err != nil {
			t.Fatalf("Collect: %v", err)
		}
		out := make(map[string]metricdata.Aggregation)
		for _, sm := range rm.ScopeMetrics {
			for _, md := range sm.Metrics {
				out[md.Name] = md.Data
			}
		}
		return out
	}
}

func sumPoints(t *testing.T, agg metricdata.Aggregation) []metricdata.DataPoint[int64] {
	t.Helper()
	sum, ok := agg.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected an int64 sum, got %T", agg)
	}
	return sum.DataPoints
}

func TestMetrics_HTTP(t *testing.T) {
	m, gather := collect(t)
	ctx := context.Background()

	m.RequestStarted(ctx)
	m.RequestStarted(ctx)
	m.RequestFinished(ctx, "POST /login", 200, 10*time.Millisecond)

	got := gather()
	inFlight := sumPoints(t, got["arraygate.http.in_flight"])
	if len(inFlight) != 1 || inFlight[0].Value != 1 {
		t.Errorf("expected 1 request in flight, got %+v", inFlight)
	}
	reqs := sumPoints(t, got["arraygate.http.requests"])
	if len(reqs) != 1 || reqs[0].Value != 1 {
		t.Fatalf("expected one completed request, got %+v", reqs)
	}
	if v, _ := reqs[0].Attributes.Value("status_class"); v.AsString() != "2xx" {
		t.Errorf("expected status_class=2xx, got %q", v.AsString())
	}
	if _, ok := got["arraygate.http.duration"]; !ok {
		t.Error("expected a duration histogram")
	}
}

func TestMetrics_AuthAttempts(t *testing.T) {
	m, gather := collect(t)
	ctx := context.Background()

	m.AuthAttempt(ctx, "login", OutcomeOK, time.Millisecond)
	m.AuthAttempt(ctx, "login", "invalid_credentials", time.Millisecond)
	m.AuthAttempt(ctx, "login", "invalid_credentials", time.Millisecond)

	counts := make(map[string]int64)
	for _, dp := range sumPoints(t, gather()["arraygate.auth.attempts"]) {
		v, _ := dp.Attributes.Value("outcome")
		counts[v.AsString()] = dp.Value
	}
	if counts[OutcomeOK] != 1 || counts["invalid_credentials"] != 2 {
		t.Errorf("unexpected attempt counts %v", counts)
	}
}

func TestMetrics_ArrayInputAndUsers(t *testing.T) {
	m, gather := collect(t)
	ctx := context.Background()

	users := 3
	if err := m.ObserveUsers(func() int { return users }); err != nil {
		t.Fatalf("ObserveUsers: %v", err)
	}
	m.ArrayInput(ctx, "bubble-sort", 5)

	got := gather()
	hist, ok := got["arraygate.array.length"].(metricdata.Histogram[int64])
	if !ok || len(hist.DataPoints) != 1 || hist.DataPoints[0].Sum != 5 {
		t.Errorf("unexpected array.length data %+v", got["arraygate.array.length"])
	}
	gauge, ok := got["arraygate.users"].(metricdata.Gauge[int64])
	if !ok || len(gauge.DataPoints) != 1 || gauge.DataPoints[0].Value != 3 {
		t.Errorf("unexpected users gauge %+v", got["arraygate.users"])
	}
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RequestStarted(ctx)
	m.RequestFinished(ctx, "GET /", 500, time.Second)
	m.AuthAttempt(ctx, "login", OutcomeOK, time.Second)
	m.ArrayInput(ctx, "max-value", 1)
	if err := m.ObserveUsers(func() int { return 0 }); err != nil {
		t.Errorf("nil metrics should ignore ObserveUsers, got %v", err)
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	if _, err := NewMetrics(noop.NewMeterProvider().Meter("test")); err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
}

func TestStatusClass(t *testing.T) {
	for status, want := range map[int]string{200: "2xx", 201: "2xx", 401: "4xx", 413: "4xx", 500: "5xx", 0: "other", 700: "other"} {
		if got := statusClass(status); got != want {
			t.Errorf("statusClass(%d) = %q, want %q", status, got, want)
		}
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.25, "TraceIDRatioBased"},
	}
	for _, tc := range tests {
		if got := sampler(tc.rate).Description(); !strings.Contains(got, tc.want) {
			t.Errorf("sampler(%g) = %q, want it to mention %s", tc.rate, got, tc.want)
		}
	}
}

func TestOperation_Success(t *testing.T) {
	rec := recordSpans(t)
	m, gather := collect(t)

	ctx := logger.ContextWithRequestID(context.Background(), "req-9")
	ctx, op := StartOperation(ctx, m, "gateway", "authenticate")
	if op.Component != "gateway" || op.Name != "authenticate" || op.RequestID != "req-9" {
		t.Fatalf("unexpected operation: %+v", op)
	}
	op.SetUser("alice")
	op.End(ctx, OutcomeOK, nil)

	ended := rec.Ended()
	if len(ended) != 1 || ended[0].Name() != "gateway.authenticate" {
		t.Fatalf("expected one gateway.authenticate span, got %d", len(ended))
	}
	if ended[0].Status().Code == codes.Error {
		t.Error("successful operation must not be marked failed")
	}
	want := map[string]string{AttrRequestID: "req-9", AttrUserID: "alice", AttrOutcome: OutcomeOK}
	for _, kv := range ended[0].Attributes() {
		if v, ok := want[string(kv.Key)]; ok && kv.Value.AsString() == v {
			delete(want, string(kv.Key))
		}
	}
	if len(want) != 0 {
		t.Errorf("missing span attributes %v", want)
	}
	if pts := sumPoints(t, gather()["arraygate.auth.attempts"]); len(pts) != 1 || pts[0].Value != 1 {
		t.Errorf("expected one recorded attempt, got %+v", pts)
	}
}

func TestOperation_Failure(t *testing.T) {
	rec := recordSpans(t)

	ctx, op := StartOperation(context.Background(), nil, "gateway", "login")
	op.End(ctx, "invalid_credentials", errors.New("nope"))

	got := rec.Ended()[0]
	if got.Status().Code != codes.Error || got.Status().Description != "invalid_credentials" {
		t.Errorf("unexpected status %+v", got.Status())
	}
	if len(got.Events()) == 0 {
		t.Error("expected the error to be recorded")
	}
}

func TestOperation_Duration(t *testing.T) {
	_, op := StartOperation(context.Background(), nil, "gateway", "register")
	op.StartTime = time.Now().Add(-50 * time.Millisecond)

	if d := op.Duration(); d < 45*time.Millisecond {
		t.Errorf("expected duration around 50ms, got %v", d)
	}
}

func TestSetSpanHelpers_NoSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "key", "value")
}

func TestSetSpanAttribute(t *testing.T) {
	rec := recordSpans(t)

	ctx, span := StartSpan(context.Background(), "attrs")
	SetSpanAttribute(ctx, AttrUserID, "alice")
	SetSpanAttribute(ctx, "count", 3)
	SetSpanAttribute(ctx, "ignored", struct{}{})
	span.End()

	attrs := rec.Ended()[0].Attributes()
	found := false
	for _, kv := range attrs {
		if string(kv.Key) == AttrUserID && kv.Value.AsString() == "alice" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s=alice in %v", AttrUserID, attrs)
	}
}

func TestConfig(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || cfg.SampleRate != 1.0 || cfg.MetricInterval != 15*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled ignores fields", Config{SampleRate: 5}, false},
		{"enabled", Config{Enabled: true, Endpoint: "otel:4318", SampleRate: 0.5, MetricInterval: time.Minute}, false},
		{"no endpoint", Config{Enabled: true, SampleRate: 1, MetricInterval: time.Minute}, true},
		{"bad sample rate", Config{Enabled: true, Endpoint: "x", SampleRate: 2, MetricInterval: time.Minute}, true},
		{"short interval", Config{Enabled: true, Endpoint: "x", SampleRate: 1, MetricInterval: time.Millisecond}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestComponent_Disabled(t *testing.T) {
	c := NewComponent(Config{}, "arraygate", "test", "test")
	ctx := context.Background()

	if c.Name() != "observability" {
		t.Errorf("unexpected name %q", c.Name())
	}
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h := c.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %+v", h)
	}
	if d := c.Describe(); d.Details != "disabled" {
		t.Errorf("unexpected description %+v", d)
	}
	if err := c.Stop(ctx); err != nil {
		t.Errorf("Stop: %v", err)
	}
}

func TestComponent_Enabled(t *testing.T) {
	prev := otel.GetTracerProvider()
	prevMeter := otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		otel.SetMeterProvider(prevMeter)
	})

	// Exporters connect lazily, so Start succeeds without a collector.
	c := NewComponent(Config{Enabled: true, Endpoint: "127.0.0.1:1", Insecure: true}, "arraygate", "test", "test")
	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h := c.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %+v", h)
	}

	stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_ = c.Stop(stopCtx) // flushing to an unreachable collector may fail
	if c.tp != nil || c.mp != nil {
		t.Error("providers should be released after Stop")
	}
}
