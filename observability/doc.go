// Package observability wires OpenTelemetry tracing and metrics.
//
// The Component installs OTLP/HTTP exporters when enabled. Without it the
// global providers are no-ops and every helper here is still safe to call.
//
//	obs := observability.NewComponent(cfg, "arraygate", version, env)
//	registry.Register(obs)
//
// Auth operations are traced and counted through an OperationContext:
//
//	ctx, op := observability.StartOperation(ctx, metrics, "gateway", "login")
//	op.End(ctx, observability.OutcomeOK, nil)
//
// HTTP and array instruments are fed by the server middleware and the API
// handlers:
//
//	metrics, err := observability.NewMetrics(observability.Meter("arraygate"))
//	metrics.RequestFinished(ctx, "POST /login", 200, elapsed)
package observability
