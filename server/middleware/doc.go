// Package middleware provides the HTTP middleware stack.
//
// net/http middleware, applied by the server around every request:
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation
//   - RequestLogger: request logging with duration
//   - CORS: cross-origin headers and preflight
//   - BodySizeLimit: request body size limit
//
// gin middleware, applied on the engine or a route group:
//
//   - Tracing: one server span per request
//   - Metrics: request count, duration and in-flight gauge
//   - Auth: token authentication for protected routes
package middleware
