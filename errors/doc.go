// Package errors defines the structured error type shared by every layer of
// the service. Domain packages return plain sentinel errors; the HTTP layer
// maps them onto AppError values, which carry a machine-readable code, a
// client-safe message and the HTTP status to respond with.
package errors
