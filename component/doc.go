// Package component defines lifecycle-managed infrastructure pieces.
//
// A Component is started and stopped by a Registry in deterministic order
// and reports its health for the /health endpoints. Components may also
// implement Describable or RouteProvider to appear in the startup summary.
package component
