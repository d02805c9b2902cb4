// Package endpoint provides the operational HTTP handlers mounted by the
// server: /health, /health/live, /health/ready and /info.
package endpoint
