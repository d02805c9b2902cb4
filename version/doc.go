// Package version exposes build information for /info and the startup
// summary.
package version
