// Package util holds small helpers shared across packages: size parsing
// for body limits, secret masking for logs, and a generic slice filter.
package util
