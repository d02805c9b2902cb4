// Package logger provides structured logging backed by zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying structured fields. Request-scoped values
// (request id, authenticated user, trace and span ids) are attached with
// WithContext.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("gateway")
//	log.Info("user registered", logger.Fields("username", name))
package logger
