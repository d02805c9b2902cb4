package logger

import (
	"context"
	"sync"
)

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// Init replaces the process logger with one built from cfg.
func Init(cfg Config) {
	cfg.ApplyDefaults()
	name := cfg.ServiceName
	if name == "" {
		name = "arraygate"
	}
	l := New(&cfg, name)

	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// GetGlobalLogger returns the process logger, creating a default one on
// first use.
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = NewDefault("arraygate")
	}
	return globalLogger
}

func Info(msg string, fields ...map[string]any) {
	GetGlobalLogger().Info(msg, fields...)
}

func Fatal(msg string, fields ...map[string]any) {
	GetGlobalLogger().Fatal(msg, fields...)
}

// WithComponent returns a component-tagged process logger.
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

// WithContext returns the process logger enriched from ctx.
func WithContext(ctx context.Context) *Logger {
	return GetGlobalLogger().WithContext(ctx)
}
