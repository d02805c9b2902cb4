package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kbukum/arraygate/component"
	"github.com/kbukum/arraygate/logger"
)

// App owns the component registry and the process lifecycle of a service
// whose configuration type is C.
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	gracefulTimeout time.Duration
	onReady         []Hook
	onStop          []Hook
}

// NewApp applies defaults to cfg, validates it and sets up logging. Unless
// WithLogger is given, the global logger is initialized from cfg.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	svc := cfg.GetServiceConfig()
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		logger.Init(svc.Logging)
		o.logger = logger.GetGlobalLogger()
	}

	summary := NewSummary(svc.Name, svc.Version)
	if o.summaryOut != nil {
		summary.SetOutput(o.summaryOut)
	}
	return &App[C]{
		Name:            svc.Name,
		Version:         svc.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(),
		Logger:          o.logger,
		Summary:         summary,
		gracefulTimeout: svc.ShutdownTimeout,
	}, nil
}

// RegisterComponent adds c to the registry. Components start in
// registration order and stop in reverse.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// ReadyCheck fails when any registered component reports anything other
// than healthy. The error lists each offender as name=status(message).
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var bad []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status == component.StatusHealthy {
			continue
		}
		entry := h.Name + "=" + string(h.Status)
		if h.Message != "" {
			entry += "(" + h.Message + ")"
		}
		bad = append(bad, entry)
	}
	if len(bad) > 0 {
		return fmt.Errorf("unhealthy components: %s", strings.Join(bad, ", "))
	}
	return nil
}

// Run starts every component, runs the OnReady hooks and prints the
// startup summary. It then serves until SIGINT, SIGTERM or ctx is done and
// shuts down within the graceful timeout.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.start(ctx); err != nil {
		// Release whatever did start.
		_ = a.Components.StopAll(context.Background())
		return err
	}
	_ = a.awaitShutdown(ctx)
	return a.shutdown()
}

func (a *App[C]) start(ctx context.Context) error {
	began := time.Now()
	a.Logger.Info("starting", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("start components: %w", err)
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("not every component is healthy", logger.Fields(logger.FieldError, err.Error()))
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(began))
	a.Summary.Display(ctx, a.Components)
	return nil
}

// awaitShutdown blocks until SIGINT, SIGTERM or ctx is done and returns
// what ended the wait.
func (a *App[C]) awaitShutdown(ctx context.Context) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()
	cause := context.Cause(sigCtx)
	a.Logger.Info("shutdown requested", logger.Fields("cause", cause.Error()))
	return cause
}

// shutdown runs the OnStop hooks and then stops components. Every error
// is kept.
func (a *App[C]) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()
	a.Logger.Info("shutting down", logger.Fields("timeout", a.gracefulTimeout.String()))

	hookErr := runHooks(ctx, a.onStop)
	stopErr := a.Components.StopAll(ctx)
	err := errors.Join(hookErr, stopErr)
	if err != nil {
		a.Logger.Error("shutdown finished with errors", logger.ErrorFields("shutdown", err))
		return err
	}
	a.Logger.Info("stopped")
	return nil
}
