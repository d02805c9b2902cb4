package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/arraygate/component"
	"github.com/kbukum/arraygate/logger"
)

// Component owns the OTLP tracer and meter providers. It installs them as
// the global providers on Start and flushes them on Stop.
type Component struct {
	cfg         Config
	service     string
	version     string
	environment string
	log         *logger.Logger

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates the observability component for a service.
func NewComponent(cfg Config, service, version, environment string) *Component {
	cfg.ApplyDefaults()
	return &Component{
		cfg:         cfg,
		service:     service,
		version:     version,
		environment: environment,
		log:         logger.WithComponent("observability"),
	}
}

func (c *Component) Name() string { return "observability" }

// Start builds the OTLP exporters and installs them as the global
// providers, together with the W3C trace-context propagator.
func (c *Component) Start(ctx context.Context) error {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	if !c.cfg.Enabled {
		c.log.Debug("export disabled, using no-op providers")
		return nil
	}

	res, err := serviceResource(c.service, c.version, c.environment)
	if err != nil {
		return fmt.Errorf("observability: resource: %w", err)
	}
	tp, err := newTracerProvider(ctx, c.cfg, res)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	mp, err := newMeterProvider(ctx, c.cfg, res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return fmt.Errorf("observability: %w", err)
	}

	c.tp, c.mp = tp, mp
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	c.log.Info("exporting telemetry", logger.Fields(
		"endpoint", c.cfg.Endpoint,
		"sample_rate", c.cfg.SampleRate,
		"interval", c.cfg.MetricInterval.String(),
	))
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.mp != nil {
		if err := c.mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
		c.mp = nil
	}
	if c.tp != nil {
		if err := c.tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
		c.tp = nil
	}
	return errors.Join(errs...)
}

func (c *Component) Health(_ context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if !c.cfg.Enabled {
		h.Message = "export disabled"
	} else if c.tp == nil {
		h.Status = component.StatusDegraded
		h.Message = "exporters not running"
	}
	return h
}

func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.cfg.Enabled {
		details = fmt.Sprintf("otlp http://%s sample=%g interval=%s",
			c.cfg.Endpoint, c.cfg.SampleRate, c.cfg.MetricInterval)
	}
	return component.Description{Name: "Observability", Type: "otel", Details: details}
}
