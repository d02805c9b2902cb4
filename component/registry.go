package component

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/kbukum/arraygate/logger"
)

// stopTimeout bounds each component's Stop call.
const stopTimeout = 10 * time.Second

// Registry starts components in registration order and stops them in
// reverse. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	components []Component
	running    map[string]bool
	log        *logger.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		running: make(map[string]bool),
		log:     logger.WithComponent("registry"),
	}
}

// Register appends c. Names must be unique; register a dependency before
// the components that use it.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, dup := r.running[name]; dup {
		return fmt.Errorf("component %s already registered", name)
	}
	r.components = append(r.components, c)
	r.running[name] = false
	r.log.Debug("component registered", logger.Fields(logger.FieldComponent, name))
	return nil
}

// StartAll starts every component that is not running yet and stops at the
// first failure. Components already started stay up for StopAll.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.components {
		name := c.Name()
		if r.running[name] {
			continue
		}
		if err := c.Start(ctx); err != nil {
			r.log.Error("component start failed", logger.ErrorFields("start:"+name, err))
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		r.running[name] = true
	}
	r.log.Info("components started", logger.Fields("count", len(r.components)))
	return nil
}

// StopAll stops running components newest first, each within stopTimeout,
// and joins their errors.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, c := range slices.Backward(r.components) {
		name := c.Name()
		if !r.running[name] {
			continue
		}
		r.running[name] = false
		if err := stopWithin(ctx, c); err != nil {
			r.log.Error("component stop failed", logger.ErrorFields("stop:"+name, err))
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
			continue
		}
		r.log.Info("component stopped", logger.Fields(logger.FieldComponent, name))
	}
	return errors.Join(errs...)
}

func stopWithin(ctx context.Context, c Component) error {
	ctx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()
	return c.Stop(ctx)
}

// HealthAll asks every component for its health, in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, len(r.components))
	for i, c := range r.components {
		out[i] = c.Health(ctx)
	}
	return out
}

// All returns the components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.components)
}

// Overall folds component health into one status: unhealthy beats
// degraded and degraded beats healthy.
func Overall(healths []Health) HealthStatus {
	status := StatusHealthy
	for _, h := range healths {
		switch h.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}
