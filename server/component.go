package server

import (
	"context"
	"fmt"
	"cmp"
	"slices"
	"strings"

	"github.com/kbukum/arraygate/component"
)

const componentName = "http-server"

var (
	_ component.Component     = (*Component)(nil)
	_ component.Describable   = (*Component)(nil)
	_ component.RouteProvider = (*Component)(nil)
)

// systemPaths sort after the API routes in the startup summary.
var systemPaths = map[string]bool{
	"/health":       true,
	"/health/live":  true,
	"/health/ready": true,
	"/info":         true,
}

// Component runs a Server under the application lifecycle.
type Component struct {
	server  *Server
	running bool
}

// NewComponent wraps s.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

func (sc *Component) Name() string { return componentName }

func (sc *Component) Start(ctx context.Context) error {
	if err := sc.server.Start(ctx); err != nil {
		return err
	}
	sc.running = true
	return nil
}

func (sc *Component) Stop(ctx context.Context) error {
	sc.running = false
	return sc.server.Stop(ctx)
}

func (sc *Component) Health(_ context.Context) component.Health {
	if !sc.running {
		return component.Health{Name: componentName, Status: component.StatusUnhealthy, Message: "not serving"}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

// Describe reports the bound address, transport and body limit.
func (sc *Component) Describe() component.Description {
	cfg := sc.server.cfg
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: fmt.Sprintf("%s %s max_body=%s", sc.server.Addr(), cfg.TLS.Describe(), cfg.MaxBodySize),
		Port:    cfg.Port,
	}
}

// Routes lists the gin routes for the startup summary, API routes first.
func (sc *Component) Routes() []component.Route {
	routes := make([]component.Route, 0)
	for _, r := range sc.server.engine.Routes() {
		routes = append(routes, component.Route{Method: r.Method, Path: r.Path, Handler: formatHandlerName(r.Handler)})
	}
	slices.SortFunc(routes, func(a, b component.Route) int {
		if sa, sb := systemPaths[a.Path], systemPaths[b.Path]; sa != sb {
			if sa {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Path, b.Path)
	})
	return routes
}

// formatHandlerName shortens gin's handler names, e.g.
// "github.com/kbukum/arraygate/api.(*Handler).Login-fm" becomes "Handler.Login"
// and "github.com/kbukum/arraygate/server/endpoint.Health.func1" becomes "endpoint.Health".
func formatHandlerName(full string) string {
	name := strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.NewReplacer("(*", "", ")", "").Replace(name)

	parts := strings.Split(name, ".")
	for len(parts) > 1 && strings.HasPrefix(parts[len(parts)-1], "func") {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > 2 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
