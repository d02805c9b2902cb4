package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apperrors "github.com/kbukum/arraygate/errors"
	"github.com/kbukum/arraygate/logger"
	"github.com/kbukum/arraygate/server/endpoint"
	"github.com/kbukum/arraygate/server/middleware"
)

const (
	// shutdownTimeout bounds draining in Stop.
	shutdownTimeout = 5 * time.Second

	maxConcurrentStreams = 250
)

// Server serves a gin engine over HTTP/1.1 and cleartext HTTP/2, or over
// TLS when configured. net/http middleware added with Use wraps the whole
// engine; gin middleware sees only routed requests.
type Server struct {
	cfg         Config
	engine      *gin.Engine
	http        *http.Server
	middlewares []middleware.Middleware
	listener    net.Listener
	log         *logger.Logger
}

// New builds a Server without any middleware. Unknown routes answer 404
// with the standard error body.
func New(cfg Config, log *logger.Logger) *Server {
	mode := gin.ReleaseMode
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		mode = gin.DebugMode
	}
	gin.SetMode(mode)

	engine := gin.New()
	engine.NoRoute(func(c *gin.Context) {
		RespondWithError(c, apperrors.NotFound("route", c.Request.Method+" "+c.Request.URL.Path))
	})

	return &Server{
		cfg:    cfg,
		engine: engine,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		log: log.WithComponent("server"),
	}
}

// GinEngine is where routes are registered.
func (s *Server) GinEngine() *gin.Engine { return s.engine }

// Use wraps the engine in net/http middleware. The first one given runs
// first.
func (s *Server) Use(mw ...middleware.Middleware) {
	s.middlewares = append(s.middlewares, mw...)
}

// ApplyMiddleware installs the standard stack. Recovery, request id,
// request logging, CORS and the body limit wrap every request; tracing runs
// inside gin so spans carry the matched route.
func (s *Server) ApplyMiddleware() {
	s.Use(
		middleware.Recovery(s.log),
		middleware.RequestID(),
		middleware.RequestLogger(s.log),
		middleware.CORS(&s.cfg.CORS),
		middleware.BodySizeLimit(s.cfg.MaxBodyBytes()),
	)
	s.engine.Use(middleware.Tracing())
}

// RegisterDefaultEndpoints adds /health, /health/live, /health/ready and
// /info.
func (s *Server) RegisterDefaultEndpoints(serviceName, environment string, checker endpoint.HealthChecker) {
	s.engine.GET("/health", endpoint.Health(serviceName, checker))
	s.engine.GET("/health/live", endpoint.Liveness(serviceName))
	s.engine.GET("/health/ready", endpoint.Readiness(serviceName, checker))
	s.engine.GET("/info", endpoint.Info(serviceName, environment))
}

// Handler is the root handler as served: h2c around the middleware chain
// around gin.
func (s *Server) Handler() http.Handler {
	h2 := &http2.Server{MaxConcurrentStreams: maxConcurrentStreams, IdleTimeout: s.cfg.IdleTimeout}
	return h2c.NewHandler(middleware.Chain(s.middlewares...)(s.engine), h2)
}

// Start binds the listener and serves in the background. A bind or TLS
// error is returned; later serve errors are only logged.
func (s *Server) Start(context.Context) error {
	tlsConfig, err := s.cfg.TLS.Build()
	if err != nil {
		return fmt.Errorf("server tls: %w", err)
	}
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("server bind %s: %w", s.http.Addr, err)
	}
	s.listener = ln
	s.http.Handler = s.Handler()
	s.http.TLSConfig = tlsConfig

	go s.serve(ln, tlsConfig != nil)
	s.log.Info("listening", logger.Fields("addr", ln.Addr().String(), "transport", s.cfg.TLS.Describe()))
	return nil
}

func (s *Server) serve(ln net.Listener, useTLS bool) {
	var err error
	if useTLS {
		err = s.http.ServeTLS(ln, "", "")
	} else {
		err = s.http.Serve(ln)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error("serve failed", logger.ErrorFields("serve", err))
	}
}

// Stop drains in-flight requests for at most shutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.log.Info("stopped serving")
	return nil
}

// Addr is the bound address after Start and the configured one before.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.http.Addr
}
