// Command arraygate serves the authenticated array API.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kbukum/arraygate/api"
	"github.com/kbukum/arraygate/auth/jwt"
	"github.com/kbukum/arraygate/auth/password"
	"github.com/kbukum/arraygate/bootstrap"
	"github.com/kbukum/arraygate/component"
	"github.com/kbukum/arraygate/config"
	"github.com/kbukum/arraygate/credential"
	"github.com/kbukum/arraygate/gateway"
	"github.com/kbukum/arraygate/logger"
	"github.com/kbukum/arraygate/observability"
	"github.com/kbukum/arraygate/server"
	"github.com/kbukum/arraygate/server/middleware"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		logger.Fatal("arraygate stopped", logger.ErrorFields("run", err))
	}
}

func run(ctx context.Context, args []string) error {
	loaderOpts, err := parseFlags(args)
	if err != nil {
		return err
	}
	var cfg AppConfig
	if err := config.LoadConfig(serviceName, &cfg, loaderOpts...); err != nil {
		return err
	}

	app, err := bootstrap.NewApp(&cfg, appOptions(&cfg)...)
	if err != nil {
		return err
	}
	if _, err := setup(app); err != nil {
		return err
	}
	return app.Run(ctx)
}

// parseFlags turns --config and --env-file into loader overrides. Without
// them the loader searches the usual locations.
func parseFlags(args []string) ([]config.LoaderOption, error) {
	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	configFile := fs.StringP("config", "c", "", "path to config.yml")
	envFile := fs.String("env-file", "", "path to a .env file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}
	return opts, nil
}

// appOptions keeps the startup summary off stdout when stdout carries JSON
// logs.
func appOptions(cfg *AppConfig) []bootstrap.Option {
	if strings.EqualFold(cfg.Logging.Format, logger.FormatJSON) && !strings.EqualFold(cfg.Logging.Output, "stderr") {
		return []bootstrap.Option{bootstrap.WithSummaryOutput(os.Stderr)}
	}
	return nil
}

// setup builds the domain services and the HTTP server and registers the
// observability and server components on app, in start order.
func setup(app *bootstrap.App[*AppConfig]) (*server.Server, error) {
	cfg := app.Cfg
	log := app.Logger

	tokens, err := jwt.NewService(&cfg.Auth.JWT)
	if err != nil {
		return nil, err
	}
	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	store := credential.NewMemoryStore()
	if err := metrics.ObserveUsers(store.Len); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	gw := gateway.New(
		store,
		password.NewHasher(cfg.Auth.Password),
		tokens,
		gateway.WithLogger(log.WithComponent("gateway")),
		gateway.WithMetrics(metrics),
	)
	log.Info("authentication configured", logger.Fields("auth", cfg.Auth.Describe()))

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.GinEngine().Use(middleware.Metrics(metrics))
	srv.RegisterDefaultEndpoints(cfg.Name, cfg.Environment, func(ctx context.Context) []component.Health {
		return append(app.Components.HealthAll(ctx), gw.Health(ctx))
	})
	api.Routes(srv.GinEngine(), api.NewHandler(gw, api.WithMetrics(metrics)), middleware.Auth(middleware.AuthConfig{
		Validator:          gw.Validator(),
		AcceptBearerHeader: cfg.Auth.BearerHeaderEnabled(),
	}))

	app.OnReady(gw.Warm)
	app.OnStop(func(context.Context) error {
		log.Info("discarding in-memory accounts", logger.Fields("users", store.Len()))
		return nil
	})

	if err := app.RegisterComponent(observability.NewComponent(cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)); err != nil {
		return nil, err
	}
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return nil, err
	}
	return srv, nil
}
