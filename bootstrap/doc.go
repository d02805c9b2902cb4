// Package bootstrap runs the application lifecycle: typed config, component
// registration, ready and stop hooks, and the startup summary.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(server.NewComponent(srv))
//	app.OnStop(func(ctx context.Context) error { ... })
//	err = app.Run(ctx)
//
// Run starts every component in registration order, checks readiness, runs
// the OnReady hooks, prints the summary and blocks until SIGINT, SIGTERM or
// context cancellation. Shutdown runs the OnStop hooks first and then stops
// components in reverse order within the graceful timeout.
package bootstrap
