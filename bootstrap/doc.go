// Package bootstrap runs the service lifecycle: validate the typed config,
// start registered components in order, run configure callbacks and hooks,
// print the startup summary, block until SIGINT/SIGTERM and stop everything
// in reverse order within a graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(server.NewComponent(srv))
//	app.OnStop(shutdownTelemetry)
//	err = app.Run(ctx)
package bootstrap
