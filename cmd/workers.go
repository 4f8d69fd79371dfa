package main

import "context"

func (app *application) startWorkers(ctx context.Context) {
	go app.monitor.Run(ctx)
	app.infoLog.Printf("safety monitor: evaluating every %s", app.cfg.SafetyTick())

	if app.cfg.Retention.Enabled {
		startRetentionCleaner(ctx, app.retention, app.cfg.RetentionInterval(), app.infoLog, app.errorLog)
	}
}
