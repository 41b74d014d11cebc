package main

import (
	"context"
	"time"

	"tourdash/internal/notifications"
)

// startAlertSweeps runs the delay alerter once immediately and then every
// interval until ctx is done.
func (app *application) startAlertSweeps(ctx context.Context, alerter *notifications.Alerter, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			sent, err := alerter.Sweep(ctx, app.clock())
			if err != nil {
				app.logger.Errorw("alert sweep failed", "error", err.Error())
			} else if sent > 0 {
				app.logger.Infow("alerts sent", "count", sent)
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
