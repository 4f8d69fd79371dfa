package main

import (
	"context"
	"log"
	"time"

	"pieceJobBack/internal/services"
)

const retentionTimeout = 30 * time.Second

func startRetentionCleaner(ctx context.Context, svc *services.RetentionService, interval time.Duration, infoLog, errorLog *log.Logger) {
	if svc == nil || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		run := func() {
			runCtx, cancel := context.WithTimeout(ctx, retentionTimeout)
			defer cancel()

			removed, err := svc.Sweep(runCtx, time.Now())
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("retention cleaner: failed to archive retired jobs: %v", err)
				}
				return
			}
			if removed > 0 && infoLog != nil {
				infoLog.Printf("retention cleaner: archived %d retired jobs", removed)
			}
		}

		run()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
