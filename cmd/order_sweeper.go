package main

import (
	"context"
	"log"
	"time"

	"reelstore/internal/repositories"
)

const orderSweeperTimeout = 30 * time.Second

// startOrderSweeper periodically removes pending orders past the expiry
// window. Lazy cleanup: Consume rejects expired entries on its own, the
// sweeper just keeps the map from growing.
func startOrderSweeper(ctx context.Context, orders repositories.OrderStore, interval time.Duration, infoLog, errorLog *log.Logger) {
	if orders == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, orderSweeperTimeout)
			removed, err := orders.Sweep(runCtx, time.Now())
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("order sweeper: sweep failed: %v", err)
				}
			} else if removed > 0 && infoLog != nil {
				infoLog.Printf("order sweeper: removed %d expired orders", removed)
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
