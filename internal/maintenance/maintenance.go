// Package maintenance runs periodic background tasks as Go tickers. The
// only task today is retrying the store initializer while the players
// table is still empty after a failed or empty startup seed.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/EnduringBeta/fraction.work/internal/seed"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	SeedRetryInterval time.Duration
}

// Seeder runs one initializer attempt.
type Seeder func(ctx context.Context) (seed.Result, error)

// Start retries seeder on every tick until the table is seeded or ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, cfg Config, seeder Seeder, logger *slog.Logger) {
	if cfg.SeedRetryInterval <= 0 {
		logger.Info("Seed retry ticker disabled")
		return
	}
	logger.Info("Seed retry ticker started", "interval", cfg.SeedRetryInterval)

	t := time.NewTicker(cfg.SeedRetryInterval)
	defer t.Stop()

	runLoop(ctx, t.C, func() bool { return retrySeed(ctx, seeder, logger) })
	logger.Info("Seed retry ticker stopped")
}

// runLoop calls fn on every tick until fn reports done or ctx ends.
func runLoop(ctx context.Context, ch <-chan time.Time, fn func() (done bool)) {
	for {
		select {
		case <-ch:
			if fn() {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func retrySeed(ctx context.Context, seeder Seeder, logger *slog.Logger) bool {
	result, err := seeder(ctx)
	if err != nil {
		logger.Warn("Seed retry failed", "state", result.State, "error", err)
		return false
	}
	if result.State != seed.StateSeeded {
		logger.Info("Seed retry left table empty", "summary", result.Summary())
		return false
	}
	logger.Info("Seed retry succeeded", "summary", result.Summary())
	return true
}
