package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/EnduringBeta/fraction.work/internal/config"
)

// Execer is the subset of pgxpool.Pool used by hooks.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AnalyzePlayers refreshes planner statistics after a bulk load.
// Call this after a seed that inserted rows.
func AnalyzePlayers(ctx context.Context, db Execer, logger *slog.Logger) error {
	start := time.Now()
	_, err := db.Exec(ctx, "ANALYZE "+config.PlayersTable)
	dur := time.Since(start).Round(time.Millisecond)

	if err != nil {
		logger.Warn("Failed to analyze table",
			"table", config.PlayersTable, "duration", dur, "error", err)
		return fmt.Errorf("analyze %s: %w", config.PlayersTable, err)
	}
	logger.Info("Analyzed table", "table", config.PlayersTable, "duration", dur)
	return nil
}
