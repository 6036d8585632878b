// Package listener provides a Postgres LISTEN/NOTIFY consumer that keeps
// every instance's response cache coherent. It holds a dedicated pgx
// connection (not from the pool) listening on the players_changed channel,
// which every committed player mutation notifies.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/EnduringBeta/fraction.work/internal/db"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// Purger drops cached responses.
type Purger interface {
	Purge() int
}

// Start opens a dedicated connection and listens on db.ChangeChannel. It
// reconnects automatically on connection loss and purges the cache after
// each reconnect, since notifications sent while disconnected are lost.
// Blocks until ctx is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, cache Purger, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, cache, logger)
		if ctx.Err() != nil {
			logger.Info("Change listener stopped (context cancelled)")
			return
		}

		logger.Error("Change listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, cache Purger, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+db.ChangeChannel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", db.ChangeChannel, err)
	}
	cache.Purge()
	logger.Info("Change listener connected", "channel", db.ChangeChannel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		handleChange(notification.Payload, cache, logger)
	}
}

// handleChange purges the cache for any payload, parseable or not; a bad
// payload is still evidence that the table changed.
func handleChange(payload string, cache Purger, logger *slog.Logger) {
	dropped := cache.Purge()

	var change db.Change
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		logger.Warn("Failed to parse change event", "payload", payload, "error", err)
		return
	}
	logger.Debug("Players changed, cache purged",
		"op", change.Op, "id", change.ID, "dropped", dropped)
}
