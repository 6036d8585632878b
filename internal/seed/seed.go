package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/EnduringBeta/fraction.work/internal/provider"
	"github.com/EnduringBeta/fraction.work/internal/provider/roster"
	"github.com/EnduringBeta/fraction.work/internal/validate"
)

// Store is the persistence the initializer needs.
type Store interface {
	// EnsureSchema creates the players table if it does not exist.
	EnsureSchema(ctx context.Context) error
	// CountPlayers returns the current row count.
	CountPlayers(ctx context.Context) (int, error)
	// InsertPlayersIfEmpty atomically re-checks that the table is empty and
	// bulk-inserts players. It returns 0 without error when rows appeared
	// in the meantime. Either every player persists or none do.
	InsertPlayersIfEmpty(ctx context.Context, players []provider.Player) (int, error)
}

// Fetcher supplies raw roster records.
type Fetcher interface {
	FetchRoster(ctx context.Context) ([]provider.RawPlayer, error)
}

// PersistenceError means the store rejected schema creation, the row
// count, or the bulk insert. No partial write remains.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Initialize guarantees the schema exists, then seeds the table from
// fetcher if and only if it is empty. Calling it again after a successful
// seed is a no-op; calling it after a failed or empty attempt retries from
// scratch.
//
// Errors are *roster.FetchError or *PersistenceError. A batch in which no
// record validates is not an error: the table stays empty.
func Initialize(ctx context.Context, store Store, fetcher Fetcher, logger *slog.Logger) (Result, error) {
	result := Result{BatchID: uuid.NewString(), State: StateUninitialized}
	log := logger.With("batch_id", result.BatchID)

	if err := store.EnsureSchema(ctx); err != nil {
		return result, &PersistenceError{Op: "create schema", Err: err}
	}
	result.State = StateSchemaReady

	n, err := store.CountPlayers(ctx)
	if err != nil {
		return result, &PersistenceError{Op: "count players", Err: err}
	}
	if n > 0 {
		result.State = StateSeeded
		result.Skipped = true
		log.Info("Players table already populated, skipping seed", "rows", n)
		return result, nil
	}
	result.State = StateEmpty

	log.Info("Players table empty, fetching roster...")
	raws, err := fetcher.FetchRoster(ctx)
	if err != nil {
		result.State = StateSeedFailed
		var fe *roster.FetchError
		if !errors.As(err, &fe) {
			err = &roster.FetchError{Err: err}
		}
		return result, err
	}

	players, batch := ValidateBatch(raws, log)
	result.Fetched = batch.Fetched
	result.Valid = batch.Valid
	result.Rejected = batch.Rejected
	result.Corrections = batch.Corrections
	result.Errors = batch.Errors

	if len(players) == 0 {
		log.Warn("No valid player records, leaving table empty", "fetched", result.Fetched)
		return result, nil
	}

	inserted, err := store.InsertPlayersIfEmpty(ctx, players)
	if err != nil {
		result.State = StateSeedFailed
		return result, &PersistenceError{Op: "bulk insert players", Err: err}
	}
	result.Inserted = inserted
	result.State = StateSeeded
	if inserted == 0 {
		result.Skipped = true
		log.Info("Players table was seeded concurrently, nothing inserted")
		return result, nil
	}

	log.Info("Added initial players", "summary", result.Summary())
	return result, nil
}

// ValidateBatch validates every raw record. Records that fail are excluded
// and noted in the result; the rest are returned in input order.
func ValidateBatch(raws []provider.RawPlayer, logger *slog.Logger) ([]provider.Player, Result) {
	result := Result{Fetched: len(raws)}
	ledger := validate.NewLedger()

	players := make([]provider.Player, 0, len(raws))
	for i, raw := range raws {
		p, err := validate.Record(raw, ledger)
		if err != nil {
			result.Rejected++
			result.AddErrorf("record %d: %v", i, err)
			logger.Warn("Rejected roster record", "index", i, "error", err)
			continue
		}
		players = append(players, p)
	}

	result.Valid = len(players)
	result.Corrections = ledger.Report()
	logger.Info("Cleaning report",
		"valid", result.Valid,
		"rejected", result.Rejected,
		"corrections", result.Corrections)
	return players, result
}
