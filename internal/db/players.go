package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/EnduringBeta/fraction.work/internal/config"
	"github.com/EnduringBeta/fraction.work/internal/provider"
)

// ErrNotFound is returned when no player has the requested id.
var ErrNotFound = errors.New("player not found")

// ChangeChannel is the NOTIFY channel every committed mutation publishes on.
const ChangeChannel = "players_changed"

// seedLockKey identifies the transaction-scoped advisory lock that
// serializes seeding across instances sharing one database.
const seedLockKey int64 = 0x706c6179657273

// Change is the JSON payload published on ChangeChannel.
type Change struct {
	Op string `json:"op"` // seed, create, update, delete
	ID int64  `json:"id,omitempty"`
}

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS ` + config.PlayersTable + ` (
		id                    BIGSERIAL PRIMARY KEY,
		player_name           TEXT NOT NULL CHECK (player_name <> ''),
		position              TEXT NOT NULL CHECK (position <> ''),
		games                 INTEGER NOT NULL CHECK (games >= 0),
		at_bat                INTEGER NOT NULL CHECK (at_bat > 0),
		runs                  INTEGER NOT NULL CHECK (runs >= 0),
		hits                  INTEGER NOT NULL CHECK (hits >= 0),
		doubles               INTEGER NOT NULL CHECK (doubles >= 0),
		triples               INTEGER NOT NULL CHECK (triples >= 0),
		home_runs             INTEGER NOT NULL CHECK (home_runs >= 0),
		rbi                   INTEGER NOT NULL CHECK (rbi >= 0),
		walks                 INTEGER NOT NULL CHECK (walks >= 0),
		strikeouts            INTEGER NOT NULL CHECK (strikeouts >= 0),
		stolen_bases          INTEGER NOT NULL CHECK (stolen_bases >= 0),
		caught_stealing       INTEGER NOT NULL CHECK (caught_stealing >= 0),
		batting_average       DOUBLE PRECISION NOT NULL,
		on_base_percent       DOUBLE PRECISION NOT NULL,
		slugging_percent      DOUBLE PRECISION NOT NULL,
		on_base_plus_slugging DOUBLE PRECISION NOT NULL,
		CHECK (hits >= doubles + triples + home_runs)
	)`

// playerColumns is every column except id, in playerValues order.
var playerColumns = []string{
	"player_name", "position", "games", "at_bat", "runs", "hits",
	"doubles", "triples", "home_runs", "rbi", "walks", "strikeouts",
	"stolen_bases", "caught_stealing", "batting_average",
	"on_base_percent", "slugging_percent", "on_base_plus_slugging",
}

var (
	selectPlayers = "SELECT id, " + strings.Join(playerColumns, ", ") + " FROM " + config.PlayersTable
	insertPlayer  = "INSERT INTO " + config.PlayersTable + " (" + strings.Join(playerColumns, ", ") + ") VALUES (" + placeholders(1, len(playerColumns)) + ") RETURNING id"
	updatePlayer  = "UPDATE " + config.PlayersTable + " SET " + assignments(playerColumns) + " WHERE id = $" + strconv.Itoa(len(playerColumns)+1)
)

func playerValues(p provider.Player) []any {
	return []any{
		p.PlayerName, p.Position, p.Games, p.AtBat, p.Runs, p.Hits,
		p.Doubles, p.Triples, p.HomeRuns, p.RBI, p.Walks, p.Strikeouts,
		p.StolenBases, p.CaughtStealing, p.BattingAverage,
		p.OnBasePercent, p.SluggingPercent, p.OnBasePlusSlugging,
	}
}

// EnsureSchema creates the players table if it does not exist.
func (p *Pool) EnsureSchema(ctx context.Context) error {
	if _, err := p.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("create %s table: %w", config.PlayersTable, err)
	}
	return nil
}

// CountPlayers returns the number of rows in the players table.
func (p *Pool) CountPlayers(ctx context.Context) (int, error) {
	var n int
	if err := p.QueryRow(ctx, "SELECT COUNT(*) FROM "+config.PlayersTable).Scan(&n); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return n, nil
}

// InsertPlayersIfEmpty bulk-loads players with COPY inside one transaction
// that first takes the seed advisory lock and re-checks emptiness. Two
// instances racing past their own emptiness checks serialize on the lock;
// the second sees rows and inserts nothing.
func (p *Pool) InsertPlayersIfEmpty(ctx context.Context, players []provider.Player) (int, error) {
	var inserted int64
	err := p.mutate(ctx, func(tx pgx.Tx) (Change, error) {
		if _, err := tx.Exec(ctx, "seed_lock", seedLockKey); err != nil {
			return Change{}, fmt.Errorf("acquire seed lock: %w", err)
		}

		var hasRows bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM "+config.PlayersTable+")").Scan(&hasRows); err != nil {
			return Change{}, fmt.Errorf("recheck emptiness: %w", err)
		}
		if hasRows {
			return Change{}, nil
		}

		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{config.PlayersTable},
			playerColumns,
			pgx.CopyFromSlice(len(players), func(i int) ([]any, error) {
				return playerValues(players[i]), nil
			}),
		)
		if err != nil {
			return Change{}, fmt.Errorf("copy players: %w", err)
		}
		inserted = n
		return Change{Op: "seed"}, nil
	})
	if err != nil {
		return 0, err
	}
	return int(inserted), nil
}

// ListPlayers returns every player ordered by id.
func (p *Pool) ListPlayers(ctx context.Context) ([]provider.Player, error) {
	rows, err := p.Query(ctx, selectPlayers+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	players, err := pgx.CollectRows(rows, pgx.RowToStructByName[provider.Player])
	if err != nil {
		return nil, fmt.Errorf("scan players: %w", err)
	}
	return players, nil
}

// GetPlayer returns one player or ErrNotFound.
func (p *Pool) GetPlayer(ctx context.Context, id int64) (provider.Player, error) {
	rows, err := p.Query(ctx, selectPlayers+" WHERE id = $1", id)
	if err != nil {
		return provider.Player{}, fmt.Errorf("get player %d: %w", id, err)
	}
	player, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[provider.Player])
	if errors.Is(err, pgx.ErrNoRows) {
		return provider.Player{}, ErrNotFound
	}
	if err != nil {
		return provider.Player{}, fmt.Errorf("scan player %d: %w", id, err)
	}
	return player, nil
}

// CreatePlayer inserts player, ignoring its ID, and returns it with the
// assigned ID.
func (p *Pool) CreatePlayer(ctx context.Context, player provider.Player) (provider.Player, error) {
	err := p.mutate(ctx, func(tx pgx.Tx) (Change, error) {
		if err := tx.QueryRow(ctx, insertPlayer, playerValues(player)...).Scan(&player.ID); err != nil {
			return Change{}, fmt.Errorf("insert player: %w", err)
		}
		return Change{Op: "create", ID: player.ID}, nil
	})
	if err != nil {
		return provider.Player{}, err
	}
	return player, nil
}

// UpdatePlayer replaces every column of the player with player.ID.
func (p *Pool) UpdatePlayer(ctx context.Context, player provider.Player) error {
	return p.mutate(ctx, func(tx pgx.Tx) (Change, error) {
		tag, err := tx.Exec(ctx, updatePlayer, append(playerValues(player), player.ID)...)
		if err != nil {
			return Change{}, fmt.Errorf("update player %d: %w", player.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return Change{}, ErrNotFound
		}
		return Change{Op: "update", ID: player.ID}, nil
	})
}

// DeletePlayer removes the player with id.
func (p *Pool) DeletePlayer(ctx context.Context, id int64) error {
	return p.mutate(ctx, func(tx pgx.Tx) (Change, error) {
		tag, err := tx.Exec(ctx, "DELETE FROM "+config.PlayersTable+" WHERE id = $1", id)
		if err != nil {
			return Change{}, fmt.Errorf("delete player %d: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return Change{}, ErrNotFound
		}
		return Change{Op: "delete", ID: id}, nil
	})
}

// mutate runs fn in a transaction and, when fn reports a change, queues a
// NOTIFY that Postgres delivers only if the transaction commits.
func (p *Pool) mutate(ctx context.Context, fn func(tx pgx.Tx) (Change, error)) error {
	return pgx.BeginFunc(ctx, p.Pool, func(tx pgx.Tx) error {
		change, err := fn(tx)
		if err != nil {
			return err
		}
		if change.Op == "" {
			return nil
		}
		payload, err := json.Marshal(change)
		if err != nil {
			return fmt.Errorf("encode change: %w", err)
		}
		if _, err := tx.Exec(ctx, "notify_change", ChangeChannel, string(payload)); err != nil {
			return fmt.Errorf("notify %s: %w", ChangeChannel, err)
		}
		return nil
	})
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// placeholders returns "$from, ..., $(from+n-1)".
func placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "$" + strconv.Itoa(from+i)
	}
	return strings.Join(parts, ", ")
}

// assignments returns "col1 = $1, col2 = $2, ...".
func assignments(cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " = $" + strconv.Itoa(i+1)
	}
	return strings.Join(parts, ", ")
}
