// Command playerctl is the players admin CLI.
//
// Usage:
//
//	playerctl init
//	playerctl validate --json
//	playerctl validate --url http://localhost:8080/roster.json
//	playerctl count
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/EnduringBeta/fraction.work/internal/config"
	"github.com/EnduringBeta/fraction.work/internal/db"
	"github.com/EnduringBeta/fraction.work/internal/maintenance"
	"github.com/EnduringBeta/fraction.work/internal/provider/roster"
	"github.com/EnduringBeta/fraction.work/internal/seed"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "playerctl",
		Short:        "Players table administration",
		SilenceUsage: true,
	}

	root.AddCommand(initCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(countCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// init command
// --------------------------------------------------------------------------

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the players table and seed it from the roster feed if empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				fetcher := roster.NewClient(cfg.RosterURL, cfg.RosterRequestsPerMinute, logger)
				start := time.Now()
				result, err := seed.Initialize(ctx, pool, fetcher, logger)
				logger.Info("Init finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", result.Summary())
				if err != nil {
					return err
				}
				if result.Inserted > 0 {
					_ = maintenance.AnalyzePlayers(ctx, pool, logger)
				}
				fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// validate command
// --------------------------------------------------------------------------

func validateCmd() *cobra.Command {
	var (
		url    string
		asJSON bool
		perMin int
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Fetch and validate the roster without touching the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			raws, err := roster.NewClient(url, perMin, logger).FetchRoster(ctx)
			if err != nil {
				return err
			}
			_, result := seed.ValidateBatch(raws, logger)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprintf(out, "fetched=%d valid=%d rejected=%d\n", result.Fetched, result.Valid, result.Rejected)
			c := result.Corrections
			fmt.Fprintf(out, "corrections: caught_stealing_normalized=%d average=%d on_base=%d slugging=%d combo=%d\n",
				c.CaughtStealingNormalized, c.Average, c.OnBase, c.Slugging, c.Combo)
			for _, e := range result.Errors {
				fmt.Fprintln(out, "  rejected:", e)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", envOr("ROSTER_URL", roster.DefaultURL), "Roster feed URL")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the batch report as JSON")
	cmd.Flags().IntVar(&perMin, "rpm", 30, "Roster requests per minute")
	return cmd
}

// --------------------------------------------------------------------------
// count command
// --------------------------------------------------------------------------

func countCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of players",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if err := pool.EnsureSchema(ctx); err != nil {
					return err
				}
				n, err := pool.CountPlayers(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func withPool(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
