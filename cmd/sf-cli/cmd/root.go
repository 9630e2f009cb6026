// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package cmd

import (
	stdctx "context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var (
	databaseURL   string
	migrationPath string
)

var rootCmd = &cobra.Command{
	Use:   "sf-cli",
	Short: "Administrative CLI over the contentcore column store",
	Long: `sf-cli is the operator surface over the typed table store, index
planner and search engine: table lifecycle, raw scans, maintenance
operations (reindex, re-embed, backfill-vectors) and bulk JSON upsert.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string (default: $DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&migrationPath, "migration-path", envOr("MIGRATION_PATH", "./data/migrations"), "filesystem path to SQL migrations")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// connectPool opens a short-lived pool for one CLI invocation. sf-cli never
// holds a connection across commands — each invocation is a fresh process.
func connectPool(ctx stdctx.Context) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("--database-url (or $DATABASE_URL) is required")
	}
	dialCtx, cancel := stdctx.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(dialCtx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(dialCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}
