// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwell-platform/contentcore/internal/platform/migration"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Apply all pending schema migrations",
	Long: `init runs the same additive-migration path the server runs at
startup (internal/platform/migration.RunUp): it never renames or retypes an
existing column, only adds tables/indexes/nullable columns that are missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if databaseURL == "" {
			return fmt.Errorf("--database-url (or $DATABASE_URL) is required")
		}
		log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		if err := migration.RunUp(databaseURL, migrationPath, log); err != nil {
			return fmt.Errorf("init: %w", err)
		}
		fmt.Println("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
