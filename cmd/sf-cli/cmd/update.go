// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

var (
	updateSet    string
	updateFilter string
	updateYes    bool
)

var updateCmd = &cobra.Command{
	Use:   "update <table>",
	Short: "Apply a raw SET clause to rows matching a filter",
	Long: `update is an escape hatch for administrative corrections that don't
go through a domain service's validated mutation path (e.g. clearing a
stuck admin_note). --set and --filter are raw SQL fragments, trusted as the
rest of this CLI is.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]
		if err := validateTable(table); err != nil {
			return err
		}
		if updateSet == "" {
			return fmt.Errorf("--set is required")
		}
		if updateFilter == "" && !updateYes {
			return fmt.Errorf("refusing an unfiltered update without --yes (this would touch every row in %s)", table)
		}

		ctx := cmd.Context()
		pool, err := connectPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		sql := fmt.Sprintf("UPDATE %s SET %s", table, updateSet)
		if updateFilter != "" {
			sql += " WHERE " + updateFilter
		}

		tag, err := pool.Exec(ctx, sql)
		if err != nil {
			return dberr.Wrap(err, "update")
		}
		fmt.Printf("%d row(s) updated\n", tag.RowsAffected())
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateSet, "set", "", "SQL SET clause fragment (no SET keyword), e.g. \"admin_note = 'cleared'\"")
	updateCmd.Flags().StringVar(&updateFilter, "filter", "", "SQL WHERE clause fragment (no WHERE keyword)")
	updateCmd.Flags().BoolVar(&updateYes, "yes", false, "allow an unfiltered update of every row")
	rootCmd.AddCommand(updateCmd)
}
