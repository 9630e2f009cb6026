// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

var countFilter string

var countCmd = &cobra.Command{
	Use:   "count <table>",
	Short: "Count rows in a table, optionally under a WHERE filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]
		if err := validateTable(table); err != nil {
			return err
		}

		ctx := cmd.Context()
		pool, err := connectPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		query := fmt.Sprintf("SELECT count(*) FROM %s", table)
		if countFilter != "" {
			query += " WHERE " + countFilter
		}

		var n int64
		if err := pool.QueryRow(ctx, query).Scan(&n); err != nil {
			return dberr.Wrap(err, "count")
		}
		fmt.Println(n)
		return nil
	},
}

func init() {
	countCmd.Flags().StringVar(&countFilter, "filter", "", "SQL WHERE clause fragment (no WHERE keyword)")
	rootCmd.AddCommand(countCmd)
}
