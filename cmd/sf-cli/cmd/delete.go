// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

var (
	deleteFilter string
	deleteYes    bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete <table>",
	Short: "Delete rows matching a filter predicate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]
		if err := validateTable(table); err != nil {
			return err
		}
		if deleteFilter == "" && !deleteYes {
			return fmt.Errorf("refusing an unfiltered delete without --yes (this would empty %s)", table)
		}

		ctx := cmd.Context()
		pool, err := connectPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		sql := fmt.Sprintf("DELETE FROM %s", table)
		if deleteFilter != "" {
			sql += " WHERE " + deleteFilter
		}

		tag, err := pool.Exec(ctx, sql)
		if err != nil {
			return dberr.Wrap(err, "delete")
		}
		fmt.Printf("%d row(s) deleted\n", tag.RowsAffected())
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteFilter, "filter", "", "SQL WHERE clause fragment (no WHERE keyword)")
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "allow an unfiltered delete of every row")
	rootCmd.AddCommand(deleteCmd)
}
