// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

var describeCmd = &cobra.Command{
	Use:   "describe [table]",
	Short: "List tables, or describe one table's columns and types",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			for _, name := range sortedTableNames() {
				fmt.Println(name)
			}
			return nil
		}

		table := args[0]
		if err := validateTable(table); err != nil {
			return err
		}
		schema, name, _ := splitQualified(table)

		ctx := cmd.Context()
		pool, err := connectPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		rows, err := pool.Query(ctx, `
			SELECT column_name, data_type, is_nullable, column_default
			FROM information_schema.columns
			WHERE table_schema = $1 AND table_name = $2
			ORDER BY ordinal_position`, schema, name)
		if err != nil {
			return dberr.Wrap(err, "describe")
		}
		defer rows.Close()

		fmt.Printf("%-28s %-24s %-10s %s\n", "COLUMN", "TYPE", "NULLABLE", "DEFAULT")
		for rows.Next() {
			var col, typ, nullable string
			var def *string
			if err := rows.Scan(&col, &typ, &nullable, &def); err != nil {
				return dberr.Wrap(err, "describe")
			}
			defStr := ""
			if def != nil {
				defStr = *def
			}
			fmt.Printf("%-28s %-24s %-10s %s\n", col, typ, nullable, defStr)
		}
		return dberr.Wrap(rows.Err(), "describe")
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func splitQualified(table string) (schema, name string, ok bool) {
	for i := 0; i < len(table); i++ {
		if table[i] == '.' {
			return table[:i], table[i+1:], true
		}
	}
	return "", table, false
}
