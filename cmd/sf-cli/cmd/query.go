// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spf13/cobra"

	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

var (
	queryFilter  string
	queryColumns string
	queryLimit   int
	queryOffset  int
)

var queryCmd = &cobra.Command{
	Use:   "query <table>",
	Short: "Projection-pushdown scan with optional filter and paging",
	Long: `query runs the same projection + filter + limit/offset shape as
internal/platform/columnstore.Table.Scan, printing one JSON object per
line so results compose with jq in a shell pipeline.`,
	Args: cobra.ExactArgs(1),
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

		projection := "*"
		if queryColumns != "" {
			projection = queryColumns
		}

		sql := fmt.Sprintf("SELECT %s FROM %s", projection, table)
		if queryFilter != "" {
			sql += " WHERE " + queryFilter
		}
		if queryLimit > 0 {
			sql += fmt.Sprintf(" LIMIT %d", queryLimit)
		}
		if queryOffset > 0 {
			sql += fmt.Sprintf(" OFFSET %d", queryOffset)
		}

		rows, err := pool.Query(ctx, sql)
		if err != nil {
			return dberr.Wrap(err, "query")
		}
		defer rows.Close()

		enc := json.NewEncoder(os.Stdout)
		n := 0
		for rows.Next() {
			values, err := rows.Values()
			if err != nil {
				return dberr.Wrap(err, "query")
			}
			obj := rowToMap(rows.FieldDescriptions(), values)
			if err := enc.Encode(obj); err != nil {
				return err
			}
			n++
		}
		if err := rows.Err(); err != nil {
			return dberr.Wrap(err, "query")
		}
		fmt.Fprintf(os.Stderr, "%d row(s)\n", n)
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryFilter, "filter", "", "SQL WHERE clause fragment")
	queryCmd.Flags().StringVar(&queryColumns, "columns", "", "comma-separated projection (default *)")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 50, "row limit (0 = unlimited)")
	queryCmd.Flags().IntVar(&queryOffset, "offset", 0, "row offset")
	rootCmd.AddCommand(queryCmd)
}

func rowToMap(fields []pgconn.FieldDescription, values []any) map[string]any {
	out := make(map[string]any, len(fields))
	for i, f := range fields {
		out[f.Name] = values[i]
	}
	return out
}
