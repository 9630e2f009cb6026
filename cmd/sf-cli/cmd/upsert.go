// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

var (
	upsertFile string
	upsertKey  string
)

var upsertCmd = &cobra.Command{
	Use:   "upsert <table>",
	Short: "Merge-upsert rows from a JSON array file on the declared key",
	Long: `upsert reads a JSON array of flat objects from --file and applies
the same merge-upsert semantics as columnstore.Table.Upsert: matched rows
(by --key) are replaced, unmatched rows inserted. Every object in the file
must carry the same set of keys as the first object.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]
		if err := validateTable(table); err != nil {
			return err
		}
		if upsertFile == "" {
			return fmt.Errorf("--file is required")
		}
		if upsertKey == "" {
			return fmt.Errorf("--key is required (comma-separated conflict columns)")
		}

		raw, err := os.ReadFile(upsertFile)
		if err != nil {
			return fmt.Errorf("read %s: %w", upsertFile, err)
		}

		var objs []map[string]any
		if err := json.Unmarshal(raw, &objs); err != nil {
			return fmt.Errorf("parse %s as a JSON array: %w", upsertFile, err)
		}
		if len(objs) == 0 {
			fmt.Println("0 row(s) upserted")
			return nil
		}

		columns := make([]string, 0, len(objs[0]))
		for col := range objs[0] {
			columns = append(columns, col)
		}
		sort.Strings(columns)

		ctx := cmd.Context()
		pool, err := connectPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		placeholders := make([]string, len(columns))
		for i := range columns {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		}

		keyCols := strings.Split(upsertKey, ",")
		updateSet := make([]string, 0, len(columns))
		for _, col := range columns {
			if containsString(keyCols, col) {
				continue
			}
			updateSet = append(updateSet, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}

		sql := fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
			table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
			upsertKey, strings.Join(updateSet, ", "),
		)

		tx, err := pool.Begin(ctx)
		if err != nil {
			return dberr.Wrap(err, "upsert")
		}
		defer tx.Rollback(ctx)

		for _, obj := range objs {
			args := make([]any, len(columns))
			for i, col := range columns {
				args[i] = obj[col]
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return dberr.Wrap(err, "upsert")
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return dberr.Wrap(err, "upsert")
		}
		fmt.Printf("%d row(s) upserted\n", len(objs))
		return nil
	},
}

func init() {
	upsertCmd.Flags().StringVar(&upsertFile, "file", "", "path to a JSON array of row objects")
	upsertCmd.Flags().StringVar(&upsertKey, "key", "", "comma-separated conflict/key columns")
	rootCmd.AddCommand(upsertCmd)
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
