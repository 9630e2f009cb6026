// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

var reindexKind string

var reindexCmd = &cobra.Command{
	Use:   "reindex <table> <column>",
	Short: "Idempotently (re)create an FTS, scalar, or vector index",
	Long: `reindex mirrors columnstore.Table.EnsureIndex: it always issues
CREATE INDEX IF NOT EXISTS, so re-running it after a migration or a bulk
upsert is always safe. --kind selects fts (GIN over to_tsvector), scalar
(btree), or vector (ivfflat, cosine distance).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, column := args[0], args[1]
		if err := validateTable(table); err != nil {
			return err
		}

		ctx := cmd.Context()
		pool, err := connectPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		idxName := fmt.Sprintf("idx_%s_%s_cli", sqlIdent(table), column)
		var ddl string
		switch reindexKind {
		case "fts":
			ddl = fmt.Sprintf(
				`CREATE INDEX IF NOT EXISTS %s ON %s USING GIN (to_tsvector('simple', coalesce(%s, '')))`,
				idxName, table, column)
		case "scalar":
			ddl = fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s)`, idxName, table, column)
		case "vector":
			ddl = fmt.Sprintf(
				`CREATE INDEX IF NOT EXISTS %s ON %s USING ivfflat (%s vector_cosine_ops) WITH (lists = 100)`,
				idxName, table, column)
		default:
			return fmt.Errorf("--kind must be one of fts, scalar, vector (got %q)", reindexKind)
		}

		if _, err := pool.Exec(ctx, ddl); err != nil {
			return dberr.Wrap(err, "reindex")
		}
		fmt.Printf("index %s ready on %s(%s)\n", idxName, table, column)
		return nil
	},
}

func init() {
	reindexCmd.Flags().StringVar(&reindexKind, "kind", "scalar", "index kind: fts, scalar, or vector")
	rootCmd.AddCommand(reindexCmd)
}

func sqlIdent(table string) string {
	out := make([]byte, 0, len(table))
	for i := 0; i < len(table); i++ {
		c := table[i]
		if c == '.' {
			out = append(out, '_')
			continue
		}
		out = append(out, c)
	}
	return string(out)
}
