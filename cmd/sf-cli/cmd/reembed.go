// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package cmd

import (
	"context"
	"fmt"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/spf13/cobra"

	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
	"github.com/inkwell-platform/contentcore/internal/platform/embedding"
)

var reembedLang string

var reembedCmd = &cobra.Command{
	Use:   "re-embed <table> <id-column> <text-column> <vector-column>",
	Short: "Recompute a vector column for every row from its source text",
	Long: `re-embed walks every row of <table>, embeds <text-column> with the
configured text model, and writes the result into <vector-column>, keyed by
<id-column>. Unlike backfill-vectors it overwrites rows that already carry a
vector — use it after a model upgrade.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, idCol, textCol, vecCol := args[0], args[1], args[2], args[3]
		if err := validateTable(table); err != nil {
			return err
		}
		return runEmbedPass(cmd.Context(), table, idCol, textCol, vecCol, reembedLang, false)
	},
}

var backfillCmd = &cobra.Command{
	Use:   "backfill-vectors <table> <id-column> <text-column> <vector-column>",
	Short: "Embed only rows whose vector column is currently null",
	Long: `backfill-vectors is re-embed's conservative sibling: it only ever
touches rows where <vector-column> IS NULL, so it is safe to run repeatedly
against a table being written to concurrently (spec §3: "at least one
vector may be absent; backfill is allowed").`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, idCol, textCol, vecCol := args[0], args[1], args[2], args[3]
		if err := validateTable(table); err != nil {
			return err
		}
		return runEmbedPass(cmd.Context(), table, idCol, textCol, vecCol, reembedLang, true)
	},
}

func init() {
	reembedCmd.Flags().StringVar(&reembedLang, "lang", "en", "text model language (en or zh)")
	backfillCmd.Flags().StringVar(&reembedLang, "lang", "en", "text model language (en or zh)")
	rootCmd.AddCommand(reembedCmd)
	rootCmd.AddCommand(backfillCmd)
}

func runEmbedPass(ctx context.Context, table, idCol, textCol, vecCol, lang string, onlyNull bool) error {
	pool, err := connectPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	embedder := embedding.NewHashEmbedder()

	selectSQL := fmt.Sprintf("SELECT %s, %s FROM %s", idCol, textCol, table)
	if onlyNull {
		selectSQL += fmt.Sprintf(" WHERE %s IS NULL", vecCol)
	}

	rows, err := pool.Query(ctx, selectSQL)
	if err != nil {
		return dberr.Wrap(err, "embed pass select")
	}

	type pending struct {
		id   any
		text string
	}
	var batch []pending
	for rows.Next() {
		var id any
		var text string
		if err := rows.Scan(&id, &text); err != nil {
			rows.Close()
			return dberr.Wrap(err, "embed pass scan")
		}
		batch = append(batch, pending{id: id, text: text})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return dberr.Wrap(err, "embed pass scan")
	}
	rows.Close()

	updateSQL := fmt.Sprintf("UPDATE %s SET %s = $1 WHERE %s = $2", table, vecCol, idCol)
	n := 0
	for _, p := range batch {
		vec, err := embedder.EmbedText(ctx, embedding.Lang(lang), p.text)
		if err != nil {
			return fmt.Errorf("embed row %v: %w", p.id, err)
		}
		pv := pgvector.NewVector(vec)
		if _, err := pool.Exec(ctx, updateSQL, pv, p.id); err != nil {
			return dberr.Wrap(err, "embed pass update")
		}
		n++
	}
	fmt.Printf("%d row(s) embedded\n", n)
	return nil
}
