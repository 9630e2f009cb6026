// Copyright (c) 2026 Inkwell Platform. All rights reserved.

/*
Package columnstore is the typed table adapter standing in for the original
embedded columnar store. The article, image, song, publish and taxonomy
repositories open a [Table] over a Postgres schema instead of a
directory-backed dataset (the task, airunner and analytics repositories issue
their SQL through pgx directly); merge-upsert, projection scans,
and index/compaction lifecycle operations are reimplemented as SQL against
that table.

Schema declaration still lives in [schema], one struct of column-name
constants per table — columnstore only needs the column list and the primary
key to build its SQL.
*/
package columnstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-platform/contentcore/internal/platform/apperr"
	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

// ColumnSpec declares one nullable column for additive migration checks.
type ColumnSpec struct {
	Name     string
	SQLType  string
	Nullable bool
}

// Table is a typed handle over one columnar table. T is the row's Go shape;
// Scan maps one result row into T, and ToRow maps T back into a column-value
// slice in the same order as Columns, for upsert.
type Table[T any] struct {
	Pool    *pgxpool.Pool
	Name    string   // fully-qualified, e.g. "content.article"
	Columns []string // all columns in declared schema order
	PKey    []string // primary-key column(s); the merge-upsert conflict target

	Scan  func(pgx.Rows) (T, error)
	ToRow func(T) []any
}

// EnsureSchema performs the additive migration described in §4.1: any
// declared nullable column missing from storage is added as an all-null
// column. It never renames or retypes an existing column.
func (t *Table[T]) EnsureSchema(ctx context.Context, nullableCols []ColumnSpec) error {
	for _, col := range nullableCols {
		if !col.Nullable {
			continue
		}
		stmt := fmt.Sprintf(`ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s`, t.Name, col.Name, col.SQLType)
		if _, err := t.Pool.Exec(ctx, stmt); err != nil {
			return apperr.StorageIo(fmt.Errorf("columnstore: additive migration on %s.%s: %w", t.Name, col.Name, err))
		}
	}
	return nil
}

// Upsert builds a single multi-row INSERT with an ON CONFLICT DO UPDATE
// merge on the primary key: matched rows are fully replaced, unmatched rows
// inserted. An empty rows slice is a no-op.
func (t *Table[T]) Upsert(ctx context.Context, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	var sql strings.Builder
	sql.WriteString("INSERT INTO ")
	sql.WriteString(t.Name)
	sql.WriteString(" (")
	sql.WriteString(strings.Join(t.Columns, ", "))
	sql.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(t.Columns))
	placeholder := 1
	for i, row := range rows {
		if i > 0 {
			sql.WriteString(", ")
		}
		values := t.ToRow(row)
		sql.WriteString("(")
		for j := range values {
			if j > 0 {
				sql.WriteString(", ")
			}
			sql.WriteString(fmt.Sprintf("$%d", placeholder))
			placeholder++
		}
		sql.WriteString(")")
		args = append(args, values...)
	}

	sql.WriteString(" ON CONFLICT (")
	sql.WriteString(strings.Join(t.PKey, ", "))
	sql.WriteString(") DO UPDATE SET ")

	updateCols := nonKeyColumns(t.Columns, t.PKey)
	for i, col := range updateCols {
		if i > 0 {
			sql.WriteString(", ")
		}
		sql.WriteString(fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	if _, err := t.Pool.Exec(ctx, sql.String(), args...); err != nil {
		return dberr.Wrap(err, "upsert "+t.Name)
	}
	return nil
}

// Delete removes every row matching an SQL-like predicate fragment (the
// part after WHERE), parameterized positionally starting at $1.
func (t *Table[T]) Delete(ctx context.Context, predicate string, args ...any) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s", t.Name, predicate)
	if _, err := t.Pool.Exec(ctx, stmt, args...); err != nil {
		return dberr.Wrap(err, "delete "+t.Name)
	}
	return nil
}

// ScanOpts configures a projection scan.
type ScanOpts struct {
	Projection []string // empty means all declared columns
	Filter     string   // SQL fragment after WHERE, empty means no filter
	Args       []any
	OrderBy    string
	Limit      int // 0 means unlimited
	Offset     int
}

// Scan runs a projection-pushdown query with optional filter and paging,
// returning each matched row decoded via the table's Scan function.
func (t *Table[T]) Scan(ctx context.Context, opts ScanOpts) ([]T, error) {
	projection := opts.Projection
	if len(projection) == 0 {
		projection = t.Columns
	}

	var sql strings.Builder
	sql.WriteString("SELECT ")
	sql.WriteString(strings.Join(projection, ", "))
	sql.WriteString(" FROM ")
	sql.WriteString(t.Name)

	if opts.Filter != "" {
		sql.WriteString(" WHERE ")
		sql.WriteString(opts.Filter)
	}
	if opts.OrderBy != "" {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(opts.OrderBy)
	}
	if opts.Limit > 0 {
		sql.WriteString(fmt.Sprintf(" LIMIT %d", opts.Limit))
	}
	if opts.Offset > 0 {
		sql.WriteString(fmt.Sprintf(" OFFSET %d", opts.Offset))
	}

	rows, err := t.Pool.Query(ctx, sql.String(), opts.Args...)
	if err != nil {
		return nil, dberr.Wrap(err, "scan "+t.Name)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		row, err := t.Scan(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan "+t.Name)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "scan "+t.Name)
	}
	return out, nil
}

// Count returns the row count matching an optional filter.
func (t *Table[T]) Count(ctx context.Context, filter string, args ...any) (int64, error) {
	stmt := fmt.Sprintf("SELECT COUNT(*) FROM %s", t.Name)
	if filter != "" {
		stmt += " WHERE " + filter
	}

	var n int64
	if err := t.Pool.QueryRow(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, dberr.Wrap(err, "count "+t.Name)
	}
	return n, nil
}

// IndexKind selects the physical index family EnsureIndex builds.
type IndexKind int

const (
	IndexFTS IndexKind = iota
	IndexScalar
	IndexVector
)

// EnsureIndex idempotently creates an FTS, scalar, or ANN (vector) index on
// column. The vector kind expects column to already be a pgvector column;
// ivfflat is built with a modest list count suited to a single-node deployment.
func (t *Table[T]) EnsureIndex(ctx context.Context, column string, kind IndexKind) error {
	name := fmt.Sprintf("idx_%s_%s", sanitizeIdent(t.Name), column)

	var stmt string
	switch kind {
	case IndexFTS:
		stmt = fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING GIN (%s)`, name, t.Name, column)
	case IndexScalar:
		stmt = fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s)`, name, t.Name, column)
	case IndexVector:
		stmt = fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING ivfflat (%s vector_cosine_ops) WITH (lists = 100)`, name, t.Name, column)
	default:
		return apperr.ValidationError("unknown index kind")
	}

	if _, err := t.Pool.Exec(ctx, stmt); err != nil {
		return dberr.Wrap(err, "ensure_index "+t.Name)
	}
	return nil
}

// OptimizeMode selects the scope of a compaction pass.
type OptimizeMode int

const (
	OptimizeIndexOnly OptimizeMode = iota
	OptimizeAll
)

// Optimize compacts the table. IndexOnly reindexes; All additionally
// vacuums and refreshes planner statistics.
func (t *Table[T]) Optimize(ctx context.Context, mode OptimizeMode) error {
	if _, err := t.Pool.Exec(ctx, fmt.Sprintf("REINDEX TABLE %s", t.Name)); err != nil {
		return dberr.Wrap(err, "optimize "+t.Name)
	}
	if mode == OptimizeAll {
		if _, err := t.Pool.Exec(ctx, fmt.Sprintf("VACUUM ANALYZE %s", t.Name)); err != nil {
			return dberr.Wrap(err, "optimize "+t.Name)
		}
	}
	return nil
}

// Prune removes rows older than a retention cutoff in two phases, mirroring
// the original two-phase prune: first delete the stale rows inside a
// transaction, then reclaim space with a VACUUM outside of it (Postgres
// refuses VACUUM inside a transaction block). deleteUnverified additionally
// runs that reclaim pass even when the delete phase removed nothing, to
// sweep up space left by an earlier, interrupted prune.
func (t *Table[T]) Prune(ctx context.Context, timestampCol string, olderThan time.Time, deleteUnverified bool) (int64, error) {
	tx, err := t.Pool.Begin(ctx)
	if err != nil {
		return 0, dberr.Wrap(err, "prune "+t.Name)
	}

	tag, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s < $1", t.Name, timestampCol), olderThan)
	if err != nil {
		tx.Rollback(ctx)
		return 0, dberr.Wrap(err, "prune "+t.Name)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, dberr.Wrap(err, "prune "+t.Name)
	}

	if tag.RowsAffected() > 0 || deleteUnverified {
		if _, err := t.Pool.Exec(ctx, fmt.Sprintf("VACUUM %s", t.Name)); err != nil {
			return tag.RowsAffected(), apperr.StorageIo(fmt.Errorf("columnstore: vacuum after prune on %s: %w", t.Name, err))
		}
	}

	return tag.RowsAffected(), nil
}

func nonKeyColumns(all, key []string) []string {
	keySet := make(map[string]struct{}, len(key))
	for _, k := range key {
		keySet[k] = struct{}{}
	}
	out := make([]string, 0, len(all))
	for _, c := range all {
		if _, isKey := keySet[c]; !isKey {
			out = append(out, c)
		}
	}
	return out
}

func sanitizeIdent(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}
