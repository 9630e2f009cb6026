// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package taxonomy

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-platform/contentcore/internal/platform/columnstore"
	"github.com/inkwell-platform/contentcore/internal/platform/database/schema"
)

// Store persists taxonomy entries over the column store.
type Store struct {
	table *columnstore.Table[Entry]
}

// NewStore builds a Store bound to content.taxonomy.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		table: &columnstore.Table[Entry]{
			Pool:    pool,
			Name:    schema.Taxonomy.Table,
			Columns: schema.Taxonomy.Columns(),
			PKey:    []string{schema.Taxonomy.Kind, schema.Taxonomy.Key},
			Scan:    scanEntry,
			ToRow:   toRow,
		},
	}
}

func scanEntry(rows pgx.Rows) (Entry, error) {
	var e Entry
	err := rows.Scan(&e.Kind, &e.Key, &e.Description)
	return e, err
}

func toRow(e Entry) []any {
	return []any{e.Kind, e.Key, e.Description}
}

// Upsert creates or replaces a taxonomy entry.
func (s *Store) Upsert(ctx context.Context, e Entry) error {
	return s.table.Upsert(ctx, []Entry{e})
}

// ListByKind returns every entry of the given kind, ordered by key.
func (s *Store) ListByKind(ctx context.Context, kind Kind) ([]Entry, error) {
	return s.table.Scan(ctx, columnstore.ScanOpts{
		Filter:  schema.Taxonomy.Kind + " = $1",
		Args:    []any{kind},
		OrderBy: schema.Taxonomy.Key,
	})
}

// Delete removes a single taxonomy entry.
func (s *Store) Delete(ctx context.Context, kind Kind, key string) error {
	return s.table.Delete(ctx, schema.Taxonomy.Kind+" = $1 AND "+schema.Taxonomy.Key+" = $2", kind, key)
}
