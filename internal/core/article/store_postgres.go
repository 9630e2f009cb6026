// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package article

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/inkwell-platform/contentcore/internal/platform/columnstore"
	"github.com/inkwell-platform/contentcore/internal/platform/database/schema"
	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

// PostgresRepository persists articles over [columnstore.Table].
type PostgresRepository struct {
	db    *pgxpool.Pool
	table *columnstore.Table[*Article]
}

// NewPostgresRepository builds a PostgresRepository bound to content.article.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		table: &columnstore.Table[*Article]{
			Pool:    db,
			Name:    schema.Article.Table,
			Columns: schema.Article.Columns(),
			PKey:    []string{schema.Article.ID},
			Scan:    scanArticle,
			ToRow:   toRow,
		},
	}
}

func scanArticle(rows pgx.Rows) (*Article, error) {
	a := &Article{}
	var vEN, vZH *pgvector.Vector
	if err := rows.Scan(
		&a.ID, &a.Title, &a.Summary, &a.Content, &a.Tags, &a.Category, &a.Author,
		&a.Date, &a.FeaturedImage, &a.ReadTime, &vEN, &vZH, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if vEN != nil {
		a.VectorEN = vEN.Slice()
	}
	if vZH != nil {
		a.VectorZH = vZH.Slice()
	}
	return a, nil
}

func toRow(a *Article) []any {
	var vEN, vZH *pgvector.Vector
	if len(a.VectorEN) > 0 {
		v := pgvector.NewVector(a.VectorEN)
		vEN = &v
	}
	if len(a.VectorZH) > 0 {
		v := pgvector.NewVector(a.VectorZH)
		vZH = &v
	}
	return []any{
		a.ID, a.Title, a.Summary, a.Content, a.Tags, a.Category, a.Author,
		a.Date, a.FeaturedImage, a.ReadTime, vEN, vZH, a.CreatedAt, a.UpdatedAt,
	}
}

// Upsert merges a into content.article on id.
func (r *PostgresRepository) Upsert(ctx context.Context, a *Article) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	return r.table.Upsert(ctx, []*Article{a})
}

// FindByID fetches one article, or [dberr.ErrNotFound].
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Article, error) {
	rows, err := r.table.Scan(ctx, columnstore.ScanOpts{
		Filter: schema.Article.ID + " = $1",
		Args:   []any{id},
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, dberr.ErrNotFound
	}
	return rows[0], nil
}

// List runs a filtered, paginated scan ordered by date descending.
func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*Article, error) {
	filter, args := buildFilter(f)
	return r.table.Scan(ctx, columnstore.ScanOpts{
		Filter:  filter,
		Args:    args,
		OrderBy: schema.Article.Date + " DESC",
		Limit:   f.Limit,
		Offset:  f.Offset,
	})
}

// Count returns the row count under the same filter as List.
func (r *PostgresRepository) Count(ctx context.Context, f Filter) (int64, error) {
	filter, args := buildFilter(f)
	return r.table.Count(ctx, filter, args...)
}

func buildFilter(f Filter) (string, []any) {
	var clauses []string
	var args []any
	if f.Tag != "" {
		args = append(args, f.Tag)
		clauses = append(clauses, fmt.Sprintf("%s = ANY(%s)", fmt.Sprintf("$%d", len(args)), schema.Article.Tags))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", schema.Article.Category, len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

// Delete removes one article by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.table.Delete(ctx, schema.Article.ID+" = $1", id)
}

// BackfillVector sets one language's embedding column without touching the
// rest of the row — the only narrow, non-upsert write this repository makes,
// because embeddings are computed well after article creation.
func (r *PostgresRepository) BackfillVector(ctx context.Context, id, lang string, vec []float32) error {
	col := schema.Article.VectorEN
	if lang == "zh" {
		col = schema.Article.VectorZH
	}
	v := pgvector.NewVector(vec)
	stmt := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = now() WHERE %s = $2`,
		schema.Article.Table, col, schema.Article.UpdatedAt, schema.Article.ID)
	tag, err := r.db.Exec(ctx, stmt, v, id)
	if err != nil {
		return dberr.Wrap(err, "backfill_vector article")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// ListTags returns the distinct set of tags actually used by an article,
// for the /api/tags listing (joined with taxonomy descriptions by the
// service layer).
func (r *PostgresRepository) ListTags(ctx context.Context) ([]string, error) {
	stmt := fmt.Sprintf(`SELECT DISTINCT unnest(%s) AS tag FROM %s ORDER BY tag`, schema.Article.Tags, schema.Article.Table)
	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, dberr.Wrap(err, "list_tags")
		}
		out = append(out, tag)
	}
	return out, rows.Err()
}

// ListCategories returns the distinct set of categories in use.
func (r *PostgresRepository) ListCategories(ctx context.Context) ([]string, error) {
	stmt := fmt.Sprintf(`SELECT DISTINCT %s FROM %s WHERE %s <> '' ORDER BY %s`,
		schema.Article.Category, schema.Article.Table, schema.Article.Category, schema.Article.Category)
	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, dberr.Wrap(err, "list_categories")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
