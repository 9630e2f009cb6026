// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package publish

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-platform/contentcore/internal/platform/columnstore"
	"github.com/inkwell-platform/contentcore/internal/platform/database/schema"
	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

// PostgresRepository stores published artifacts over the column store,
// merge-upserting on task_id (a UNIQUE column, not the table's own primary
// key — columnstore's ON CONFLICT target accepts either).
type PostgresRepository struct {
	table *columnstore.Table[*Published]
}

// NewPostgresRepository builds a PostgresRepository bound to
// moderation.published.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		table: &columnstore.Table[*Published]{
			Pool:    db,
			Name:    schema.Published.Table,
			Columns: schema.Published.Columns(),
			PKey:    []string{schema.Published.TaskID},
			Scan:    scanPublished,
			ToRow:   toRow,
		},
	}
}

func scanPublished(rows pgx.Rows) (*Published, error) {
	p := &Published{}
	var articleID *string
	err := rows.Scan(&p.CommentID, &p.TaskID, &articleID, &p.AuthorName, &p.AvatarSeed, &p.AuthorHash, &p.Body, &p.AIReplyMarkdown, &p.PublishedAt)
	if articleID != nil {
		p.ArticleID = *articleID
	}
	return p, err
}

func toRow(p *Published) []any {
	var articleID *string
	if p.ArticleID != "" {
		articleID = &p.ArticleID
	}
	return []any{p.CommentID, p.TaskID, articleID, p.AuthorName, p.AvatarSeed, p.AuthorHash, p.Body, p.AIReplyMarkdown, p.PublishedAt}
}

// Upsert writes or overwrites the published row for p.TaskID.
func (r *PostgresRepository) Upsert(ctx context.Context, p *Published) error {
	return r.table.Upsert(ctx, []*Published{p})
}

// FindByTaskID fetches the published row for one task, or
// [dberr.ErrNotFound].
func (r *PostgresRepository) FindByTaskID(ctx context.Context, taskID string) (*Published, error) {
	rows, err := r.table.Scan(ctx, columnstore.ScanOpts{
		Filter: schema.Published.TaskID + " = $1",
		Args:   []any{taskID},
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

// List pages through an article's published comments, newest first.
func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*Published, int64, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := ""
	var args []any
	if f.ArticleID != "" {
		filter = schema.Published.ArticleID + " = $1"
		args = []any{f.ArticleID}
	}

	rows, err := r.table.Scan(ctx, columnstore.ScanOpts{
		Filter:  filter,
		Args:    args,
		OrderBy: schema.Published.PublishedAt + " DESC",
		Limit:   limit,
		Offset:  f.Offset,
	})
	if err != nil {
		return nil, 0, err
	}

	total, err := r.table.Count(ctx, filter, args...)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Delete removes a single published row by its comment id.
func (r *PostgresRepository) Delete(ctx context.Context, commentID string) error {
	return r.table.Delete(ctx, schema.Published.CommentID+" = $1", commentID)
}
