// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package song

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-platform/contentcore/internal/platform/columnstore"
	"github.com/inkwell-platform/contentcore/internal/platform/database/schema"
	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

// PostgresRepository persists songs over [columnstore.Table].
type PostgresRepository struct {
	db    *pgxpool.Pool
	table *columnstore.Table[*Song]
}

// NewPostgresRepository builds a PostgresRepository bound to content.song.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		table: &columnstore.Table[*Song]{
			Pool:    db,
			Name:    schema.Song.Table,
			Columns: schema.Song.Columns(),
			PKey:    []string{schema.Song.ID},
			Scan:    scanSong,
			ToRow:   toRow,
		},
	}
}

func scanSong(rows pgx.Rows) (*Song, error) {
	s := &Song{}
	err := rows.Scan(
		&s.ID, &s.Title, &s.Artist, &s.Album, &s.AlbumID, &s.CoverImage, &s.DurationMs,
		&s.Format, &s.Bitrate, &s.LyricsLRC, &s.LyricsTranslation, &s.AudioData,
		&s.Source, &s.SourceID, &s.Tags, &s.SearchableText, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func toRow(s *Song) []any {
	return []any{
		s.ID, s.Title, s.Artist, s.Album, s.AlbumID, s.CoverImage, s.DurationMs,
		s.Format, s.Bitrate, s.LyricsLRC, s.LyricsTranslation, s.AudioData,
		s.Source, s.SourceID, s.Tags, s.SearchableText, s.CreatedAt, s.UpdatedAt,
	}
}

// Upsert merges s into content.song on id, regenerating SearchableText.
func (r *PostgresRepository) Upsert(ctx context.Context, s *Song) error {
	s.BuildSearchableText()
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	return r.table.Upsert(ctx, []*Song{s})
}

// FindByID fetches one song, or [dberr.ErrNotFound].
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Song, error) {
	rows, err := r.table.Scan(ctx, columnstore.ScanOpts{Filter: schema.Song.ID + " = $1", Args: []any{id}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, dberr.ErrNotFound
	}
	return rows[0], nil
}

// List pages through the catalogue newest first.
func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Song, error) {
	return r.table.Scan(ctx, columnstore.ScanOpts{
		OrderBy: schema.Song.CreatedAt + " DESC",
		Limit:   limit,
		Offset:  offset,
	})
}

// Count returns the total song row count.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	return r.table.Count(ctx, "")
}

// Delete removes one song by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.table.Delete(ctx, schema.Song.ID+" = $1", id)
}

// SearchKeyword runs FTS over the generated search_vector column, ranked by
// ts_rank.
func (r *PostgresRepository) SearchKeyword(ctx context.Context, query string, limit int) ([]*Song, error) {
	stmt := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s @@ websearch_to_tsquery('simple', $1)
		ORDER BY ts_rank(%s, websearch_to_tsquery('simple', $1)) DESC
		LIMIT $2`,
		strings.Join(schema.Song.Columns(), ", "), schema.Song.Table, schema.Song.SearchVector, schema.Song.SearchVector,
	)

	rows, err := r.db.Query(ctx, stmt, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "search_keyword song")
	}
	defer rows.Close()

	out := make([]*Song, 0, limit)
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "search_keyword song")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
