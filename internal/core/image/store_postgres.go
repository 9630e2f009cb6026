// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package image

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/inkwell-platform/contentcore/internal/platform/columnstore"
	"github.com/inkwell-platform/contentcore/internal/platform/database/schema"
	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

// PostgresRepository persists images over [columnstore.Table].
type PostgresRepository struct {
	db    *pgxpool.Pool
	table *columnstore.Table[*Image]
}

// NewPostgresRepository builds a PostgresRepository bound to content.image.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		table: &columnstore.Table[*Image]{
			Pool:    db,
			Name:    schema.Image.Table,
			Columns: schema.Image.Columns(),
			PKey:    []string{schema.Image.ID},
			Scan:    scanImage,
			ToRow:   toRow,
		},
	}
}

func scanImage(rows pgx.Rows) (*Image, error) {
	img := &Image{}
	var vec *pgvector.Vector
	if err := rows.Scan(&img.ID, &img.Filename, &img.Data, &img.Thumbnail, &vec, &img.Metadata, &img.CreatedAt); err != nil {
		return nil, err
	}
	if vec != nil {
		img.Vector = vec.Slice()
	}
	return img, nil
}

func toRow(img *Image) []any {
	var vec *pgvector.Vector
	if len(img.Vector) > 0 {
		v := pgvector.NewVector(img.Vector)
		vec = &v
	}
	return []any{img.ID, img.Filename, img.Data, img.Thumbnail, vec, img.Metadata, img.CreatedAt}
}

// Upsert merges img into content.image on id. data must be non-empty per the
// data-model invariant.
func (r *PostgresRepository) Upsert(ctx context.Context, img *Image) error {
	if len(img.Data) == 0 {
		return dberr.Wrap(fmt.Errorf("image data must not be empty"), "upsert image")
	}
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now().UTC()
	}
	return r.table.Upsert(ctx, []*Image{img})
}

// FindByID fetches one image, or [dberr.ErrNotFound].
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Image, error) {
	rows, err := r.table.Scan(ctx, columnstore.ScanOpts{Filter: schema.Image.ID + " = $1", Args: []any{id}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, dberr.ErrNotFound
	}
	return rows[0], nil
}

// FindByFilename fetches one image by its unique filename.
func (r *PostgresRepository) FindByFilename(ctx context.Context, filename string) (*Image, error) {
	rows, err := r.table.Scan(ctx, columnstore.ScanOpts{Filter: schema.Image.Filename + " = $1", Args: []any{filename}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, dberr.ErrNotFound
	}
	return rows[0], nil
}

// List pages through every image, newest first.
func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Image, error) {
	return r.table.Scan(ctx, columnstore.ScanOpts{
		OrderBy: schema.Image.CreatedAt + " DESC",
		Limit:   limit,
		Offset:  offset,
	})
}

// Count returns the total image row count.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	return r.table.Count(ctx, "")
}

// Delete removes one image by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.table.Delete(ctx, schema.Image.ID+" = $1", id)
}

// SearchByVector runs a cosine-distance ANN query over the image vector
// column, excluding excludeID (the source image, for related-image lookups).
func (r *PostgresRepository) SearchByVector(ctx context.Context, query []float32, excludeID string, limit int) ([]Match, error) {
	stmt := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, (%s <=> $1) AS distance
		FROM %s
		WHERE %s IS NOT NULL AND %s <> $2
		ORDER BY distance ASC
		LIMIT $3`,
		schema.Image.ID, schema.Image.Filename, schema.Image.Data, schema.Image.Thumbnail,
		schema.Image.Vector, schema.Image.Metadata, schema.Image.CreatedAt,
		schema.Image.Vector, schema.Image.Table, schema.Image.Vector, schema.Image.ID,
	)

	v := pgvector.NewVector(query)
	rows, err := r.db.Query(ctx, stmt, v, excludeID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "search_by_vector image")
	}
	defer rows.Close()

	out := make([]Match, 0, limit)
	for rows.Next() {
		img := &Image{}
		var vec *pgvector.Vector
		var dist float64
		if err := rows.Scan(&img.ID, &img.Filename, &img.Data, &img.Thumbnail, &vec, &img.Metadata, &img.CreatedAt, &dist); err != nil {
			return nil, dberr.Wrap(err, "search_by_vector image")
		}
		if vec != nil {
			img.Vector = vec.Slice()
		}
		out = append(out, Match{Image: img, Distance: dist})
	}
	return out, rows.Err()
}
