// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package search

import (
	"context"
	"fmt"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/inkwell-platform/contentcore/internal/platform/apperr"
	"github.com/inkwell-platform/contentcore/internal/platform/database/schema"
	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
	"github.com/inkwell-platform/contentcore/internal/platform/embedding"
)

// ImageHit is one ranked image search result.
type ImageHit struct {
	ImageID  string  `json:"image_id"`
	Filename string  `json:"filename"`
	Distance float64 `json:"distance"`
}

// ImageSearch runs an ANN lookup against content.image.vector, excluding
// the query image's own id, and returning the nearest matches by cosine
// distance.
func (e *Engine) ImageSearch(ctx context.Context, queryImageID string, limit int) ([]ImageHit, error) {
	vec, err := e.imageVector(ctx, queryImageID)
	if err != nil {
		return nil, err
	}
	return e.annImageSearch(ctx, vec, queryImageID, clampLimit(limit))
}

// TextToImageSearch embeds text into the shared image vector space via a
// joint encoder and runs the same ANN lookup. Returns an error if no joint
// encoder is configured.
func (e *Engine) TextToImageSearch(ctx context.Context, text string, limit int) ([]ImageHit, error) {
	joint, ok := e.image.(embedding.JointEmbedder)
	if !ok {
		return nil, apperr.Internal(fmt.Errorf("search: no joint text/image encoder configured"))
	}
	vec, err := joint.EmbedTextForImageSearch(ctx, text)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("search: embed text for image search: %w", err))
	}
	return e.annImageSearch(ctx, vec, "", clampLimit(limit))
}

func (e *Engine) imageVector(ctx context.Context, imageID string) ([]float32, error) {
	stmt := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, schema.Image.Vector, schema.Image.Table, schema.Image.ID)
	var vec *pgvector.Vector
	if err := e.db.QueryRow(ctx, stmt, imageID).Scan(&vec); err != nil {
		return nil, dberr.Wrap(err, "fetch image vector")
	}
	if vec == nil {
		return nil, apperr.ValidationError("image has no embedding vector")
	}
	return vec.Slice(), nil
}

func (e *Engine) annImageSearch(ctx context.Context, vec []float32, excludeID string, limit int) ([]ImageHit, error) {
	stmt := fmt.Sprintf(`
		SELECT %s, %s, %s <=> $1 AS distance
		FROM %s
		WHERE %s IS NOT NULL AND %s <> $2
		ORDER BY distance ASC
		LIMIT $3`,
		schema.Image.ID, schema.Image.Filename, schema.Image.Vector,
		schema.Image.Table, schema.Image.Vector, schema.Image.ID,
	)
	rows, err := e.db.Query(ctx, stmt, pgvector.NewVector(vec), excludeID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "image ann search")
	}
	defer rows.Close()

	var out []ImageHit
	for rows.Next() {
		var h ImageHit
		if err := rows.Scan(&h.ImageID, &h.Filename, &h.Distance); err != nil {
			return nil, dberr.Wrap(err, "scan image hit")
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// RelatedArticles runs an ANN lookup against the source article's own
// vector (preferring the English column, falling back to Chinese), per
// the "related articles" fallback rule: if the source has no vector at
// all, the result is empty rather than an error.
func (e *Engine) RelatedArticles(ctx context.Context, articleID string, limit int) ([]Hit, error) {
	stmt := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.Article.VectorEN, schema.Article.VectorZH, schema.Article.Table, schema.Article.ID)
	var vEN, vZH *pgvector.Vector
	if err := e.db.QueryRow(ctx, stmt, articleID).Scan(&vEN, &vZH); err != nil {
		return nil, dberr.Wrap(err, "fetch article vectors")
	}

	col := schema.Article.VectorEN
	vec := vEN
	if vec == nil {
		col = schema.Article.VectorZH
		vec = vZH
	}
	if vec == nil {
		return nil, nil
	}

	related := fmt.Sprintf(`
		SELECT %s, %s, %s <=> $1 AS distance
		FROM %s
		WHERE %s IS NOT NULL AND %s <> $2
		ORDER BY distance ASC
		LIMIT $3`,
		schema.Article.ID, schema.Article.Title, col, schema.Article.Table, col, schema.Article.ID,
	)
	rows, err := e.db.Query(ctx, related, *vec, articleID, clampLimit(limit))
	if err != nil {
		return nil, dberr.Wrap(err, "related articles ann search")
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.ArticleID, &h.Title, &h.Distance); err != nil {
			return nil, dberr.Wrap(err, "scan related article hit")
		}
		h.Score = 1 / (1 + h.Distance)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
