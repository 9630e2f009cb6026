// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package search

import (
	"context"
	"fmt"
	"time"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/inkwell-platform/contentcore/internal/core/search/planner"
	"github.com/inkwell-platform/contentcore/internal/platform/apperr"
	"github.com/inkwell-platform/contentcore/internal/platform/database/schema"
	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
	"github.com/inkwell-platform/contentcore/internal/platform/embedding"
)

// SemanticSearch detects the query's language, embeds it with the matching
// model, and runs an ANN lookup against the language-matched vector column.
// If that yields zero rows, it swaps language and vector column and
// repeats once before giving up.
func (e *Engine) SemanticSearch(ctx context.Context, q Query) ([]Hit, error) {
	if e.text == nil {
		return nil, apperr.Internal(fmt.Errorf("search: no text embedder configured"))
	}
	limit := clampLimit(q.Limit)
	lang := DetectLanguage(q.Text)

	hits, err := e.semanticSearchInLang(ctx, q, lang, limit)
	if err != nil {
		return nil, err
	}
	if len(hits) > 0 {
		return e.withHighlightsLang(ctx, q, lang, hits)
	}

	fallbackLang := otherLang(lang)
	fallbackHits, err := e.semanticSearchInLang(ctx, q, fallbackLang, limit)
	if err != nil {
		return nil, err
	}
	return e.withHighlightsLang(ctx, q, fallbackLang, fallbackHits)
}

func (e *Engine) semanticSearchInLang(ctx context.Context, q Query, lang embedding.Lang, limit int) ([]Hit, error) {
	vec, err := e.text.EmbedText(ctx, lang, q.Text)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("search: embed query: %w", err))
	}

	col := schema.Article.VectorEN
	if lang == embedding.LangZH {
		col = schema.Article.VectorZH
	}

	stmt := fmt.Sprintf(`
		SELECT %s, %s, %s <=> $1 AS distance
		FROM %s
		WHERE %s IS NOT NULL
		ORDER BY distance ASC
		LIMIT $2 OFFSET $3`,
		schema.Article.ID, schema.Article.Title, col, schema.Article.Table, col,
	)

	start := time.Now()
	rows, err := e.db.Query(ctx, stmt, pgvector.NewVector(vec), limit, q.Offset)
	elapsed := time.Since(start)
	if err != nil {
		e.planner.RecordFallback(schema.Article.Table, q.Text, planner.PathVectorIndex, planner.PathVectorIndex, 0, elapsed)
		return nil, dberr.Wrap(err, "semantic search")
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.ArticleID, &h.Title, &h.Distance); err != nil {
			return nil, dberr.Wrap(err, "scan semantic hit")
		}
		h.Score = 1 / (1 + h.Distance)
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "semantic search")
	}

	e.planner.RecordFallback(schema.Article.Table, q.Text, planner.PathVectorIndex, planner.PathVectorIndex, len(hits), elapsed)
	return hits, nil
}
