// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-platform/contentcore/internal/core/search/planner"
	"github.com/inkwell-platform/contentcore/internal/platform/database/schema"
)

// KeywordSearch runs full-text search against content.article.search_vector
// with a websearch_to_tsquery primary path. On zero rows or an FTS error it
// falls back to a weighted ILIKE scan run in Postgres (title*10 +
// summary*5 + content*1 + tag*3).
func (e *Engine) KeywordSearch(ctx context.Context, q Query) ([]Hit, error) {
	limit := clampLimit(q.Limit)

	hits, elapsed, ftsErr := e.ftsSearch(ctx, q.Text, limit, q.Offset)
	e.planner.RecordFallback(schema.Article.Table, q.Text, planner.PathFTSIndex, planner.PathFTSIndex, len(hits), elapsed)
	if ftsErr == nil && len(hits) > 0 {
		return e.withHighlights(ctx, q, hits)
	}

	fallbackHits, fbElapsed, fbErr := e.weightedScanSearch(ctx, q.Text, limit, q.Offset)
	e.planner.RecordFallback(schema.Article.Table, q.Text, planner.PathFTSIndex, planner.PathScanFallback, len(fallbackHits), fbElapsed)
	if fbErr != nil {
		return nil, fbErr
	}
	return e.withHighlights(ctx, q, fallbackHits)
}

func (e *Engine) ftsSearch(ctx context.Context, text string, limit, offset int) ([]Hit, time.Duration, error) {
	stmt := fmt.Sprintf(`
		SELECT %s, %s, ts_rank(%s, websearch_to_tsquery('english', $1)) AS score
		FROM %s
		WHERE %s @@ websearch_to_tsquery('english', $1)
		ORDER BY score DESC
		LIMIT $2 OFFSET $3`,
		schema.Article.ID, schema.Article.Title, schema.Article.SearchVector,
		schema.Article.Table, schema.Article.SearchVector,
	)
	return e.runScoredQuery(ctx, stmt, text, limit, offset)
}

// weightedScanSearch implements the fallback scoring rule: title matches
// weigh 10x, summary 5x, content 1x, tag matches 3x per matched query
// token. Runs entirely in Postgres as a scan rather than pulling rows into
// the application, since the table may be large.
func (e *Engine) weightedScanSearch(ctx context.Context, text string, limit, offset int) ([]Hit, time.Duration, error) {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil, 0, nil
	}

	var scoreExpr strings.Builder
	args := []any{}
	for i, tok := range tokens {
		if i > 0 {
			scoreExpr.WriteString(" + ")
		}
		args = append(args, "%"+tok+"%")
		p := len(args)
		scoreExpr.WriteString(fmt.Sprintf(
			"(CASE WHEN %s ILIKE $%d THEN 10 ELSE 0 END) + (CASE WHEN %s ILIKE $%d THEN 5 ELSE 0 END) + (CASE WHEN %s ILIKE $%d THEN 1 ELSE 0 END) + (CASE WHEN EXISTS (SELECT 1 FROM unnest(%s) t WHERE t ILIKE $%d) THEN 3 ELSE 0 END)",
			schema.Article.Title, p, schema.Article.Summary, p, schema.Article.Content, p, schema.Article.Tags, p,
		))
	}

	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	args = append(args, limit, offset)

	stmt := fmt.Sprintf(`
		SELECT %s, %s, (%s) AS score
		FROM %s
		WHERE (%s) > 0
		ORDER BY score DESC
		LIMIT $%d OFFSET $%d`,
		schema.Article.ID, schema.Article.Title, scoreExpr.String(), schema.Article.Table, scoreExpr.String(), limitArg, offsetArg,
	)
	return e.runScoredQuery(ctx, stmt, args...)
}
