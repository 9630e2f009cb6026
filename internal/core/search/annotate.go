// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package search

import (
	"context"
	"fmt"

	"github.com/inkwell-platform/contentcore/internal/platform/database/schema"
	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
	"github.com/inkwell-platform/contentcore/internal/platform/embedding"
)

type articleBody struct {
	content string
	summary string
}

// fetchBodies batch-loads content/summary for the given article ids so
// highlight extraction never issues one query per hit.
func (e *Engine) fetchBodies(ctx context.Context, ids []string) (map[string]articleBody, error) {
	bodies := make(map[string]articleBody, len(ids))
	if len(ids) == 0 {
		return bodies, nil
	}

	stmt := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = ANY($1)`,
		schema.Article.ID, schema.Article.Content, schema.Article.Summary, schema.Article.Table, schema.Article.ID)
	rows, err := e.db.Query(ctx, stmt, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch article bodies")
	}
	defer rows.Close()

	for rows.Next() {
		var id, content, summary string
		if err := rows.Scan(&id, &content, &summary); err != nil {
			return nil, dberr.Wrap(err, "scan article body")
		}
		bodies[id] = articleBody{content: content, summary: summary}
	}
	return bodies, rows.Err()
}

// withHighlights attaches a fast-excerpt highlight to every hit.
func (e *Engine) withHighlights(ctx context.Context, q Query, hits []Hit) ([]Hit, error) {
	return e.withHighlightsLang(ctx, q, embedding.LangEN, hits)
}

// withHighlightsLang attaches a highlight to every hit, using the enhanced
// embedding-reranked path when q.Enhanced is set and an embedder is
// configured, else the fast excerpt path.
func (e *Engine) withHighlightsLang(ctx context.Context, q Query, lang embedding.Lang, hits []Hit) ([]Hit, error) {
	if len(hits) == 0 {
		return hits, nil
	}

	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ArticleID
	}
	bodies, err := e.fetchBodies(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]Hit, len(hits))
	for i, h := range hits {
		body := bodies[h.ArticleID]
		if q.Enhanced && e.text != nil {
			highlight, err := EnhancedHighlight(ctx, e.text, lang, q.Text, body.content, body.summary)
			if err == nil {
				h.Highlight = highlight
				out[i] = h
				continue
			}
		}
		h.Highlight = FastExcerpt(q.Text, body.content, body.summary)
		out[i] = h
	}
	return out, nil
}
