// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package search

import (
	"context"
	"sort"
)

// HybridSearch issues both a vector and an FTS query, each against its own
// candidate window (defaulting to the overall result limit), and fuses the
// two ranked lists by Reciprocal Rank Fusion: for each document d at rank r
// in list L_k, accumulate 1/(K+r). K defaults to 60 and must stay positive.
func (e *Engine) HybridSearch(ctx context.Context, q Query) ([]Hit, error) {
	limit := clampLimit(q.Limit)
	k := q.RRFK
	if k <= 0 {
		k = e.hybridK
	}

	vectorQuery := q
	vectorQuery.Limit = limit
	vectorQuery.Mode = ModeSemantic

	ftsQuery := q
	ftsQuery.Limit = limit
	ftsQuery.Mode = ModeKeyword

	vectorHits, err := e.SemanticSearch(ctx, vectorQuery)
	if err != nil {
		vectorHits = nil
	}
	ftsHits, err := e.KeywordSearch(ctx, ftsQuery)
	if err != nil {
		ftsHits = nil
	}

	fused := fuseRRF(k, vectorHits, ftsHits)
	if len(fused) > limit {
		fused = fused[:limit]
	}
	return fused, nil
}

// fuseRRF merges any number of ranked hit lists by Reciprocal Rank Fusion,
// keyed on ArticleID, preserving the richest Hit seen for each document
// (the one carrying a highlight) and re-scoring by the fused RRF sum.
func fuseRRF(k int, lists ...[]Hit) []Hit {
	type accum struct {
		hit   Hit
		score float64
	}
	byID := make(map[string]*accum)
	var order []string

	for _, list := range lists {
		for rank, hit := range list {
			contribution := 1.0 / float64(k+rank+1)
			existing, ok := byID[hit.ArticleID]
			if !ok {
				h := hit
				byID[hit.ArticleID] = &accum{hit: h, score: contribution}
				order = append(order, hit.ArticleID)
				continue
			}
			existing.score += contribution
			if existing.hit.Highlight == "" && hit.Highlight != "" {
				existing.hit.Highlight = hit.Highlight
			}
		}
	}

	out := make([]Hit, 0, len(order))
	for _, id := range order {
		a := byID[id]
		a.hit.Score = a.score
		out = append(out, a.hit)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
