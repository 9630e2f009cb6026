// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package search

import (
	"context"
	"time"

	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

// runScoredQuery executes a (id, title, score) query and times it for
// planner telemetry.
func (e *Engine) runScoredQuery(ctx context.Context, stmt string, args ...any) ([]Hit, time.Duration, error) {
	start := time.Now()
	rows, err := e.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, time.Since(start), dberr.Wrap(err, "search scored query")
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.ArticleID, &h.Title, &h.Score); err != nil {
			return nil, time.Since(start), dberr.Wrap(err, "scan search hit")
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Since(start), dberr.Wrap(err, "search scored query")
	}
	return hits, time.Since(start), nil
}
