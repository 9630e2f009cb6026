// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package analytics

import (
	"context"
	"time"
)

// Repository is the persistence boundary for the analytics ring.
type Repository interface {
	// RecordView upserts (article_id, fingerprint, dedupe_bucket) and
	// reports whether this call was the row's first write (counted) plus
	// the article's all-time view total.
	RecordView(ctx context.Context, articleID, fingerprint string, dedupeBucket int64, now time.Time) (counted bool, total int64, err error)

	// DayTrend groups an article's views into local-TZ day buckets over the
	// last days days.
	DayTrend(ctx context.Context, articleID string, days int) ([]DayPoint, error)

	// HourTrend groups an article's views for one local-TZ calendar day
	// (YYYY-MM-DD) into hour-of-day buckets.
	HourTrend(ctx context.Context, articleID, day string) ([]HourPoint, error)

	RecordBehaviorEvent(ctx context.Context, ev BehaviorEvent) error

	// BehaviorSummaryOverLastDays aggregates every behavior event in the
	// last days days.
	BehaviorSummaryOverLastDays(ctx context.Context, days int) (BehaviorSummary, error)

	// CleanupViewsOlderThan deletes view rows older than the retention
	// window, returning the number removed.
	CleanupViewsOlderThan(ctx context.Context, retentionDays int) (int64, error)

	// CleanupBehaviorEventsOlderThan deletes behavior event rows older than
	// the retention window, returning the number removed.
	CleanupBehaviorEventsOlderThan(ctx context.Context, retentionDays int) (int64, error)
}
