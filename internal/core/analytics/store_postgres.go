// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-platform/contentcore/internal/platform/database/schema"
	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
	"github.com/inkwell-platform/contentcore/pkg/uuidv7"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository persists the analytics ring directly over pgx. Day/
// hour rollups and distribution aggregates are plain SQL group-bys — there
// is no columnar index to plan around here, only scans over a bounded
// recent window.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// RecordView upserts the (article_id, fingerprint, dedupe_bucket) triple.
// `xmax = 0` after an INSERT ... ON CONFLICT is Postgres's own tell for
// "this statement inserted, not updated" — it drives the counted flag.
func (r *PostgresRepository) RecordView(ctx context.Context, articleID, fingerprint string, dedupeBucket int64, now time.Time) (bool, int64, error) {
	stmt := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s, %s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING (xmax = 0) AS inserted`,
		schema.ArticleView.Table, schema.ArticleView.ArticleID, schema.ArticleView.Fingerprint, schema.ArticleView.DedupeBucket, schema.ArticleView.OccurredAt,
		schema.ArticleView.ArticleID, schema.ArticleView.Fingerprint, schema.ArticleView.DedupeBucket,
		schema.ArticleView.OccurredAt, schema.ArticleView.OccurredAt,
	)

	var counted bool
	if err := r.db.QueryRow(ctx, stmt, articleID, fingerprint, dedupeBucket, now).Scan(&counted); err != nil {
		return false, 0, dberr.Wrap(err, "record article view")
	}

	var total int64
	countStmt := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, schema.ArticleView.Table, schema.ArticleView.ArticleID)
	if err := r.db.QueryRow(ctx, countStmt, articleID).Scan(&total); err != nil {
		return false, 0, dberr.Wrap(err, "count article views")
	}
	return counted, total, nil
}

// DayTrend groups views into day buckets over the trailing window.
func (r *PostgresRepository) DayTrend(ctx context.Context, articleID string, days int) ([]DayPoint, error) {
	stmt := fmt.Sprintf(`
		SELECT to_char(%s, 'YYYY-MM-DD') AS day, count(*)
		FROM %s
		WHERE %s = $1 AND %s >= now() - ($2 || ' days')::interval
		GROUP BY day
		ORDER BY day ASC`,
		schema.ArticleView.OccurredAt, schema.ArticleView.Table, schema.ArticleView.ArticleID, schema.ArticleView.OccurredAt,
	)
	rows, err := r.db.Query(ctx, stmt, articleID, days)
	if err != nil {
		return nil, dberr.Wrap(err, "day trend")
	}
	defer rows.Close()

	var out []DayPoint
	for rows.Next() {
		var p DayPoint
		if err := rows.Scan(&p.Day, &p.Count); err != nil {
			return nil, dberr.Wrap(err, "scan day trend")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// HourTrend groups one calendar day's views into hour-of-day buckets.
func (r *PostgresRepository) HourTrend(ctx context.Context, articleID, day string) ([]HourPoint, error) {
	stmt := fmt.Sprintf(`
		SELECT extract(hour FROM %s)::int AS hour, count(*)
		FROM %s
		WHERE %s = $1 AND to_char(%s, 'YYYY-MM-DD') = $2
		GROUP BY hour
		ORDER BY hour ASC`,
		schema.ArticleView.OccurredAt, schema.ArticleView.Table, schema.ArticleView.ArticleID, schema.ArticleView.OccurredAt,
	)
	rows, err := r.db.Query(ctx, stmt, articleID, day)
	if err != nil {
		return nil, dberr.Wrap(err, "hour trend")
	}
	defer rows.Close()

	var out []HourPoint
	for rows.Next() {
		var p HourPoint
		if err := rows.Scan(&p.Hour, &p.Count); err != nil {
			return nil, dberr.Wrap(err, "scan hour trend")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// RecordBehaviorEvent inserts one api_behavior_event row.
func (r *PostgresRepository) RecordBehaviorEvent(ctx context.Context, ev BehaviorEvent) error {
	if ev.ID == "" {
		ev.ID = uuidv7.New()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	stmt := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		schema.ApiBehaviorEvent.Table, strings.Join(schema.ApiBehaviorEvent.Columns(), ", "))
	_, err := r.db.Exec(ctx, stmt,
		ev.ID, ev.OccurredAt, ev.Method, ev.Path, ev.Query, ev.StatusCode, ev.LatencyMs,
		ev.ClientIP, nullableStr(ev.IPRegion), nullableStr(ev.PagePath), nullableStr(ev.DeviceType),
		nullableStr(ev.BrowserFamily), nullableStr(ev.OSFamily),
	)
	return dberr.Wrap(err, "record behavior event")
}

// BehaviorSummaryOverLastDays computes every aggregate over the trailing
// window: one totals query plus one grouped scan per top-K list and
// distribution.
func (r *PostgresRepository) BehaviorSummaryOverLastDays(ctx context.Context, days int) (BehaviorSummary, error) {
	var summary BehaviorSummary
	t := schema.ApiBehaviorEvent.Table
	occurredAt := schema.ApiBehaviorEvent.OccurredAt
	window := fmt.Sprintf(`%s >= now() - ($1 || ' days')::interval`, occurredAt)

	totalsStmt := fmt.Sprintf(`
		SELECT count(*), count(DISTINCT %s), count(DISTINCT %s), coalesce(avg(%s), 0)
		FROM %s WHERE %s`,
		schema.ApiBehaviorEvent.ClientIP, schema.ApiBehaviorEvent.PagePath, schema.ApiBehaviorEvent.LatencyMs, t, window)
	if err := r.db.QueryRow(ctx, totalsStmt, days).Scan(&summary.TotalEvents, &summary.UniqueIPs, &summary.UniquePages, &summary.AvgLatencyMs); err != nil {
		return summary, dberr.Wrap(err, "behavior summary totals")
	}

	var err error
	summary.TopEndpoints, err = r.topK(ctx, t, schema.ApiBehaviorEvent.Path, window, days)
	if err != nil {
		return summary, err
	}
	summary.TopPages, err = r.topK(ctx, t, schema.ApiBehaviorEvent.PagePath, window, days)
	if err != nil {
		return summary, err
	}
	summary.DeviceTypes, err = r.topK(ctx, t, schema.ApiBehaviorEvent.DeviceType, window, days)
	if err != nil {
		return summary, err
	}
	summary.BrowserFamily, err = r.topK(ctx, t, schema.ApiBehaviorEvent.BrowserFamily, window, days)
	if err != nil {
		return summary, err
	}
	summary.OSFamily, err = r.topK(ctx, t, schema.ApiBehaviorEvent.OSFamily, window, days)
	if err != nil {
		return summary, err
	}
	summary.Regions, err = r.topK(ctx, t, schema.ApiBehaviorEvent.IPRegion, window, days)
	if err != nil {
		return summary, err
	}
	return summary, nil
}

const topKLimit = 10

func (r *PostgresRepository) topK(ctx context.Context, table, column, window string, days int) ([]Distribution, error) {
	stmt := fmt.Sprintf(`
		SELECT coalesce(%s, 'unknown') AS label, count(*)
		FROM %s WHERE %s
		GROUP BY label
		ORDER BY count(*) DESC
		LIMIT %d`, column, table, window, topKLimit)

	rows, err := r.db.Query(ctx, stmt, days)
	if err != nil {
		return nil, dberr.Wrap(err, "top-k aggregate")
	}
	defer rows.Close()

	var out []Distribution
	for rows.Next() {
		var d Distribution
		if err := rows.Scan(&d.Label, &d.Count); err != nil {
			return nil, dberr.Wrap(err, "scan top-k aggregate")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CleanupViewsOlderThan deletes view rows older than the retention window.
func (r *PostgresRepository) CleanupViewsOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	stmt := fmt.Sprintf(`DELETE FROM %s WHERE %s < now() - ($1 || ' days')::interval`, schema.ArticleView.Table, schema.ArticleView.OccurredAt)
	tag, err := r.db.Exec(ctx, stmt, retentionDays)
	if err != nil {
		return 0, dberr.Wrap(err, "cleanup article views")
	}
	return tag.RowsAffected(), nil
}

// CleanupBehaviorEventsOlderThan deletes behavior event rows older than the
// retention window.
func (r *PostgresRepository) CleanupBehaviorEventsOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	stmt := fmt.Sprintf(`DELETE FROM %s WHERE %s < now() - ($1 || ' days')::interval`, schema.ApiBehaviorEvent.Table, schema.ApiBehaviorEvent.OccurredAt)
	tag, err := r.db.Exec(ctx, stmt, retentionDays)
	if err != nil {
		return 0, dberr.Wrap(err, "cleanup behavior events")
	}
	return tag.RowsAffected(), nil
}

func nullableStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
