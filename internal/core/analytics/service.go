// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package analytics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/inkwell-platform/contentcore/internal/platform/clientid"
	"github.com/inkwell-platform/contentcore/pkg/uuidv7"
)

// Service orchestrates view tracking, behavior capture, and retention
// cleanup for the analytics ring.
type Service struct {
	repo                  Repository
	dedupeWindowSeconds   int
	trendMaxDaysDefault   int
	viewRetentionDays     int
	behaviorRetentionDays int
	logger                *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, dedupeWindowSeconds, trendMaxDaysDefault, viewRetentionDays, behaviorRetentionDays int, logger *slog.Logger) *Service {
	return &Service{
		repo:                  repo,
		dedupeWindowSeconds:   dedupeWindowSeconds,
		trendMaxDaysDefault:   trendMaxDaysDefault,
		viewRetentionDays:     viewRetentionDays,
		behaviorRetentionDays: behaviorRetentionDays,
		logger:                logger,
	}
}

// dedupeBucket computes floor(now_ms / (window_seconds * 1000)).
func (s *Service) dedupeBucket(now time.Time) int64 {
	windowMs := int64(s.dedupeWindowSeconds) * 1000
	if windowMs <= 0 {
		windowMs = 60_000
	}
	return now.UnixMilli() / windowMs
}

// TrackView records one article view from the request's derived fingerprint
// and returns the counted flag, all-time total, and a trailing day trend.
func (s *Service) TrackView(ctx context.Context, articleID string, r *http.Request, trendDays int, now time.Time) (ViewResult, error) {
	fingerprint := clientid.FingerprintFromRequest(r)
	bucket := s.dedupeBucket(now)

	counted, total, err := s.repo.RecordView(ctx, articleID, fingerprint, bucket, now)
	if err != nil {
		return ViewResult{}, err
	}

	days := clampTrendDays(trendDays, s.trendMaxDaysDefault)
	trend, err := s.repo.DayTrend(ctx, articleID, days)
	if err != nil {
		return ViewResult{}, err
	}

	return ViewResult{Counted: counted, Total: total, TrendPoints: trend}, nil
}

// DayTrend returns a clamped day trend for an article.
func (s *Service) DayTrend(ctx context.Context, articleID string, days int) ([]DayPoint, error) {
	return s.repo.DayTrend(ctx, articleID, clampTrendDays(days, s.trendMaxDaysDefault))
}

// HourTrend returns the hour-of-day breakdown for one calendar day.
func (s *Service) HourTrend(ctx context.Context, articleID, day string) ([]HourPoint, error) {
	return s.repo.HourTrend(ctx, articleID, day)
}

// CaptureRequest records one API behavior event from an in-flight request
// plus its observed status code and latency. Called from middleware, so
// failures are logged, never propagated back to the request.
func (s *Service) CaptureRequest(ctx context.Context, r *http.Request, statusCode int, latency time.Duration, pagePath string) {
	ua := r.UserAgent()
	device, browser, os := classifyUserAgent(ua)

	ev := BehaviorEvent{
		ID:            uuidv7.New(),
		OccurredAt:    time.Now().UTC(),
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		StatusCode:    statusCode,
		LatencyMs:     int(latency.Milliseconds()),
		ClientIP:      clientid.RealIP(r),
		PagePath:      pagePath,
		DeviceType:    device,
		BrowserFamily: browser,
		OSFamily:      os,
	}

	if err := s.repo.RecordBehaviorEvent(ctx, ev); err != nil {
		s.logger.Warn("analytics_behavior_capture_failed", slog.Any("error", err))
	}
}

// Stats returns the behavior summary over the last days days.
func (s *Service) Stats(ctx context.Context, days int) (BehaviorSummary, error) {
	return s.repo.BehaviorSummaryOverLastDays(ctx, clampTrendDays(days, s.trendMaxDaysDefault))
}

// Cleanup deletes view and behavior rows older than their configured
// retention windows, returning counts removed.
func (s *Service) Cleanup(ctx context.Context) (viewsRemoved, eventsRemoved int64, err error) {
	viewsRemoved, err = s.repo.CleanupViewsOlderThan(ctx, s.viewRetentionDays)
	if err != nil {
		return 0, 0, err
	}
	eventsRemoved, err = s.repo.CleanupBehaviorEventsOlderThan(ctx, s.behaviorRetentionDays)
	if err != nil {
		return viewsRemoved, 0, err
	}
	return viewsRemoved, eventsRemoved, nil
}

// classifyUserAgent hand-rolls a coarse device/browser/os breakdown from
// the raw User-Agent string. No external UA database: this is deliberately
// a small substring cascade wide enough for dashboard buckets, not a
// precise parser.
func classifyUserAgent(ua string) (device, browser, os string) {
	lower := strings.ToLower(ua)

	switch {
	case strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet"):
		device = "tablet"
	case strings.Contains(lower, "mobi") || strings.Contains(lower, "iphone") || strings.Contains(lower, "android"):
		device = "mobile"
	case lower == "":
		device = "unknown"
	default:
		device = "desktop"
	}

	switch {
	case strings.Contains(lower, "edg/"):
		browser = "edge"
	case strings.Contains(lower, "opr/") || strings.Contains(lower, "opera"):
		browser = "opera"
	case strings.Contains(lower, "chrome/") || strings.Contains(lower, "crios/"):
		browser = "chrome"
	case strings.Contains(lower, "firefox/") || strings.Contains(lower, "fxios/"):
		browser = "firefox"
	case strings.Contains(lower, "safari/") && !strings.Contains(lower, "chrome"):
		browser = "safari"
	case strings.Contains(lower, "bot") || strings.Contains(lower, "spider") || strings.Contains(lower, "crawl"):
		browser = "bot"
	case lower == "":
		browser = "unknown"
	default:
		browser = "other"
	}

	switch {
	case strings.Contains(lower, "windows"):
		os = "windows"
	case strings.Contains(lower, "mac os x") || strings.Contains(lower, "macintosh"):
		os = "macos"
	case strings.Contains(lower, "android"):
		os = "android"
	case strings.Contains(lower, "iphone") || strings.Contains(lower, "ipad") || strings.Contains(lower, "ios"):
		os = "ios"
	case strings.Contains(lower, "linux"):
		os = "linux"
	case lower == "":
		os = "unknown"
	default:
		os = "other"
	}

	return device, browser, os
}

// parseDays parses a trend-days query parameter, defaulting to zero (which
// callers clamp to the configured default) on any parse failure.
func parseDays(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
