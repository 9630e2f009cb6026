// Copyright (c) 2026 Inkwell Platform. All rights reserved.

// Package analytics implements the view-tracking and API-behavior ring
// described in spec §4.7: per-article view dedupe with day/hour rollups,
// and per-request behavior capture with aggregate distributions.
package analytics

import "time"

// ViewResult is returned to the caller after recording one tracked view.
type ViewResult struct {
	Counted     bool        `json:"counted"`
	Total       int64       `json:"total"`
	TrendPoints []DayPoint  `json:"trend_points"`
}

// DayPoint is one day's view count, keyed by a local-TZ day string
// (YYYY-MM-DD).
type DayPoint struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// HourPoint is one hour-of-day's view count (0-23) for a requested day.
type HourPoint struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// BehaviorEvent is one analytics.api_behavior_event row: a single captured
// HTTP request.
type BehaviorEvent struct {
	ID            string    `json:"id"`
	OccurredAt    time.Time `json:"occurred_at"`
	Method        string    `json:"method"`
	Path          string    `json:"path"`
	Query         string    `json:"query,omitempty"`
	StatusCode    int       `json:"status_code"`
	LatencyMs     int       `json:"latency_ms"`
	ClientIP      string    `json:"-"`
	IPRegion      string    `json:"ip_region,omitempty"`
	PagePath      string    `json:"page_path,omitempty"`
	DeviceType    string    `json:"device_type,omitempty"`
	BrowserFamily string    `json:"browser_family,omitempty"`
	OSFamily      string    `json:"os_family,omitempty"`
}

// Distribution is a label -> count breakdown, used for device/browser/os/
// region distributions and top-K endpoint/page lists.
type Distribution struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// BehaviorSummary aggregates API behavior events over a window.
type BehaviorSummary struct {
	TotalEvents   int64          `json:"total_events"`
	UniqueIPs     int64          `json:"unique_ips"`
	UniquePages   int64          `json:"unique_pages"`
	AvgLatencyMs  float64        `json:"avg_latency_ms"`
	TopEndpoints  []Distribution `json:"top_endpoints"`
	TopPages      []Distribution `json:"top_pages"`
	DeviceTypes   []Distribution `json:"device_types"`
	BrowserFamily []Distribution `json:"browser_families"`
	OSFamily      []Distribution `json:"os_families"`
	Regions       []Distribution `json:"regions"`
}

// maxTrendDays is the hard cap on how far back a trend query may reach,
// independent of the configured default.
const maxTrendDays = 365

// clampTrendDays enforces the configured default and the hard cap.
func clampTrendDays(days, configuredDefault int) int {
	if days <= 0 {
		days = configuredDefault
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}
	return days
}
