package schema

// ArticleViewTable represents the 'analytics.article_view' table.
//
// The unique key is the triple (ArticleID, Fingerprint, DedupeBucket) —
// that alone gives sliding-window dedupe with no separate lookup table.
type ArticleViewTable struct {
	Table        string
	ArticleID    string
	Fingerprint  string
	DedupeBucket string
	OccurredAt   string
}

// ArticleView is the schema definition for analytics.article_view.
var ArticleView = ArticleViewTable{
	Table:        "analytics.article_view",
	ArticleID:    "article_id",
	Fingerprint:  "fingerprint",
	DedupeBucket: "dedupe_bucket",
	OccurredAt:   "occurred_at",
}

func (t ArticleViewTable) Columns() []string {
	return []string{t.ArticleID, t.Fingerprint, t.DedupeBucket, t.OccurredAt}
}

// ApiBehaviorEventTable represents the 'analytics.api_behavior_event' table.
type ApiBehaviorEventTable struct {
	Table         string
	ID            string
	OccurredAt    string
	Method        string
	Path          string
	Query         string
	StatusCode    string
	LatencyMs     string
	ClientIP      string
	IPRegion      string
	PagePath      string
	DeviceType    string
	BrowserFamily string
	OSFamily      string
}

// ApiBehaviorEvent is the schema definition for analytics.api_behavior_event.
var ApiBehaviorEvent = ApiBehaviorEventTable{
	Table:         "analytics.api_behavior_event",
	ID:            "id",
	OccurredAt:    "occurred_at",
	Method:        "method",
	Path:          "path",
	Query:         "query",
	StatusCode:    "status_code",
	LatencyMs:     "latency_ms",
	ClientIP:      "client_ip",
	IPRegion:      "ip_region",
	PagePath:      "page_path",
	DeviceType:    "device_type",
	BrowserFamily: "browser_family",
	OSFamily:      "os_family",
}

func (t ApiBehaviorEventTable) Columns() []string {
	return []string{
		t.ID, t.OccurredAt, t.Method, t.Path, t.Query, t.StatusCode, t.LatencyMs,
		t.ClientIP, t.IPRegion, t.PagePath, t.DeviceType, t.BrowserFamily, t.OSFamily,
	}
}
