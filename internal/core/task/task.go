// Copyright (c) 2026 Inkwell Platform. All rights reserved.

// Package task implements the one moderation state machine shared by reader
// comments, article-ingest requests, and song wishes (spec §4.4). The three
// entities differ only in which reference column they populate and in the
// free-text fields a submission carries; everything about their lifecycle —
// transitions, audit logging, author-identity derivation, threaded-reply
// parent chains — is implemented exactly once here, against one physical
// table discriminated by Kind.
package task

import "time"

// Kind discriminates the three moderation entities sharing this table.
type Kind string

const (
	KindComment Kind = "comment"
	KindRequest Kind = "request"
	KindWish    Kind = "wish"
)

// Status is a state in the task lifecycle state machine.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRunning  Status = "running"
	StatusDone     Status = "done"
	StatusFailed   Status = "failed"
	StatusRejected Status = "rejected"
)

// Task is one moderation.task row. ArticleID, ArticleURL, and SongName are
// mutually exclusive kind-specific reference columns: a comment carries
// ArticleID, a request carries ArticleURL, a wish carries SongName.
type Task struct {
	TaskID        string  `json:"task_id"`
	Kind          Kind    `json:"kind"`
	ArticleID     string  `json:"article_id,omitempty"`
	ArticleURL    string  `json:"article_url,omitempty"`
	SongName      string  `json:"song_name,omitempty"`
	ParentTaskID  string  `json:"parent_task_id,omitempty"`
	Status        Status  `json:"status"`
	BodyText      string  `json:"body_text"`
	ClientName    string  `json:"client_name,omitempty"`
	AdminNote     string  `json:"admin_note,omitempty"`
	FailureReason string  `json:"failure_reason,omitempty"`
	Fingerprint   string  `json:"-"`
	ClientIP      string  `json:"-"`
	IPRegion      string  `json:"ip_region,omitempty"`
	AttemptCount  int     `json:"attempt_count"`
	AutoApprove   bool    `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// Reference returns the kind-specific reference value (article id, article
// url, or song name), whichever applies to t.Kind.
func (t *Task) Reference() string {
	switch t.Kind {
	case KindRequest:
		return t.ArticleURL
	case KindWish:
		return t.SongName
	default:
		return t.ArticleID
	}
}

// Snapshot is a JSON-serializable before/after view of a task, recorded on
// every audit log entry.
type Snapshot struct {
	Status        Status `json:"status"`
	AdminNote     string `json:"admin_note,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
	AttemptCount  int    `json:"attempt_count"`
}

func (t *Task) snapshot() Snapshot {
	return Snapshot{
		Status:        t.Status,
		AdminNote:     t.AdminNote,
		FailureReason: t.FailureReason,
		AttemptCount:  t.AttemptCount,
	}
}

// AuditLog is one moderation.audit_log row.
type AuditLog struct {
	LogID      string    `json:"log_id"`
	TaskID     string    `json:"task_id"`
	Action     string    `json:"action"`
	Operator   string    `json:"operator"`
	BeforeJSON []byte    `json:"before,omitempty"`
	AfterJSON  []byte    `json:"after,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SystemOperator is the audit-log operator recorded for transitions the
// worker makes rather than an admin request.
const SystemOperator = "system"
