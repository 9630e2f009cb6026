// Copyright (c) 2026 Inkwell Platform. All rights reserved.

// Package publish writes the artifact a moderation task produces once its
// AI run succeeds: one published comment/request/wish keyed on the task
// that produced it (spec §4.6).
package publish

import "time"

// Published is one moderation.published row. One row per task_id — a
// retried task overwrites its prior publication rather than duplicating it.
type Published struct {
	CommentID       string    `json:"comment_id"`
	TaskID          string    `json:"task_id"`
	ArticleID       string    `json:"article_id,omitempty"`
	AuthorName      string    `json:"author_name"`
	AvatarSeed      string    `json:"avatar_seed"`
	AuthorHash      string    `json:"-"`
	Body            string    `json:"body"`
	AIReplyMarkdown string    `json:"ai_reply_markdown"`
	PublishedAt     time.Time `json:"published_at"`
}
