// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package publish

import "context"

// Filter narrows a published listing to one article.
type Filter struct {
	ArticleID string
	Limit     int
	Offset    int
}

// Repository is the persistence boundary for published artifacts.
type Repository interface {
	// Upsert merge-upserts on task_id: a retried task overwrites its prior
	// published row instead of creating a second one.
	Upsert(ctx context.Context, p *Published) error
	FindByTaskID(ctx context.Context, taskID string) (*Published, error)
	List(ctx context.Context, f Filter) ([]*Published, int64, error)
	Delete(ctx context.Context, commentID string) error
}
