// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-platform/contentcore/internal/core/task"
)

// Service writes the published artifact for a completed task.
type Service struct {
	repo       Repository
	authorSalt string
}

// NewService builds a Service. authorSalt is COMMENT_AUTHOR_SALT — the
// pepper mixed into the fingerprint before hashing into an author identity.
func NewService(repo Repository, authorSalt string) *Service {
	return &Service{repo: repo, authorSalt: authorSalt}
}

// Publish builds and merge-upserts the published row for t, keyed on
// t.TaskID: a retried task overwrites its previous publication rather than
// creating a second one (spec §4.6, Open Question: repeated publish
// overwrites published_at rather than preserving the first timestamp).
func (s *Service) Publish(ctx context.Context, t *task.Task, replyMarkdown string, now time.Time) (*Published, error) {
	identity := task.DeriveAuthorIdentity(t.Fingerprint, s.authorSalt)

	p := &Published{
		CommentID:       fmt.Sprintf("cmt-%s-%d", t.TaskID, now.UnixMilli()),
		TaskID:          t.TaskID,
		ArticleID:       t.ArticleID,
		AuthorName:      identity.Name,
		AvatarSeed:      identity.AvatarSeed,
		AuthorHash:      identity.Hash,
		Body:            t.BodyText,
		AIReplyMarkdown: replyMarkdown,
		PublishedAt:     now,
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get fetches the published artifact for one task, if any.
func (s *Service) Get(ctx context.Context, taskID string) (*Published, error) {
	return s.repo.FindByTaskID(ctx, taskID)
}

// List pages through an article's published comments.
func (s *Service) List(ctx context.Context, f Filter) ([]*Published, int64, error) {
	return s.repo.List(ctx, f)
}

// Delete removes a published comment by id (admin moderation action).
func (s *Service) Delete(ctx context.Context, commentID string) error {
	return s.repo.Delete(ctx, commentID)
}
