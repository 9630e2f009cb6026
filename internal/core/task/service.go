// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package task

import (
	"context"
	"log/slog"
	"strings"

	"github.com/inkwell-platform/contentcore/internal/platform/apperr"
	"github.com/inkwell-platform/contentcore/internal/platform/validate"
)

const (
	FieldBodyText = "body_text"

	// maxParentDepth bounds the threaded-reply parent walk so a corrupted
	// or adversarial parent chain can never recurse unbounded (spec's
	// "implement as a flat table... walk upward with a bounded depth
	// guard" redesign).
	maxParentDepth = 20
)

// SubmitInput is the public-facing request to create one task, generic
// across the three kinds.
type SubmitInput struct {
	Kind         Kind
	ArticleID    string
	ArticleURL   string
	SongName     string
	ParentTaskID string
	BodyText     string
	ClientName   string
	Fingerprint  string
	ClientIP     string
	IPRegion     string
	AutoApprove  bool
}

// Service orchestrates submission, moderation transitions, and the handoff
// to the AI runner supervisor's work queue.
type Service struct {
	repo   Repository
	queue  chan<- string
	logger *slog.Logger
}

// NewService constructs a Service. queue is the bounded, process-wide
// channel the AI runner supervisor drains (spec: "the task submission
// channel is the only process-wide queue"); it may be nil in contexts that
// only need moderation without a live supervisor (e.g. the CLI).
func NewService(repo Repository, queue chan<- string, logger *slog.Logger) *Service {
	return &Service{repo: repo, queue: queue, logger: logger}
}

// Get fetches a single task.
func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	return s.repo.FindByID(ctx, id)
}

// List pages through tasks.
func (s *Service) List(ctx context.Context, f ListFilter) ([]*Task, int64, error) {
	return s.repo.List(ctx, f)
}

// Audit returns the audit trail for one task, oldest first.
func (s *Service) Audit(ctx context.Context, id string) ([]AuditLog, error) {
	return s.repo.ListAudit(ctx, id)
}

// Submit sanitizes and persists a new task, walking any parent chain for
// depth/cycle safety, and offers it to the supervisor queue when it lands
// in a runnable status.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Task, error) {
	in.BodyText = sanitize(in.BodyText)
	in.ClientName = sanitize(in.ClientName)
	in.ArticleURL = sanitize(in.ArticleURL)
	in.SongName = sanitize(in.SongName)

	v := &validate.Validator{}
	v.Required(FieldBodyText, in.BodyText)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if in.ParentTaskID != "" {
		if err := s.checkParentChain(ctx, in.ParentTaskID); err != nil {
			return nil, err
		}
	}

	t := &Task{
		Kind:         in.Kind,
		ArticleID:    in.ArticleID,
		ArticleURL:   in.ArticleURL,
		SongName:     in.SongName,
		ParentTaskID: in.ParentTaskID,
		BodyText:     in.BodyText,
		ClientName:   in.ClientName,
		Fingerprint:  in.Fingerprint,
		ClientIP:     in.ClientIP,
		IPRegion:     in.IPRegion,
		AttemptCount: 0,
		AutoApprove:  in.AutoApprove,
		Status:       StatusPending,
	}
	if in.AutoApprove {
		t.Status = StatusApproved
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	if err := s.repo.AppendAudit(ctx, AuditLog{TaskID: t.TaskID, Action: "submit", Operator: SystemOperator}); err != nil {
		s.logger.Warn("task_submit_audit_failed", slog.String("task_id", t.TaskID), slog.Any("error", err))
	}

	s.logger.Info("task_submitted", slog.String("task_id", t.TaskID), slog.String("kind", string(t.Kind)), slog.Bool("auto_approve", in.AutoApprove))

	if t.Status == StatusApproved {
		s.offer(t.TaskID)
	}
	return t, nil
}

// checkParentChain verifies the parent exists and that walking its own
// chain upward does not exceed maxParentDepth — the guard against cycles
// and unbounded threads described in the redesign notes.
func (s *Service) checkParentChain(ctx context.Context, parentID string) error {
	cursor := parentID
	for depth := 0; depth < maxParentDepth; depth++ {
		parent, err := s.repo.FindByID(ctx, cursor)
		if err != nil {
			return err
		}
		if parent.ParentTaskID == "" {
			return nil
		}
		cursor = parent.ParentTaskID
	}
	return apperr.ValidationError("reply thread exceeds maximum depth",
		apperr.FieldError{Field: "parent_task_id", Message: "chain too deep"})
}

// Approve moves a task from pending to approved, making it eligible for
// the AI runner.
func (s *Service) Approve(ctx context.Context, id, operator string) (*Task, error) {
	t, err := s.repo.Transition(ctx, id, StatusApproved, operator, nil)
	if err != nil {
		return nil, err
	}
	s.offer(t.TaskID)
	return t, nil
}

// Reject moves a task to rejected with an admin note.
func (s *Service) Reject(ctx context.Context, id, operator, note string) (*Task, error) {
	return s.repo.Transition(ctx, id, StatusRejected, operator, func(t *Task) {
		t.AdminNote = sanitize(note)
	})
}

// MarkRunning transitions to running; called by the supervisor when a task
// is dequeued and a subprocess is about to spawn.
func (s *Service) MarkRunning(ctx context.Context, id string) (*Task, error) {
	return s.repo.Transition(ctx, id, StatusRunning, SystemOperator, nil)
}

// MarkDone transitions to done; called by the publish path after the
// published row write succeeds.
func (s *Service) MarkDone(ctx context.Context, id string) (*Task, error) {
	return s.repo.Transition(ctx, id, StatusDone, SystemOperator, nil)
}

// MarkFailed transitions to failed, recording the failure reason. Failed
// tasks remain retryable (failed -> approved/running) per the transition
// table.
func (s *Service) MarkFailed(ctx context.Context, id, reason string) (*Task, error) {
	return s.repo.Transition(ctx, id, StatusFailed, SystemOperator, func(t *Task) {
		t.FailureReason = sanitize(reason)
	})
}

// Retry re-queues a failed task by moving it back to approved.
func (s *Service) Retry(ctx context.Context, id, operator string) (*Task, error) {
	t, err := s.repo.Transition(ctx, id, StatusApproved, operator, nil)
	if err != nil {
		return nil, err
	}
	s.offer(t.TaskID)
	return t, nil
}

// Patch applies an admin body/note edit without touching status.
func (s *Service) Patch(ctx context.Context, id, bodyText, adminNote string) (*Task, error) {
	bodyText = sanitize(bodyText)
	if bodyText == "" {
		return nil, apperr.ValidationError("body text must not be empty",
			apperr.FieldError{Field: FieldBodyText, Message: "required"})
	}
	return s.repo.Patch(ctx, id, func(t *Task) {
		t.BodyText = bodyText
		t.AdminNote = sanitize(adminNote)
	})
}

// Delete removes a task and cascades to its children.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// CleanupTerminal purges terminal-status tasks older than olderThanDays.
func (s *Service) CleanupTerminal(ctx context.Context, olderThanDays int) (int64, error) {
	var removed int64
	for _, status := range []Status{StatusDone, StatusRejected} {
		n, err := s.repo.CleanupByAge(ctx, status, olderThanDays)
		if err != nil {
			return removed, err
		}
		removed += n
	}
	return removed, nil
}

// offer hands a task id to the bounded supervisor queue without blocking.
// A full queue is logged and the id dropped — the task stays approved and
// nothing re-offers it automatically; the supervisor only drains the queue.
func (s *Service) offer(taskID string) {
	if s.queue == nil {
		return
	}
	select {
	case s.queue <- taskID:
	default:
		s.logger.Warn("task_queue_full", slog.String("task_id", taskID))
	}
}

func sanitize(s string) string {
	return strings.TrimSpace(s)
}
