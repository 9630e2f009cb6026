// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package task

import "context"

// ListFilter narrows a task listing by kind/status.
type ListFilter struct {
	Kind   Kind
	Status Status
	Limit  int
	Offset int
}

// Repository is the persistence boundary the service depends on.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, f ListFilter) ([]*Task, int64, error)

	// Transition performs the linearizable read-modify-write described in
	// spec §5: it locks the row, validates and applies the state-machine
	// move, persists the result, and appends one audit row — all inside one
	// transaction, so a concurrent conflicting transition either wins
	// outright or observes the post-transition state and fails.
	Transition(ctx context.Context, id string, next Status, operator string, mutate func(*Task)) (*Task, error)

	// Patch applies partial field updates under the admin-only contract,
	// without touching status.
	Patch(ctx context.Context, id string, mutate func(*Task)) (*Task, error)

	// Delete cascades to published, audit, ai_run, and ai_run_chunk rows.
	Delete(ctx context.Context, id string) error

	AppendAudit(ctx context.Context, entry AuditLog) error
	ListAudit(ctx context.Context, taskID string) ([]AuditLog, error)

	// CleanupByAge deletes tasks in a terminal status older than the cutoff,
	// cascading like Delete. Returns the number removed.
	CleanupByAge(ctx context.Context, status Status, olderThanDays int) (int64, error)
}
