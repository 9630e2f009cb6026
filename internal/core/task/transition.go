// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package task

import (
	"time"

	"github.com/inkwell-platform/contentcore/internal/platform/apperr"
)

// allowed is the transition table from spec §4.4. Any pair not present here
// is rejected as [apperr.InvalidTransition] — there are no exceptions.
var allowed = map[Status]map[Status]bool{
	StatusPending: {
		StatusApproved: true,
		StatusRunning:  true,
		StatusRejected: true,
	},
	StatusApproved: {
		StatusRunning:  true,
		StatusRejected: true,
	},
	StatusRunning: {
		StatusDone:   true,
		StatusFailed: true,
	},
	StatusFailed: {
		StatusApproved: true,
		StatusRunning:  true,
		StatusRejected: true,
		StatusDone:     true,
	},
}

// CanTransition reports whether moving from current to next has semantic
// effect per the state machine.
func CanTransition(current, next Status) bool {
	return allowed[current][next]
}

// applyTransition mutates t in place for the move to next, per the §4.4
// stamping rules, or returns [apperr.InvalidTransition] without mutating t.
func applyTransition(t *Task, next Status, now Wall) error {
	if !CanTransition(t.Status, next) {
		return apperr.InvalidTransition(string(t.Status), string(next))
	}

	switch next {
	case StatusApproved:
		if t.ApprovedAt == nil {
			ts := now()
			t.ApprovedAt = &ts
		}
	case StatusRunning:
		t.FailureReason = ""
		t.CompletedAt = nil
		if t.ApprovedAt == nil {
			ts := now()
			t.ApprovedAt = &ts
		}
		t.AttemptCount++
	case StatusDone, StatusRejected, StatusFailed:
		ts := now()
		t.CompletedAt = &ts
	}

	t.Status = next
	t.UpdatedAt = now()
	return nil
}

// Wall returns the current time; a function value so transition tests can
// inject a fixed clock without a package-level mutable global.
type Wall func() time.Time
