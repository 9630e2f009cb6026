// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package airunner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/inkwell-platform/contentcore/internal/core/publish"
	"github.com/inkwell-platform/contentcore/internal/core/task"
	"github.com/inkwell-platform/contentcore/pkg/uuidv7"
)

// SupervisorConfig carries the runner invocation settings the supervisor
// needs per task.
type SupervisorConfig struct {
	ProcessConfig
	ContentAPIBase         string
	CleanupResultOnSuccess bool
	StreamFallbackEnabled  bool
}

// Supervisor drains the task submission queue and runs the AI runner for
// each dequeued task id, one at a time per goroutine calling Run — multiple
// Run calls over the same queue give simple horizontal fan-out.
type Supervisor struct {
	cfg     SupervisorConfig
	tasks   *task.Service
	taskRepo task.Repository
	runs    Repository
	publish *publish.Service
	logger  *slog.Logger
}

// NewSupervisor builds a Supervisor.
func NewSupervisor(cfg SupervisorConfig, tasks *task.Service, taskRepo task.Repository, runs Repository, publisher *publish.Service, logger *slog.Logger) *Supervisor {
	return &Supervisor{cfg: cfg, tasks: tasks, taskRepo: taskRepo, runs: runs, publish: publisher, logger: logger}
}

// Run drains queue until it is closed or ctx is cancelled, processing one
// task id at a time. Each task is wrapped in a panic-recovery boundary so a
// single bad task can never take down the whole worker loop (grounded on
// the observed worker's "log and continue" top-level flow).
func (s *Supervisor) Run(ctx context.Context, queue <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case taskID, ok := <-queue:
			if !ok {
				return
			}
			s.processOneTaskSafely(ctx, taskID)
		}
	}
}

func (s *Supervisor) processOneTaskSafely(ctx context.Context, taskID string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("airunner_task_panic", slog.String("task_id", taskID), slog.Any("recover", r))
		}
	}()
	if err := s.processOneTask(ctx, taskID); err != nil {
		s.logger.Error("airunner_task_failed", slog.String("task_id", taskID), slog.Any("error", err))
	}
}

func (s *Supervisor) processOneTask(ctx context.Context, taskID string) error {
	t, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		s.logger.Warn("airunner_task_missing", slog.String("task_id", taskID))
		return nil
	}

	// Reentrancy guard: only {approved, running} tasks are eligible. A task
	// that is already done/rejected/failed was either finished by another
	// worker or needs an explicit retry, not a silent re-run.
	switch t.Status {
	case task.StatusApproved:
		t, err = s.tasks.MarkRunning(ctx, taskID)
		if err != nil {
			return fmt.Errorf("airunner: transition to running: %w", err)
		}
	case task.StatusRunning:
		// already running, e.g. resumed after a supervisor restart with no
		// state change; proceed with a fresh run.
	default:
		s.logger.Warn("airunner_task_not_runnable", slog.String("task_id", taskID), slog.String("status", string(t.Status)))
		return nil
	}

	runID := "airun-" + t.TaskID + "-" + uuidv7.New()
	run := &Run{RunID: runID, TaskID: t.TaskID, RunnerProgram: s.cfg.RunnerProgram}
	if err := s.runs.CreateRun(ctx, run); err != nil {
		reason := fmt.Sprintf("failed to create ai run record: %v", err)
		s.failTask(ctx, t.TaskID, reason)
		return nil
	}

	parent := s.loadParentContext(ctx, t)
	payload := Payload{
		TaskID:         t.TaskID,
		Kind:           string(t.Kind),
		ArticleID:      t.ArticleID,
		ArticleURL:     t.ArticleURL,
		SongName:       t.SongName,
		BodyText:       t.BodyText,
		ClientName:     t.ClientName,
		ParentTaskID:   t.ParentTaskID,
		ContentAPIBase: s.cfg.ContentAPIBase,
	}
	if parent != nil {
		payload.ParentBodyText = parent.BodyText
	}

	result, err := RunSubprocess(ctx, s.cfg.ProcessConfig, runID, payload, func(chunk Chunk) {
		if err := s.runs.AppendChunk(ctx, chunk); err != nil {
			s.logger.Warn("airunner_chunk_append_failed", slog.String("run_id", runID), slog.Any("error", err))
		}
	})
	if err != nil {
		reason := err.Error()
		_ = s.runs.FinalizeRun(ctx, runID, RunStatusFailed, nil, reason, "")
		s.failTask(ctx, t.TaskID, reason)
		return nil
	}
	if result.TimedOut {
		reason := fmt.Sprintf("comment ai runner timed out after %s", s.cfg.Timeout)
		_ = s.runs.FinalizeRun(ctx, runID, RunStatusFailed, nil, reason, "")
		s.failTask(ctx, t.TaskID, reason)
		return nil
	}

	replyMarkdown, readErr := readResultMarkdown(result.ResultFilePath)
	if readErr != nil {
		replyMarkdown, readErr = s.streamFallback(result, readErr)
	}
	if readErr != nil {
		stdoutDiag := Inspect(result.Stdout).Summary()
		stderrDiag := Inspect(result.Stderr).Summary()
		reason := fmt.Sprintf(
			"comment ai result file invalid: %v. result_file=%s exit_code=%s stdout_diagnostics=%s stderr_diagnostics=%s stdout=%s stderr=%s",
			readErr, result.ResultFilePath, exitCodeString(result.ExitCode), stdoutDiag, stderrDiag,
			compactForReason(result.Stdout), compactForReason(result.Stderr),
		)
		_ = s.runs.FinalizeRun(ctx, runID, RunStatusFailed, result.ExitCode, reason, "")
		s.failTask(ctx, t.TaskID, reason)
		return nil
	}

	if !result.Success {
		s.logger.Warn("airunner_nonzero_exit_but_valid_result",
			slog.String("task_id", t.TaskID), slog.Any("exit_code", result.ExitCode))
	}

	now := time.Now().UTC()
	if _, err := s.publish.Publish(ctx, t, replyMarkdown, now); err != nil {
		reason := fmt.Sprintf("failed to write published comment: %v", err)
		_ = s.runs.FinalizeRun(ctx, runID, RunStatusFailed, result.ExitCode, reason, replyMarkdown)
		s.failTask(ctx, t.TaskID, reason)
		return nil
	}

	if _, err := s.tasks.MarkDone(ctx, t.TaskID); err != nil {
		reason := fmt.Sprintf("failed to mark task done: %v", err)
		_ = s.runs.FinalizeRun(ctx, runID, RunStatusFailed, result.ExitCode, reason, replyMarkdown)
		s.failTask(ctx, t.TaskID, reason)
		return nil
	}

	_ = s.runs.FinalizeRun(ctx, runID, RunStatusSuccess, result.ExitCode, "", replyMarkdown)

	if s.cfg.CleanupResultOnSuccess {
		if err := os.Remove(result.ResultFilePath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("airunner_result_cleanup_failed", slog.String("task_id", t.TaskID), slog.Any("error", err))
		}
	}
	return nil
}

// loadParentContext best-effort fetches the parent task for threaded
// replies; a missing or unreadable parent never blocks the run.
func (s *Supervisor) loadParentContext(ctx context.Context, t *task.Task) *task.Task {
	if t.ParentTaskID == "" {
		return nil
	}
	parent, err := s.taskRepo.FindByID(ctx, t.ParentTaskID)
	if err != nil {
		return nil
	}
	return parent
}

func (s *Supervisor) streamFallback(result *ProcessResult, resultFileErr error) (string, error) {
	if !s.cfg.StreamFallbackEnabled {
		return "", resultFileErr
	}
	if markdown, ok := ExtractFinalReplyMarkdown(result.Stdout); ok {
		return markdown, nil
	}
	if markdown, ok := ExtractFinalReplyMarkdown(result.Stderr); ok {
		return markdown, nil
	}
	return "", resultFileErr
}

func (s *Supervisor) failTask(ctx context.Context, taskID, reason string) {
	if _, err := s.tasks.MarkFailed(ctx, taskID, reason); err != nil {
		s.logger.Error("airunner_mark_failed_failed", slog.String("task_id", taskID), slog.Any("error", err))
	}
}

// readResultMarkdown implements the file-first success policy: a non-empty
// trimmed result file is the only path to success, independent of exit
// code.
func readResultMarkdown(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read result file: %w", err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "", fmt.Errorf("result file is empty: %s", path)
	}
	return trimmed, nil
}

func exitCodeString(code *int) string {
	if code == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *code)
}

func compactForReason(raw string) string {
	trimmed := strings.TrimSpace(raw)
	runes := []rune(trimmed)
	if len(runes) <= 800 {
		return trimmed
	}
	return string(runes[:800]) + "...(truncated)"
}
