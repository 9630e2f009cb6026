// Copyright (c) 2026 Inkwell Platform. All rights reserved.

// Package airunner supervises the external AI subprocess that drafts a
// reply for an approved moderation task (spec §4.5). It writes a payload
// file, spawns the configured program, pumps stdout/stderr into an ordered
// chunk log, enforces a wall-clock timeout, and extracts the final reply
// under a file-first success policy.
package airunner

import (
	"strings"
	"time"
)

// RunStatus is the terminal state of one ai_run row.
type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// Run is one moderation.ai_run row: the record of a single subprocess
// invocation made on behalf of a task.
type Run struct {
	RunID              string    `json:"run_id"`
	TaskID             string    `json:"task_id"`
	Status             RunStatus `json:"status"`
	RunnerProgram      string    `json:"runner_program"`
	ExitCode           *int      `json:"exit_code,omitempty"`
	FinalReplyMarkdown string    `json:"final_reply_markdown,omitempty"`
	FailureReason      string    `json:"failure_reason,omitempty"`
	StartedAt          time.Time `json:"started_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

// Stream discriminates which pipe a chunk came from.
type Stream string

const (
	StreamStdout Stream = "stdout"
	StreamStderr Stream = "stderr"
)

// Chunk is one moderation.ai_run_chunk row: a single line of subprocess
// output, ordered by BatchIndex across both streams.
type Chunk struct {
	ChunkID    string    `json:"chunk_id"`
	RunID      string    `json:"run_id"`
	TaskID     string    `json:"task_id"`
	Stream     Stream    `json:"stream"`
	BatchIndex int       `json:"batch_index"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// maxChunksPerStream bounds how many lines per run are persisted per stream,
// matching the observed RUN_CHUNK_MAX_SEGMENTS cap: a runaway runner cannot
// flood the audit table, though stdout/stderr are still fully read and
// folded into the reply-extraction cascade.
const maxChunksPerStream = 4096

// SanitizeTaskIDForPath replaces any character outside [A-Za-z0-9._-] with
// an underscore, and falls back to "unknown-task" for an empty result, per
// the result-file path rule.
func SanitizeTaskIDForPath(taskID string) string {
	var b strings.Builder
	b.Grow(len(taskID))
	for _, r := range taskID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "unknown-task"
	}
	return b.String()
}
