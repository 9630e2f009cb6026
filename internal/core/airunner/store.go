// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package airunner

import "context"

// Repository persists AI run records and their chunk logs.
type Repository interface {
	CreateRun(ctx context.Context, run *Run) error
	FinalizeRun(ctx context.Context, runID string, status RunStatus, exitCode *int, failureReason, finalReplyMarkdown string) error
	FindRun(ctx context.Context, runID string) (*Run, error)

	AppendChunk(ctx context.Context, chunk Chunk) error
	ListChunks(ctx context.Context, runID string) ([]Chunk, error)
}
