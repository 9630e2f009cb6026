// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package airunner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-platform/contentcore/internal/platform/database/schema"
	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
)

// PostgresRepository persists ai_run/ai_run_chunk rows directly over pgx;
// chunk appends happen from concurrent pump goroutines and don't benefit
// from columnstore's batched-upsert shape.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateRun inserts a new ai_run row in the running state.
func (r *PostgresRepository) CreateRun(ctx context.Context, run *Run) error {
	run.Status = RunStatusRunning
	run.StartedAt = time.Now().UTC()
	run.UpdatedAt = run.StartedAt

	stmt := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.AiRun.Table, strings.Join(schema.AiRun.Columns(), ", "))
	_, err := r.db.Exec(ctx, stmt,
		run.RunID, run.TaskID, run.Status, run.RunnerProgram, run.ExitCode,
		nullableStr(run.FinalReplyMarkdown), nullableStr(run.FailureReason),
		run.StartedAt, run.UpdatedAt, run.CompletedAt,
	)
	return dberr.Wrap(err, "create ai run")
}

// FinalizeRun marks a run success or failed, storing the reply/diagnostics.
func (r *PostgresRepository) FinalizeRun(ctx context.Context, runID string, status RunStatus, exitCode *int, failureReason, finalReplyMarkdown string) error {
	now := time.Now().UTC()
	stmt := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $7`,
		schema.AiRun.Table, schema.AiRun.Status, schema.AiRun.ExitCode, schema.AiRun.FinalReplyMarkdown,
		schema.AiRun.FailureReason, schema.AiRun.UpdatedAt, schema.AiRun.CompletedAt, schema.AiRun.RunID)
	_, err := r.db.Exec(ctx, stmt, status, exitCode, nullableStr(finalReplyMarkdown), nullableStr(failureReason), now, now, runID)
	return dberr.Wrap(err, "finalize ai run")
}

// FindRun fetches one ai_run row.
func (r *PostgresRepository) FindRun(ctx context.Context, runID string) (*Run, error) {
	stmt := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, strings.Join(schema.AiRun.Columns(), ", "), schema.AiRun.Table, schema.AiRun.RunID)
	run, err := scanRun(r.db.QueryRow(ctx, stmt, runID))
	if err != nil {
		return nil, dberr.Wrap(err, "find ai run")
	}
	return run, nil
}

func scanRun(row pgx.Row) (*Run, error) {
	run := &Run{}
	var finalReply, failureReason *string
	err := row.Scan(&run.RunID, &run.TaskID, &run.Status, &run.RunnerProgram, &run.ExitCode,
		&finalReply, &failureReason, &run.StartedAt, &run.UpdatedAt, &run.CompletedAt)
	if err != nil {
		return nil, err
	}
	if finalReply != nil {
		run.FinalReplyMarkdown = *finalReply
	}
	if failureReason != nil {
		run.FailureReason = *failureReason
	}
	return run, nil
}

// AppendChunk persists one ordered output line.
func (r *PostgresRepository) AppendChunk(ctx context.Context, chunk Chunk) error {
	if chunk.CreatedAt.IsZero() {
		chunk.CreatedAt = time.Now().UTC()
	}
	stmt := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.AiRunChunk.Table, strings.Join(schema.AiRunChunk.Columns(), ", "))
	_, err := r.db.Exec(ctx, stmt, chunk.ChunkID, chunk.RunID, chunk.TaskID, chunk.Stream, chunk.BatchIndex, chunk.Content, chunk.CreatedAt)
	return dberr.Wrap(err, "append ai run chunk")
}

// ListChunks returns every persisted chunk for a run, in batch_index order.
func (r *PostgresRepository) ListChunks(ctx context.Context, runID string) ([]Chunk, error) {
	stmt := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		strings.Join(schema.AiRunChunk.Columns(), ", "), schema.AiRunChunk.Table, schema.AiRunChunk.RunID, schema.AiRunChunk.BatchIndex)
	rows, err := r.db.Query(ctx, stmt, runID)
	if err != nil {
		return nil, dberr.Wrap(err, "list ai run chunks")
	}
	defer rows.Close()

	var out []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.ChunkID, &c.RunID, &c.TaskID, &c.Stream, &c.BatchIndex, &c.Content, &c.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan ai run chunk")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullableStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
