// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package task

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-platform/contentcore/internal/platform/database/schema"
	"github.com/inkwell-platform/contentcore/internal/platform/dberr"
	"github.com/inkwell-platform/contentcore/pkg/uuidv7"
)

// PostgresRepository persists tasks and their audit trail directly over
// pgx, bypassing [columnstore.Table]: transitions need row-level locking
// inside a transaction, which the generic upsert helper does not model.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var taskColumns = schema.Task.Columns()

func scanTask(row pgx.Row) (*Task, error) {
	t := &Task{}
	var articleID, articleURL, songName, parentID, adminNote, failureReason, ipRegion *string
	err := row.Scan(
		&t.TaskID, &t.Kind, &articleID, &articleURL, &songName, &parentID,
		&t.Status, &t.BodyText, &t.ClientName, &adminNote, &failureReason,
		&t.Fingerprint, &t.ClientIP, &ipRegion, &t.AttemptCount, &t.AutoApprove,
		&t.CreatedAt, &t.UpdatedAt, &t.ApprovedAt, &t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	t.ArticleID = derefStr(articleID)
	t.ArticleURL = derefStr(articleURL)
	t.SongName = derefStr(songName)
	t.ParentTaskID = derefStr(parentID)
	t.AdminNote = derefStr(adminNote)
	t.FailureReason = derefStr(failureReason)
	t.IPRegion = derefStr(ipRegion)
	return t, nil
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create inserts a new task, assigning an id when absent.
func (r *PostgresRepository) Create(ctx context.Context, t *Task) error {
	if t.TaskID == "" {
		t.TaskID = uuidv7.New()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = StatusPending
	}

	stmt := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.Task.Table, strings.Join(taskColumns, ", "), placeholders(len(taskColumns)))

	_, err := r.db.Exec(ctx, stmt,
		t.TaskID, t.Kind, nullable(t.ArticleID), nullable(t.ArticleURL), nullable(t.SongName), nullable(t.ParentTaskID),
		t.Status, t.BodyText, t.ClientName, nullable(t.AdminNote), nullable(t.FailureReason),
		t.Fingerprint, t.ClientIP, nullable(t.IPRegion), t.AttemptCount, t.AutoApprove,
		t.CreatedAt, t.UpdatedAt, t.ApprovedAt, t.CompletedAt,
	)
	return dberr.Wrap(err, "create task")
}

// FindByID fetches one task, or [dberr.ErrNotFound].
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Task, error) {
	stmt := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, strings.Join(taskColumns, ", "), schema.Task.Table, schema.Task.TaskID)
	t, err := scanTask(r.db.QueryRow(ctx, stmt, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find task")
	}
	return t, nil
}

// List pages through tasks filtered by kind/status.
func (r *PostgresRepository) List(ctx context.Context, f ListFilter) ([]*Task, int64, error) {
	var clauses []string
	var args []any
	if f.Kind != "" {
		args = append(args, f.Kind)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", schema.Task.Kind, len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", schema.Task.Status, len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	countStmt := fmt.Sprintf(`SELECT count(*) FROM %s %s`, schema.Task.Table, where)
	var total int64
	if err := r.db.QueryRow(ctx, countStmt, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count tasks")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, f.Offset)
	stmt := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s DESC LIMIT $%d OFFSET $%d`,
		strings.Join(taskColumns, ", "), schema.Task.Table, where, schema.Task.CreatedAt, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list tasks")
	}
	defer rows.Close()

	out := make([]*Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan task")
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

// Transition locks the task row, validates and applies the move, writes the
// row, and appends an audit entry — all inside one transaction.
func (r *PostgresRepository) Transition(ctx context.Context, id string, next Status, operator string, mutate func(*Task)) (*Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "transition task")
	}
	defer tx.Rollback(ctx)

	lockStmt := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, strings.Join(taskColumns, ", "), schema.Task.Table, schema.Task.TaskID)
	t, err := scanTask(tx.QueryRow(ctx, lockStmt, id))
	if err != nil {
		return nil, dberr.Wrap(err, "transition task")
	}

	before := t.snapshot()
	if mutate != nil {
		mutate(t)
	}
	if err := applyTransition(t, next, func() time.Time { return time.Now().UTC() }); err != nil {
		return nil, err
	}

	updateStmt := fmt.Sprintf(`UPDATE %s SET
		%s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $8`,
		schema.Task.Status, schema.Task.AdminNote, schema.Task.FailureReason, schema.Task.AttemptCount,
		schema.Task.UpdatedAt, schema.Task.ApprovedAt, schema.Task.CompletedAt, schema.Task.TaskID)

	if _, err := tx.Exec(ctx, updateStmt,
		t.Status, nullable(t.AdminNote), nullable(t.FailureReason), t.AttemptCount,
		t.UpdatedAt, t.ApprovedAt, t.CompletedAt, t.TaskID,
	); err != nil {
		return nil, dberr.Wrap(err, "transition task")
	}

	if err := insertAudit(ctx, tx, AuditLog{
		TaskID:   t.TaskID,
		Action:   "transition:" + string(next),
		Operator: operator,
	}, before, t.snapshot()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "transition task")
	}
	return t, nil
}

// Patch applies partial field updates under the admin contract, without
// touching status.
func (r *PostgresRepository) Patch(ctx context.Context, id string, mutate func(*Task)) (*Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "patch task")
	}
	defer tx.Rollback(ctx)

	lockStmt := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, strings.Join(taskColumns, ", "), schema.Task.Table, schema.Task.TaskID)
	t, err := scanTask(tx.QueryRow(ctx, lockStmt, id))
	if err != nil {
		return nil, dberr.Wrap(err, "patch task")
	}

	before := t.snapshot()
	mutate(t)
	t.UpdatedAt = time.Now().UTC()

	updateStmt := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3 WHERE %s = $4`,
		schema.Task.Table, schema.Task.BodyText, schema.Task.AdminNote, schema.Task.UpdatedAt, schema.Task.TaskID)
	if _, err := tx.Exec(ctx, updateStmt, t.BodyText, nullable(t.AdminNote), t.UpdatedAt, t.TaskID); err != nil {
		return nil, dberr.Wrap(err, "patch task")
	}

	if err := insertAudit(ctx, tx, AuditLog{TaskID: t.TaskID, Action: "patch", Operator: SystemOperator}, before, t.snapshot()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "patch task")
	}
	return t, nil
}

// Delete removes the task's rows from every child table and then the task
// itself, in one transaction; the first failing statement aborts the delete.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "delete task")
	}
	defer tx.Rollback(ctx)

	cascades := []struct {
		table string
		col   string
	}{
		{schema.AuditLog.Table, schema.AuditLog.TaskID},
		{schema.AiRunChunk.Table, schema.AiRunChunk.TaskID},
		{schema.AiRun.Table, schema.AiRun.TaskID},
		{schema.Published.Table, schema.Published.TaskID},
	}
	for _, c := range cascades {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, c.table, c.col), id); err != nil {
			return dberr.Wrap(err, "delete task cascade "+c.table)
		}
	}

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Task.Table, schema.Task.TaskID), id); err != nil {
		return dberr.Wrap(err, "delete task")
	}
	return dberr.Wrap(tx.Commit(ctx), "delete task")
}

// AppendAudit inserts one standalone audit row (used for submission, which
// has no prior state to snapshot).
func (r *PostgresRepository) AppendAudit(ctx context.Context, entry AuditLog) error {
	if entry.LogID == "" {
		entry.LogID = uuidv7.New()
	}
	stmt := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.AuditLog.Table, strings.Join(schema.AuditLog.Columns(), ", "))
	_, err := r.db.Exec(ctx, stmt, entry.LogID, entry.TaskID, entry.Action, entry.Operator, entry.BeforeJSON, entry.AfterJSON, time.Now().UTC())
	return dberr.Wrap(err, "append audit")
}

// ListAudit returns every audit row for a task, oldest first.
func (r *PostgresRepository) ListAudit(ctx context.Context, taskID string) ([]AuditLog, error) {
	stmt := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		strings.Join(schema.AuditLog.Columns(), ", "), schema.AuditLog.Table, schema.AuditLog.TaskID, schema.AuditLog.CreatedAt)
	rows, err := r.db.Query(ctx, stmt, taskID)
	if err != nil {
		return nil, dberr.Wrap(err, "list audit")
	}
	defer rows.Close()

	out := make([]AuditLog, 0)
	for rows.Next() {
		var a AuditLog
		if err := rows.Scan(&a.LogID, &a.TaskID, &a.Action, &a.Operator, &a.BeforeJSON, &a.AfterJSON, &a.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan audit")
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CleanupByAge deletes every task in status older than olderThanDays,
// cascading via [Delete].
func (r *PostgresRepository) CleanupByAge(ctx context.Context, status Status, olderThanDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	stmt := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s < $2`,
		schema.Task.TaskID, schema.Task.Table, schema.Task.Status, schema.Task.UpdatedAt)
	rows, err := r.db.Query(ctx, stmt, status, cutoff)
	if err != nil {
		return 0, dberr.Wrap(err, "cleanup tasks")
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, dberr.Wrap(err, "cleanup tasks")
		}
		ids = append(ids, id)
	}
	rows.Close()

	for _, id := range ids {
		if err := r.Delete(ctx, id); err != nil {
			return 0, err
		}
	}
	return int64(len(ids)), nil
}

func insertAudit(ctx context.Context, tx pgx.Tx, entry AuditLog, before, after Snapshot) error {
	if entry.LogID == "" {
		entry.LogID = uuidv7.New()
	}
	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)

	stmt := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.AuditLog.Table, strings.Join(schema.AuditLog.Columns(), ", "))
	_, err := tx.Exec(ctx, stmt, entry.LogID, entry.TaskID, entry.Action, entry.Operator, beforeJSON, afterJSON, time.Now().UTC())
	return dberr.Wrap(err, "append audit")
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}
