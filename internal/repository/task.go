package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atinyakov/TaskTracker/internal/models"
)

// taskColumns is the column list every task query selects, in scan order.
const taskColumns = `id, user_id, title, description, status, assignee, priority, created_at, updated_at`

// sortColumns is the allow-list of ORDER BY targets. Sort keys are matched
// against this map and never placed into query text verbatim; anything
// unrecognized falls back to the default column.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"priority":   "priority",
	"status":     "status",
	"title":      "title",
}

const defaultSortColumn = "created_at"

// SQLiteTaskRepository implements task storage against SQLite.
//
// Every method takes an owner parameter: a non-nil owner restricts the
// operation to rows with that user_id inside the query itself, so scoping
// can never be bypassed by application-level checks. A nil owner means the
// caller is an admin and the operation is unscoped.
type SQLiteTaskRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLiteTaskRepository with the given
// database connection.
func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{DB: db}
}

// List returns tasks matching the filter, ordered by the requested sort
// column. All filter values are bound parameters.
func (r *SQLiteTaskRepository) List(ctx context.Context, owner *int64, filter models.TaskFilter, sort string) ([]models.Task, error) {
	conditions := []string{"1=1"}
	args := []any{}

	if owner != nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, *owner)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Assignee != "" {
		conditions = append(conditions, "assignee = ?")
		args = append(args, filter.Assignee)
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *filter.Priority)
	}

	orderBy, ok := sortColumns[sort]
	if !ok {
		orderBy = defaultSortColumn
	}

	query := fmt.Sprintf(
		`SELECT %s FROM tasks WHERE %s ORDER BY %s`,
		taskColumns, strings.Join(conditions, " AND "), orderBy,
	)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks rows: %w", err)
	}
	return tasks, nil
}

// GetByID fetches a single task by id within the owner scope.
// Returns models.ErrTaskNotFound if absent or owned by someone else.
func (r *SQLiteTaskRepository) GetByID(ctx context.Context, owner *int64, id int64) (*models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = ?`, taskColumns)
	args := []any{id}
	if owner != nil {
		query += ` AND user_id = ?`
		args = append(args, *owner)
	}

	var t models.Task
	err := scanTask(r.DB.QueryRowContext(ctx, query, args...), &t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// Create inserts a new task, setting both timestamps to the current time.
func (r *SQLiteTaskRepository) Create(ctx context.Context, task models.Task) (*models.Task, error) {
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO tasks (user_id, title, description, status, assignee, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, task.UserID, task.Title, task.Description, task.Status, task.Assignee, task.Priority, now, now)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create task id: %w", err)
	}

	task.ID = id
	task.CreatedAt = now
	task.UpdatedAt = now
	return &task, nil
}

// Update applies a partial update to the task with the given id. Only
// non-nil patch fields change; updated_at is refreshed unconditionally.
// Returns models.ErrTaskNotFound when no row matches the id and scope,
// never a silent no-op.
func (r *SQLiteTaskRepository) Update(ctx context.Context, owner *int64, id int64, patch models.TaskPatch) (*models.Task, error) {
	sets := []string{}
	args := []any{}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Assignee != nil {
		sets = append(sets, "assignee = ?")
		args = append(args, *patch.Assignee)
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *patch.Priority)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC())

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = ?`, strings.Join(sets, ", "))
	args = append(args, id)
	if owner != nil {
		query += ` AND user_id = ?`
		args = append(args, *owner)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update task rows: %w", err)
	}
	if affected == 0 {
		return nil, models.ErrTaskNotFound
	}

	return r.GetByID(ctx, owner, id)
}

// Delete removes the task with the given id. Returns models.ErrTaskNotFound
// when no row was removed.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows: %w", err)
	}
	if affected == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}

// DeleteMany removes all tasks whose ids appear in ids and returns the
// number of rows removed. The IN clause is built from placeholders only.
func (r *SQLiteTaskRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := r.DB.ExecContext(
		ctx,
		fmt.Sprintf(`DELETE FROM tasks WHERE id IN (%s)`, placeholders),
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("delete tasks: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete tasks rows: %w", err)
	}
	return affected, nil
}

// Stats returns per-status task counts within the owner scope.
func (r *SQLiteTaskRepository) Stats(ctx context.Context, owner *int64) (*models.TaskStats, error) {
	query := `SELECT status, COUNT(*) FROM tasks`
	args := []any{}
	if owner != nil {
		query += ` WHERE user_id = ?`
		args = append(args, *owner)
	}
	query += ` GROUP BY status`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}
	defer rows.Close()

	var stats models.TaskStats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		switch status {
		case models.StatusOpen:
			stats.Open = count
		case models.StatusInProgress:
			stats.InProgress = count
		case models.StatusClosed:
			stats.Closed = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task stats rows: %w", err)
	}
	return &stats, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanTask.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner, t *models.Task) error {
	return s.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description,
		&t.Status, &t.Assignee, &t.Priority,
		&t.CreatedAt, &t.UpdatedAt,
	)
}
