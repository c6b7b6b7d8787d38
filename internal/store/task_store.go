package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tmuir/focusdo/internal/model"
)

// CreateTask inserts a new task. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) (model.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return model.Task{}, fmt.Errorf("task title must not be empty")
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	// Keep the completion flag and timestamp paired.
	if task.Completed && task.CompletedAt == nil {
		task.CompletedAt = &now
	}
	if !task.Completed {
		task.CompletedAt = nil
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, category_id, title, description,
			due_date, importance_factor, duration, repeat_interval,
			completed, completed_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.CategoryID, task.Title, task.Description,
		task.DueDate, task.ImportanceFactor, task.Duration, task.RepeatInterval,
		boolToInt(task.Completed), task.CompletedAt, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("creating task: %w", err)
	}
	return task, nil
}

// UpdateTask updates an existing task by ID.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}

	now := time.Now().UTC()
	task.UpdatedAt = now

	if task.Completed && task.CompletedAt == nil {
		task.CompletedAt = &now
	}
	if !task.Completed {
		task.CompletedAt = nil
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			category_id = ?, title = ?, description = ?,
			due_date = ?, importance_factor = ?, duration = ?, repeat_interval = ?,
			completed = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`,
		task.CategoryID, task.Title, task.Description,
		task.DueDate, task.ImportanceFactor, task.Duration, task.RepeatInterval,
		boolToInt(task.Completed), task.CompletedAt, task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", task.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", task.ID, ErrNotFound)
	}
	return nil
}

// DeleteTask removes a task by ID. Cascades to its subtasks.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetTaskByID retrieves a single task by ID.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM tasks WHERE id = ?", id)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	return &task, nil
}

// GetTasks retrieves tasks matching the query, ordered by creation time.
func (s *SQLiteStore) GetTasks(ctx context.Context, q TaskQuery) ([]model.Task, error) {
	var conditions []string
	var args []interface{}

	if !q.IncludeCompleted {
		conditions = append(conditions, "completed = 0")
	}
	if q.CategoryID != nil {
		conditions = append(conditions, "category_id = ?")
		args = append(args, *q.CategoryID)
	}
	if len(q.IDs) > 0 {
		placeholders := make([]string, len(q.IDs))
		for i, id := range q.IDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		conditions = append(conditions, "id IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := "SELECT * FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// ToggleTaskComplete flips a task's completion state. Completing a task
// with a repeat interval does not complete it at all: the due date
// advances by one interval and the task stays open for its next
// occurrence.
func (s *SQLiteStore) ToggleTaskComplete(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !task.Completed && task.RepeatInterval != nil && task.DueDate != nil {
		next, err := model.NextDueDate(*task.DueDate, *task.RepeatInterval)
		if err != nil {
			return nil, fmt.Errorf("advancing repeat for task %s: %w", id, err)
		}
		task.DueDate = &next
	} else if task.Completed {
		task.Completed = false
		task.CompletedAt = nil
	} else {
		now := time.Now().UTC()
		task.Completed = true
		task.CompletedAt = &now
	}

	if err := s.UpdateTask(ctx, *task); err != nil {
		return nil, err
	}
	return task, nil
}

// rowScanner is satisfied by both sqlx.Row and sqlx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

var _ rowScanner = (*sqlx.Row)(nil)
var _ rowScanner = (*sqlx.Rows)(nil)

// scanTask scans a task row.
func scanTask(row rowScanner) (model.Task, error) {
	var (
		task         model.Task
		categoryID   *string
		dueDate      *time.Time
		importance   *int
		duration     *int
		repeat       *string
		completedInt int
		completedAt  *time.Time
	)

	err := row.Scan(
		&task.ID, &categoryID, &task.Title, &task.Description,
		&dueDate, &importance, &duration, &repeat,
		&completedInt, &completedAt, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, err
	}

	task.CategoryID = categoryID
	task.DueDate = dueDate
	task.ImportanceFactor = importance
	task.Duration = duration
	task.RepeatInterval = repeat
	task.Completed = completedInt != 0
	task.CompletedAt = completedAt

	return task, nil
}
