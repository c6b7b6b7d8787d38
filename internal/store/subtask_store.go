package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tmuir/focusdo/internal/model"
)

// CreateSubtask inserts a new subtask. Generates a UUID if ID is empty.
// Rank assignment is the ordering engine's job; the value on sub is
// stored as-is.
func (s *SQLiteStore) CreateSubtask(ctx context.Context, sub model.Subtask) (model.Subtask, error) {
	if strings.TrimSpace(sub.Title) == "" {
		return model.Subtask{}, fmt.Errorf("subtask title must not be empty")
	}
	if sub.TaskID == "" {
		return model.Subtask{}, fmt.Errorf("subtask must reference a task")
	}
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if sub.Completed && sub.CompletedAt == nil {
		sub.CompletedAt = &now
	}
	if !sub.Completed {
		sub.CompletedAt = nil
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subtasks (
			id, task_id, title, description,
			duration, importance_factor, order_rank,
			completed, completed_at, is_deleted, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.TaskID, sub.Title, sub.Description,
		sub.Duration, sub.ImportanceFactor, sub.Order,
		boolToInt(sub.Completed), sub.CompletedAt, boolToInt(sub.IsDeleted),
		sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return model.Subtask{}, fmt.Errorf("creating subtask: %w", err)
	}
	return sub, nil
}

// UpdateSubtask updates a subtask's editable fields by ID.
func (s *SQLiteStore) UpdateSubtask(ctx context.Context, sub model.Subtask) error {
	if strings.TrimSpace(sub.Title) == "" {
		return fmt.Errorf("subtask title must not be empty")
	}

	now := time.Now().UTC()
	sub.UpdatedAt = now

	if sub.Completed && sub.CompletedAt == nil {
		sub.CompletedAt = &now
	}
	if !sub.Completed {
		sub.CompletedAt = nil
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE subtasks SET
			title = ?, description = ?, duration = ?, importance_factor = ?,
			order_rank = ?, completed = ?, completed_at = ?, is_deleted = ?,
			updated_at = ?
		WHERE id = ?`,
		sub.Title, sub.Description, sub.Duration, sub.ImportanceFactor,
		sub.Order, boolToInt(sub.Completed), sub.CompletedAt, boolToInt(sub.IsDeleted),
		sub.UpdatedAt,
		sub.ID,
	)
	if err != nil {
		return fmt.Errorf("updating subtask %s: %w", sub.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("subtask %s: %w", sub.ID, ErrNotFound)
	}
	return nil
}

// GetSubtasks returns all live subtasks of a task. Display ordering is
// the ordering engine's concern; rows come back in rank order with the
// unordered group last.
func (s *SQLiteStore) GetSubtasks(ctx context.Context, taskID string) ([]model.Subtask, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT * FROM subtasks
		WHERE task_id = ? AND is_deleted = 0
		ORDER BY order_rank IS NULL, order_rank`,
		taskID)
	if err != nil {
		return nil, fmt.Errorf("querying subtasks: %w", err)
	}
	defer rows.Close()

	var subs []model.Subtask
	for rows.Next() {
		sub, err := scanSubtask(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// ToggleSubtaskComplete flips the completion state of a subtask,
// keeping the completion timestamp paired.
func (s *SQLiteStore) ToggleSubtaskComplete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE subtasks SET
			completed = CASE WHEN completed = 0 THEN 1 ELSE 0 END,
			completed_at = CASE WHEN completed = 0 THEN ? ELSE NULL END,
			updated_at = ?
		WHERE id = ? AND is_deleted = 0`,
		time.Now().UTC(), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("toggling subtask %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("subtask %s: %w", id, ErrNotFound)
	}
	return nil
}

// SaveSubtaskOrders writes rank and deletion state for every subtask in
// subs inside one transaction. This is how ordering-engine output is
// committed: either the whole new rank assignment lands or none of it.
func (s *SQLiteStore) SaveSubtaskOrders(ctx context.Context, subs []model.Subtask) error {
	if len(subs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx,
		"UPDATE subtasks SET order_rank = ?, is_deleted = ?, updated_at = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("preparing order update: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, sub := range subs {
		if _, err := stmt.ExecContext(ctx, sub.Order, boolToInt(sub.IsDeleted), now, sub.ID); err != nil {
			return fmt.Errorf("saving order for subtask %s: %w", sub.ID, err)
		}
	}

	return tx.Commit()
}

// scanSubtask scans a subtask row.
func scanSubtask(row rowScanner) (model.Subtask, error) {
	var (
		sub          model.Subtask
		duration     *int
		importance   *int
		order        *int
		completedInt int
		completedAt  *time.Time
		deletedInt   int
	)

	err := row.Scan(
		&sub.ID, &sub.TaskID, &sub.Title, &sub.Description,
		&duration, &importance, &order,
		&completedInt, &completedAt, &deletedInt,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return model.Subtask{}, fmt.Errorf("scanning subtask row: %w", err)
	}

	sub.Duration = duration
	sub.ImportanceFactor = importance
	sub.Order = order
	sub.Completed = completedInt != 0
	sub.CompletedAt = completedAt
	sub.IsDeleted = deletedInt != 0

	return sub, nil
}
