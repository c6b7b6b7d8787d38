package store

import (
	"context"
	"errors"

	"github.com/tmuir/focusdo/internal/model"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// TaskQuery controls task listing.
type TaskQuery struct {
	// IncludeCompleted keeps completed tasks in the result.
	IncludeCompleted bool

	// CategoryID restricts to one category when non-nil.
	CategoryID *string

	// IDs restricts to an explicit id set when non-empty (used by the
	// focus session to load its selected tasks).
	IDs []string
}

// Store defines the persistence interface for tasks, subtasks, and
// categories. Priority scoring, filtering, and ordering happen in
// memory on the records read through this interface; mutations that
// come out of the ordering engine are committed through
// SaveSubtaskOrders in a single transaction.
type Store interface {
	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) (model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, id string) error
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	GetTasks(ctx context.Context, q TaskQuery) ([]model.Task, error)

	// ToggleTaskComplete flips the completion flag, keeping the
	// completion timestamp paired with it. Completing a repeating
	// task advances its due date by one interval instead.
	ToggleTaskComplete(ctx context.Context, id string) (*model.Task, error)

	// === Subtasks ===

	CreateSubtask(ctx context.Context, sub model.Subtask) (model.Subtask, error)
	UpdateSubtask(ctx context.Context, sub model.Subtask) error
	GetSubtasks(ctx context.Context, taskID string) ([]model.Subtask, error)
	ToggleSubtaskComplete(ctx context.Context, id string) error

	// SaveSubtaskOrders persists rank and deletion state for a whole
	// subtask list in one transaction, so a reordering either fully
	// applies or not at all.
	SaveSubtaskOrders(ctx context.Context, subs []model.Subtask) error

	// === Categories ===

	CreateCategory(ctx context.Context, c model.Category) (model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	GetCategories(ctx context.Context) ([]model.Category, error)
}
