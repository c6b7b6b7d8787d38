package model

import "time"

// Subtask is a sub-entry of a task. Subtasks are partitioned into an
// ordered group (Order non-nil, ranks forming a contiguous 1..N among
// live subtasks of one task) and an unordered group (Order nil).
type Subtask struct {
	ID     string `json:"id" db:"id"`
	TaskID string `json:"task_id" db:"task_id"`

	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`

	// Duration is the estimated effort in minutes, if given.
	Duration *int `json:"duration,omitempty" db:"duration"`

	// ImportanceFactor is 1-10; nil means the subtask default applies.
	ImportanceFactor *int `json:"importance_factor,omitempty" db:"importance_factor"`

	// Order is the rank within the ordered group, or nil for the
	// unordered group.
	Order *int `json:"order,omitempty" db:"order_rank"`

	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	// IsDeleted marks a soft-deleted subtask. Deleted subtasks are
	// excluded from all queries and from rank accounting.
	IsDeleted bool `json:"is_deleted" db:"is_deleted"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsOrdered reports whether the subtask belongs to the ordered group.
func (s Subtask) IsOrdered() bool {
	return s.Order != nil
}
