package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Task is a user-created work item.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id" db:"id"`

	// CategoryID references the category this task belongs to, if any.
	CategoryID *string `json:"category_id,omitempty" db:"category_id"`

	// Title is the human-readable summary of the task.
	Title string `json:"title" db:"title"`

	// Description is the optional long-form body text.
	Description string `json:"description" db:"description"`

	// DueDate is the calendar date the task is due. Time-of-day is
	// not significant; comparisons truncate to whole days.
	DueDate *time.Time `json:"due_date,omitempty" db:"due_date"`

	// ImportanceFactor is the user-assigned importance, 1-10.
	// Nil means the scorer's task default applies.
	ImportanceFactor *int `json:"importance_factor,omitempty" db:"importance_factor"`

	// Duration is the estimated effort in minutes, if given.
	Duration *int `json:"duration,omitempty" db:"duration"`

	// RepeatInterval is a textual repeat spec such as "3 days" or
	// "1 month". Nil means the task does not repeat.
	RepeatInterval *string `json:"repeat_interval,omitempty" db:"repeat_interval"`

	// Completed and CompletedAt are paired: a completed task always
	// carries a completion timestamp and vice versa.
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsOverdue reports whether the task's due date has passed while the
// task remains incomplete.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}

// RepeatUnit is the calendar unit of a repeat interval.
type RepeatUnit string

const (
	RepeatDays   RepeatUnit = "day"
	RepeatMonths RepeatUnit = "month"
)

// ParseRepeatInterval parses textual repeat specs of the form
// "N day(s)" or "N month(s)" with N >= 1.
func ParseRepeatInterval(s string) (int, RepeatUnit, error) {
	fields := strings.Fields(strings.TrimSpace(strings.ToLower(s)))
	if len(fields) != 2 {
		return 0, "", fmt.Errorf("invalid repeat interval %q", s)
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return 0, "", fmt.Errorf("invalid repeat count in %q", s)
	}

	switch strings.TrimSuffix(fields[1], "s") {
	case "day":
		return n, RepeatDays, nil
	case "month":
		return n, RepeatMonths, nil
	}
	return 0, "", fmt.Errorf("invalid repeat unit in %q", s)
}

// NextDueDate returns the due date advanced by one repeat interval.
func NextDueDate(due time.Time, interval string) (time.Time, error) {
	n, unit, err := ParseRepeatInterval(interval)
	if err != nil {
		return time.Time{}, err
	}

	if unit == RepeatMonths {
		return due.AddDate(0, n, 0), nil
	}
	return due.AddDate(0, 0, n), nil
}
