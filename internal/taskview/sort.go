package taskview

import (
	"sort"

	"github.com/tmuir/focusdo/internal/priority"
)

// SortKey selects the display ordering of the task list.
type SortKey int

const (
	// SortByPriorityKey orders by display priority, highest first.
	SortByPriorityKey SortKey = iota

	// SortByDueDateKey orders by due date ascending; tasks without a
	// due date sort last, and overdue tasks pin to the top.
	SortByDueDateKey
)

// Sort returns a new slice ordered by the given key.
func Sort(tasks []priority.Scored, key SortKey) []priority.Scored {
	if key == SortByDueDateKey {
		return SortByDueDate(tasks)
	}
	return SortByPriority(tasks)
}

// SortByPriority orders tasks by display priority descending. The sort
// is stable so equal-priority tasks keep their incoming order.
func SortByPriority(tasks []priority.Scored) []priority.Scored {
	out := append([]priority.Scored(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Display > out[j].Display
	})
	return out
}

// SortByDueDate orders tasks by due date ascending. Overdue tasks come
// first regardless of their actual dates, and tasks without a due date
// are treated as infinitely far out.
func SortByDueDate(tasks []priority.Scored) []priority.Scored {
	out := append([]priority.Scored(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		aOver := a.Display == priority.OverdueScore
		bOver := b.Display == priority.OverdueScore
		if aOver != bOver {
			return aOver
		}

		if a.Task.DueDate == nil {
			return false
		}
		if b.Task.DueDate == nil {
			return true
		}
		return a.Task.DueDate.Before(*b.Task.DueDate)
	})
	return out
}
