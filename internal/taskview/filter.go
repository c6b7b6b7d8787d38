// Package taskview selects and orders the scored task collection for
// display: a closed set of named filters, category narrowing, and the
// priority / due-date sorts.
package taskview

import (
	"time"

	"github.com/tmuir/focusdo/internal/priority"
)

// FilterKind is the closed set of named filters.
type FilterKind int

const (
	// FilterNone applies no additional narrowing.
	FilterNone FilterKind = iota

	// FilterPriorityRange keeps tasks whose display priority lies
	// within [MinPriority, MaxPriority] inclusive.
	FilterPriorityRange

	// FilterDueThisWeek keeps tasks due inside the current calendar
	// week. Weeks start on Sunday.
	FilterDueThisWeek

	// FilterHighPriority keeps tasks with display priority above 7.
	FilterHighPriority

	// FilterOverdue keeps incomplete tasks whose due date has passed.
	FilterOverdue

	// FilterTopFive is a sort+truncate: the five highest-priority
	// tasks of whatever survived the earlier narrowing steps.
	FilterTopFive
)

// Spec is an ephemeral filter selection. It is UI state, never
// persisted, but its semantics are part of the ordering contract.
type Spec struct {
	Kind FilterKind

	// MinPriority and MaxPriority bound FilterPriorityRange.
	MinPriority float64
	MaxPriority float64

	// Categories restricts results to tasks in any of these category
	// ids. Empty means no category narrowing.
	Categories map[string]bool
}

// topFiveCount is the truncation size of FilterTopFive.
const topFiveCount = 5

// Apply narrows a scored task collection. Steps apply in order, each a
// narrowing AND: the completion gate, the named filter, then category
// membership. The input order is preserved (FilterTopFive excepted,
// which ranks before truncating), and applying the same spec twice
// yields the same result.
func Apply(tasks []priority.Scored, spec Spec, includeCompleted bool, now time.Time) []priority.Scored {
	out := make([]priority.Scored, 0, len(tasks))
	for _, s := range tasks {
		if !includeCompleted && s.Task.Completed {
			continue
		}
		out = append(out, s)
	}

	switch spec.Kind {
	case FilterPriorityRange:
		out = keep(out, func(s priority.Scored) bool {
			return s.Display >= spec.MinPriority && s.Display <= spec.MaxPriority
		})
	case FilterDueThisWeek:
		start, end := weekBounds(now)
		out = keep(out, func(s priority.Scored) bool {
			d := s.Task.DueDate
			return d != nil && !d.Before(start) && d.Before(end)
		})
	case FilterHighPriority:
		out = keep(out, func(s priority.Scored) bool {
			return s.Display > 7
		})
	case FilterOverdue:
		out = keep(out, func(s priority.Scored) bool {
			return s.Task.IsOverdue(now)
		})
	case FilterTopFive:
		out = SortByPriority(out)
		if len(out) > topFiveCount {
			out = out[:topFiveCount]
		}
	}

	if len(spec.Categories) > 0 {
		out = keep(out, func(s priority.Scored) bool {
			return s.Task.CategoryID != nil && spec.Categories[*s.Task.CategoryID]
		})
	}

	return out
}

// keep filters in place over the already-copied slice.
func keep(tasks []priority.Scored, pred func(priority.Scored) bool) []priority.Scored {
	out := tasks[:0]
	for _, s := range tasks {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}

// weekBounds returns the [start, end) of the calendar week containing
// now. Weeks start on Sunday at midnight in now's location.
func weekBounds(now time.Time) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := midnight.AddDate(0, 0, -int(now.Weekday()))
	return start, start.AddDate(0, 0, 7)
}
