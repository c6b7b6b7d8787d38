// Package priority computes the dynamic priority ranking used to order
// tasks: a raw, unbounded score blending due-date urgency, importance,
// and estimated effort, and a normalization of that score onto the
// bounded 0-10 display scale shown to users.
package priority

import (
	"math"
	"time"

	"github.com/tmuir/focusdo/internal/model"
)

// Default attribute values applied when a task leaves the corresponding
// field unset. Defined once here so defaulting semantics are consistent
// everywhere a score is computed.
const (
	// DefaultTaskImportance is the importance assumed for tasks
	// without an explicit importance factor.
	DefaultTaskImportance = 6

	// DefaultDurationMinutes is the effort estimate assumed for items
	// without a duration.
	DefaultDurationMinutes = 60
)

// OverdueScore is the sentinel score and display priority reserved for
// incomplete tasks whose due date has passed. It is never attainable by
// the normal scoring formula, so overdue tasks always rank above
// everything else.
const OverdueScore = 11

// Formula weights: due-date proximity dominates, importance is
// secondary, raw duration adds a small upward bias for longer tasks.
const (
	importanceWeight = 3
	urgencyWeight    = 5
	durationWeight   = 2
)

// minScoringDuration floors the duration used inside the formula. At
// the floor the log term is log2(2) = 1, so the division is safe.
const minScoringDuration = 1

// Score computes the raw priority score for a task at the given time.
// Completed tasks score 0 and never compete for attention; overdue
// tasks score the fixed OverdueScore sentinel. All other scores are
// non-negative and unbounded above.
func Score(t model.Task, now time.Time) float64 {
	if t.Completed {
		return 0
	}
	if t.IsOverdue(now) {
		return OverdueScore
	}

	importance := DefaultTaskImportance
	if t.ImportanceFactor != nil {
		importance = *t.ImportanceFactor
	}

	return formula(importance, t.Duration, daysUntil(t.DueDate, now))
}

// daysUntil returns the fractional days remaining before due, floored
// at zero. A nil due date reports no urgency pressure at all.
func daysUntil(due *time.Time, now time.Time) float64 {
	if due == nil {
		return math.MaxInt32
	}
	days := due.Sub(now).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}

// formula evaluates the weighted priority expression. The importance
// term is damped by the log of the duration so long low-urgency tasks
// are suppressed, while the linear duration term biases mildly toward
// longer tasks.
func formula(importance int, duration *int, daysUntilDue float64) float64 {
	d := DefaultDurationMinutes
	if duration != nil {
		d = *duration
	}
	if d < minScoringDuration {
		d = minScoringDuration
	}

	imp := importanceWeight * (float64(importance) / math.Log2(float64(d)+1))
	urg := urgencyWeight * (1 / (daysUntilDue + 1))
	dur := durationWeight * (float64(d) + 1) / 60

	return imp + urg + dur
}
