package priority

import (
	"math"
	"testing"
	"time"

	"github.com/tmuir/focusdo/internal/model"
)

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func TestScoreCompletedTaskIsZero(t *testing.T) {
	now := time.Now()
	task := model.Task{
		Title:            "done already",
		ImportanceFactor: intPtr(10),
		Duration:         intPtr(30),
		DueDate:          timePtr(now.Add(-48 * time.Hour)),
		Completed:        true,
		CompletedAt:      timePtr(now),
	}

	if got := Score(task, now); got != 0 {
		t.Fatalf("completed task score = %v, want 0", got)
	}
}

func TestScoreOverdueSentinel(t *testing.T) {
	now := time.Now()
	task := model.Task{
		Title:            "late",
		ImportanceFactor: intPtr(1),
		Duration:         intPtr(5),
		DueDate:          timePtr(now.Add(-24 * time.Hour)),
	}

	if got := Score(task, now); got != OverdueScore {
		t.Fatalf("overdue task score = %v, want %v", got, OverdueScore)
	}
}

func TestScoreWorkedExample(t *testing.T) {
	// importance 8, duration 90, due in exactly 3 days:
	// 3*(8/log2(91)) + 5*(1/4) + 2*(91/60) ≈ 7.97
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := model.Task{
		Title:            "worked example",
		ImportanceFactor: intPtr(8),
		Duration:         intPtr(90),
		DueDate:          timePtr(now.AddDate(0, 0, 3)),
	}

	want := 3*(8/math.Log2(91)) + 5*(1.0/4) + 2*(91.0/60)
	got := Score(task, now)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", got, want)
	}
	if math.Abs(got-7.97) > 0.01 {
		t.Fatalf("score = %v, want ≈ 7.97", got)
	}
}

func TestScoreDefaults(t *testing.T) {
	now := time.Now()

	// No importance, no duration, no due date: defaults apply and the
	// urgency term contributes essentially nothing.
	bare := model.Task{Title: "bare"}
	got := Score(bare, now)

	want := 3*(float64(DefaultTaskImportance)/math.Log2(DefaultDurationMinutes+1)) +
		2*(float64(DefaultDurationMinutes)+1)/60
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("default score = %v, want %v", got, want)
	}
}

func TestScoreZeroDurationIsGuarded(t *testing.T) {
	now := time.Now()
	task := model.Task{
		Title:    "instant",
		Duration: intPtr(0),
	}

	got := Score(task, now)
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Fatalf("zero-duration score = %v, want finite", got)
	}
	if got < 0 {
		t.Fatalf("zero-duration score = %v, want non-negative", got)
	}
}

func TestScoreNeverNegative(t *testing.T) {
	now := time.Now()
	cases := []model.Task{
		{Title: "min everything", ImportanceFactor: intPtr(1), Duration: intPtr(1)},
		{Title: "far future", DueDate: timePtr(now.AddDate(10, 0, 0))},
		{Title: "due today", DueDate: timePtr(now.Add(time.Hour))},
	}

	for _, task := range cases {
		if got := Score(task, now); got < 0 {
			t.Fatalf("task %q score = %v, want >= 0", task.Title, got)
		}
	}
}

func TestOverdueDominance(t *testing.T) {
	now := time.Now()
	overdue := model.Task{
		Title:            "overdue low importance",
		ImportanceFactor: intPtr(1),
		Duration:         intPtr(1),
		DueDate:          timePtr(now.Add(-time.Hour)),
	}
	urgent := model.Task{
		Title:            "urgent high importance",
		ImportanceFactor: intPtr(10),
		Duration:         intPtr(90),
		DueDate:          timePtr(now.Add(time.Hour)),
	}

	if Score(overdue, now) <= Score(urgent, now) {
		t.Fatalf("overdue task must outrank every non-overdue task: %v <= %v",
			Score(overdue, now), Score(urgent, now))
	}
}

func TestDueDateProximityRaisesScore(t *testing.T) {
	now := time.Now()
	near := model.Task{Title: "near", DueDate: timePtr(now.AddDate(0, 0, 1))}
	far := model.Task{Title: "far", DueDate: timePtr(now.AddDate(0, 0, 30))}

	if Score(near, now) <= Score(far, now) {
		t.Fatalf("closer due date should score higher: near %v, far %v",
			Score(near, now), Score(far, now))
	}
}
