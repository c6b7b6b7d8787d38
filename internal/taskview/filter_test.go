package taskview

import (
	"testing"
	"time"

	"github.com/tmuir/focusdo/internal/model"
	"github.com/tmuir/focusdo/internal/priority"
)

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// fixedNow is a Wednesday, so the surrounding week (Sunday-start) is
// unambiguous: 2026-03-01 (Sun) through 2026-03-07 (Sat).
var fixedNow = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

func rankedFixture() []priority.Scored {
	now := fixedNow
	tasks := []model.Task{
		{ID: "urgent", Title: "urgent", ImportanceFactor: intPtr(10), Duration: intPtr(15),
			DueDate: timePtr(now.Add(4 * time.Hour)), CategoryID: strPtr("work")},
		{ID: "thisweek", Title: "this week", DueDate: timePtr(now.AddDate(0, 0, 2)),
			CategoryID: strPtr("home")},
		{ID: "nextweek", Title: "next week", DueDate: timePtr(now.AddDate(0, 0, 8))},
		{ID: "late", Title: "late", DueDate: timePtr(now.AddDate(0, 0, -2)),
			CategoryID: strPtr("work")},
		{ID: "someday", Title: "someday", ImportanceFactor: intPtr(2), Duration: intPtr(300)},
		{ID: "done", Title: "done", Completed: true, CompletedAt: timePtr(now)},
	}
	return priority.Rank(tasks, now)
}

func idsOf(tasks []priority.Scored) []string {
	out := make([]string, len(tasks))
	for i, s := range tasks {
		out[i] = s.Task.ID
	}
	return out
}

func contains(tasks []priority.Scored, id string) bool {
	for _, s := range tasks {
		if s.Task.ID == id {
			return true
		}
	}
	return false
}

func TestCompletionGate(t *testing.T) {
	ranked := rankedFixture()

	got := Apply(ranked, Spec{Kind: FilterNone}, false, fixedNow)
	if contains(got, "done") {
		t.Fatalf("completed task survived includeCompleted=false: %v", idsOf(got))
	}
	if len(got) != len(ranked)-1 {
		t.Fatalf("got %d tasks, want %d", len(got), len(ranked)-1)
	}

	got = Apply(ranked, Spec{Kind: FilterNone}, true, fixedNow)
	if !contains(got, "done") {
		t.Fatalf("completed task dropped despite includeCompleted=true")
	}
}

func TestFilterDueThisWeek(t *testing.T) {
	got := Apply(rankedFixture(), Spec{Kind: FilterDueThisWeek}, false, fixedNow)

	if !contains(got, "thisweek") || !contains(got, "urgent") || !contains(got, "late") {
		t.Fatalf("missing in-week tasks: %v", idsOf(got))
	}
	if contains(got, "nextweek") || contains(got, "someday") {
		t.Fatalf("out-of-week task survived: %v", idsOf(got))
	}
}

func TestWeekBoundsStartSunday(t *testing.T) {
	start, end := weekBounds(fixedNow)

	if start.Weekday() != time.Sunday {
		t.Fatalf("week starts on %v, want Sunday", start.Weekday())
	}
	wantStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("week start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantStart.AddDate(0, 0, 7)) {
		t.Fatalf("week end = %v, want %v", end, wantStart.AddDate(0, 0, 7))
	}

	// A Sunday is the first day of its own week.
	sun := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	start, _ = weekBounds(sun)
	if !start.Equal(wantStart) {
		t.Fatalf("Sunday week start = %v, want %v", start, wantStart)
	}
}

func TestFilterOverdue(t *testing.T) {
	got := Apply(rankedFixture(), Spec{Kind: FilterOverdue}, true, fixedNow)

	if len(got) != 1 || got[0].Task.ID != "late" {
		t.Fatalf("overdue filter = %v, want [late]", idsOf(got))
	}
}

func TestFilterHighPriority(t *testing.T) {
	got := Apply(rankedFixture(), Spec{Kind: FilterHighPriority}, false, fixedNow)

	for _, s := range got {
		if s.Display <= 7 {
			t.Fatalf("task %s display %v leaked through > 7 filter", s.Task.ID, s.Display)
		}
	}
	// The batch maximum always normalizes to 10, and overdue sits at
	// 11, so both must be present.
	if !contains(got, "late") || !contains(got, "urgent") {
		t.Fatalf("high-priority filter = %v, want late and urgent present", idsOf(got))
	}
}

func TestFilterPriorityRange(t *testing.T) {
	ranked := rankedFixture()
	spec := Spec{Kind: FilterPriorityRange, MinPriority: 0, MaxPriority: 5}

	got := Apply(ranked, spec, false, fixedNow)
	for _, s := range got {
		if s.Display < 0 || s.Display > 5 {
			t.Fatalf("task %s display %v outside [0,5]", s.Task.ID, s.Display)
		}
	}
	if contains(got, "late") {
		t.Fatalf("overdue (display 11) must not fall in [0,5]")
	}
}

func TestFilterTopFive(t *testing.T) {
	now := fixedNow
	var tasks []model.Task
	for i := 0; i < 8; i++ {
		tasks = append(tasks, model.Task{
			ID:               string(rune('a' + i)),
			ImportanceFactor: intPtr(i + 1),
			Duration:         intPtr(30),
			DueDate:          timePtr(now.AddDate(0, 0, 8-i)),
		})
	}
	ranked := priority.Rank(tasks, now)

	got := Apply(ranked, Spec{Kind: FilterTopFive}, false, fixedNow)
	if len(got) != 5 {
		t.Fatalf("top-five returned %d tasks", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Display > got[i-1].Display {
			t.Fatalf("top-five not sorted descending: %v", idsOf(got))
		}
	}
	// The lowest-priority members must be the ones cut.
	min := got[len(got)-1].Display
	for _, s := range ranked {
		if contains(got, s.Task.ID) {
			continue
		}
		if s.Display > min {
			t.Fatalf("truncated task %s (%v) outranks kept minimum %v",
				s.Task.ID, s.Display, min)
		}
	}
}

func TestCategoryNarrowing(t *testing.T) {
	spec := Spec{Kind: FilterNone, Categories: map[string]bool{"work": true}}

	got := Apply(rankedFixture(), spec, true, fixedNow)
	for _, s := range got {
		if s.Task.CategoryID == nil || *s.Task.CategoryID != "work" {
			t.Fatalf("non-work task %s survived category filter", s.Task.ID)
		}
	}
	if !contains(got, "urgent") || !contains(got, "late") {
		t.Fatalf("work tasks missing: %v", idsOf(got))
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	ranked := rankedFixture()
	specs := []Spec{
		{Kind: FilterNone},
		{Kind: FilterDueThisWeek},
		{Kind: FilterHighPriority},
		{Kind: FilterOverdue},
		{Kind: FilterTopFive},
		{Kind: FilterPriorityRange, MinPriority: 2, MaxPriority: 9},
		{Kind: FilterNone, Categories: map[string]bool{"home": true}},
	}

	for _, spec := range specs {
		once := Apply(ranked, spec, true, fixedNow)
		twice := Apply(once, spec, true, fixedNow)
		if len(once) != len(twice) {
			t.Fatalf("spec %v: re-filter changed size %d -> %d", spec.Kind, len(once), len(twice))
		}
		for i := range once {
			if once[i].Task.ID != twice[i].Task.ID {
				t.Fatalf("spec %v: re-filter changed order %v -> %v",
					spec.Kind, idsOf(once), idsOf(twice))
			}
		}
	}
}

func TestSortByPriorityDescending(t *testing.T) {
	got := Sort(rankedFixture(), SortByPriorityKey)

	for i := 1; i < len(got); i++ {
		if got[i].Display > got[i-1].Display {
			t.Fatalf("priority sort out of order at %d: %v", i, idsOf(got))
		}
	}
	if got[0].Task.ID != "late" {
		t.Fatalf("overdue task must sort first, got %v", idsOf(got))
	}
}

func TestSortByDueDate(t *testing.T) {
	got := Sort(rankedFixture(), SortByDueDateKey)

	// Overdue pins first even though sorting ascending by date would
	// already place it there; the pin matters when an overdue task's
	// date is later than a completed task's (completed tasks are not
	// overdue and sort by their real dates).
	if got[0].Task.ID != "late" {
		t.Fatalf("overdue task must pin first: %v", idsOf(got))
	}

	// Nil due dates sort last.
	n := len(got)
	if got[n-1].Task.DueDate != nil && got[n-2].Task.DueDate != nil {
		t.Fatalf("nil-due-date tasks must sort last: %v", idsOf(got))
	}

	// Dated, non-overdue tasks are ascending among themselves.
	var prev *time.Time
	for _, s := range got {
		if s.Display == priority.OverdueScore || s.Task.DueDate == nil {
			continue
		}
		if prev != nil && s.Task.DueDate.Before(*prev) {
			t.Fatalf("due-date sort out of order: %v", idsOf(got))
		}
		prev = s.Task.DueDate
	}
}
