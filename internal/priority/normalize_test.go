package priority

import (
	"math"
	"testing"
	"time"

	"github.com/tmuir/focusdo/internal/model"
)

func TestNormalizeBounds(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		{Title: "a", ImportanceFactor: intPtr(10), Duration: intPtr(15), DueDate: timePtr(now.Add(6 * time.Hour))},
		{Title: "b", ImportanceFactor: intPtr(3), Duration: intPtr(240)},
		{Title: "c"},
		{Title: "late", DueDate: timePtr(now.Add(-time.Hour))},
	}

	ranked := Rank(tasks, now)
	for _, s := range ranked {
		if s.Task.Title == "late" {
			if s.Display != OverdueScore {
				t.Fatalf("overdue display = %v, want %v", s.Display, OverdueScore)
			}
			continue
		}
		if s.Display < 0 || s.Display > 10 {
			t.Fatalf("task %q display = %v, want within [0, 10]", s.Task.Title, s.Display)
		}
	}
}

func TestNormalizeTopTaskHitsTen(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		{Title: "top", ImportanceFactor: intPtr(10), Duration: intPtr(10), DueDate: timePtr(now.Add(2 * time.Hour))},
		{Title: "rest", ImportanceFactor: intPtr(2), Duration: intPtr(120)},
	}

	ranked := Rank(tasks, now)
	var top Scored
	for _, s := range ranked {
		if s.Task.Title == "top" {
			top = s
		}
	}
	if top.Display != 10 {
		t.Fatalf("highest normal task display = %v, want 10", top.Display)
	}
}

func TestNormalizeIsMonotonic(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		{Title: "a", ImportanceFactor: intPtr(9), Duration: intPtr(20), DueDate: timePtr(now.Add(12 * time.Hour))},
		{Title: "b", ImportanceFactor: intPtr(6), Duration: intPtr(60), DueDate: timePtr(now.AddDate(0, 0, 4))},
		{Title: "c", ImportanceFactor: intPtr(2), Duration: intPtr(300)},
	}

	ranked := Rank(tasks, now)
	for i := range ranked {
		for j := range ranked {
			if ranked[i].Score > ranked[j].Score && ranked[i].Display < ranked[j].Display {
				t.Fatalf("normalization reversed %q (%v→%v) and %q (%v→%v)",
					ranked[i].Task.Title, ranked[i].Score, ranked[i].Display,
					ranked[j].Task.Title, ranked[j].Score, ranked[j].Display)
			}
		}
	}
}

func TestNormalizeEmptyAndAllOverdue(t *testing.T) {
	now := time.Now()

	if got := Normalize(nil); len(got) != 0 {
		t.Fatalf("normalizing empty batch returned %d entries", len(got))
	}

	// Only overdue tasks: the denominator floor of 1 keeps the math
	// safe even with no normal scores in the batch.
	tasks := []model.Task{
		{Title: "late1", DueDate: timePtr(now.Add(-time.Hour))},
		{Title: "late2", DueDate: timePtr(now.AddDate(0, 0, -3))},
	}
	for _, s := range Rank(tasks, now) {
		if s.Display != OverdueScore {
			t.Fatalf("display = %v, want %v", s.Display, OverdueScore)
		}
	}
}

func TestNormalizeRoundsToTwoDecimals(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		{Title: "a", ImportanceFactor: intPtr(7), Duration: intPtr(45), DueDate: timePtr(now.AddDate(0, 0, 2))},
		{Title: "b", ImportanceFactor: intPtr(3), Duration: intPtr(75), DueDate: timePtr(now.AddDate(0, 0, 9))},
	}

	for _, s := range Rank(tasks, now) {
		scaled := s.Display * 100
		if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
			t.Fatalf("display %v is not rounded to two decimals", s.Display)
		}
	}
}
