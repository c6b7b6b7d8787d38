package ai

import (
	"context"
	"errors"
	"testing"
)

func TestDurationTotalMinutes(t *testing.T) {
	cases := []struct {
		d    Duration
		want int
	}{
		{Duration{Hours: 0, Minutes: 0}, 0},
		{Duration{Hours: 0, Minutes: 45}, 45},
		{Duration{Hours: 2, Minutes: 0}, 120},
		{Duration{Hours: 1, Minutes: 30}, 90},
	}

	for _, tc := range cases {
		if got := tc.d.TotalMinutes(); got != tc.want {
			t.Fatalf("%+v.TotalMinutes() = %d, want %d", tc.d, got, tc.want)
		}
	}
}

func TestParseBreakdown(t *testing.T) {
	text := `Here is the breakdown:
{
  "main_task": {"title": "Plan launch", "description": "Coordinate the release", "duration": {"hours": 1, "minutes": 30}},
  "subtasks": [
    {"title": "Draft announcement", "description": "", "duration": {"hours": 0, "minutes": 45}, "importance_factor": 7, "order": 1},
    {"title": "Schedule posts", "description": "", "duration": {"hours": 0, "minutes": 20}, "importance_factor": 4, "order": 2}
  ]
}`

	result, err := parseBreakdown(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.MainTask.Title != "Plan launch" {
		t.Fatalf("main task title = %q", result.MainTask.Title)
	}
	if result.MainTask.Duration.TotalMinutes() != 90 {
		t.Fatalf("main task minutes = %d, want 90", result.MainTask.Duration.TotalMinutes())
	}
	if len(result.Subtasks) != 2 {
		t.Fatalf("subtask count = %d, want 2", len(result.Subtasks))
	}
	if result.Subtasks[0].Order != 1 || result.Subtasks[1].Order != 2 {
		t.Fatalf("subtask orders = %d, %d", result.Subtasks[0].Order, result.Subtasks[1].Order)
	}
	if result.Subtasks[0].Duration.TotalMinutes() != 45 {
		t.Fatalf("subtask minutes = %d, want 45", result.Subtasks[0].Duration.TotalMinutes())
	}
}

func TestParseBreakdownRejectsGarbage(t *testing.T) {
	for _, text := range []string{
		"",
		"no json here",
		`{"subtasks": []}`, // missing main task
	} {
		if _, err := parseBreakdown(text); err == nil {
			t.Fatalf("parseBreakdown(%q) succeeded, want error", text)
		}
	}
}

func TestBreakDownWithoutKey(t *testing.T) {
	c := New("", "", 0)

	_, err := c.BreakDown(context.Background(), "organize the garage")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("err = %v, want ErrNoAPIKey", err)
	}
}
