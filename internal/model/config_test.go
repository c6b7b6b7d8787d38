package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Pomodoro.WorkMinutes != 25 || cfg.Pomodoro.LongBreakInterval != 4 {
		t.Fatalf("defaults not applied: %+v", cfg.Pomodoro)
	}
	if cfg.AI.Model == "" || cfg.AI.MaxTokens <= 0 {
		t.Fatalf("AI defaults not applied: %+v", cfg.AI)
	}
}

func TestLoadConfigOverridesAndBackfill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database_path: /tmp/focusdo-test.db
pomodoro:
  work_minutes: 50
  long_break_interval: -1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabasePath != "/tmp/focusdo-test.db" {
		t.Fatalf("database_path = %q", cfg.DatabasePath)
	}
	if cfg.Pomodoro.WorkMinutes != 50 {
		t.Fatalf("work_minutes = %d, want 50", cfg.Pomodoro.WorkMinutes)
	}
	// Unset keys keep their defaults; invalid values fall back.
	if cfg.Pomodoro.ShortBreakMinutes != 5 {
		t.Fatalf("short_break_minutes = %d, want 5", cfg.Pomodoro.ShortBreakMinutes)
	}
	if cfg.Pomodoro.LongBreakInterval != 4 {
		t.Fatalf("long_break_interval = %d, want 4", cfg.Pomodoro.LongBreakInterval)
	}
}
