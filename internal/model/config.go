package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// PomodoroConfig holds the focus-session timer durations.
type PomodoroConfig struct {
	// WorkMinutes is the length of a work session.
	WorkMinutes int `mapstructure:"work_minutes" yaml:"work_minutes"`

	// ShortBreakMinutes is the length of a regular break.
	ShortBreakMinutes int `mapstructure:"short_break_minutes" yaml:"short_break_minutes"`

	// LongBreakMinutes is the length of the extended break.
	LongBreakMinutes int `mapstructure:"long_break_minutes" yaml:"long_break_minutes"`

	// LongBreakInterval is how many work sessions precede a long break.
	LongBreakInterval int `mapstructure:"long_break_interval" yaml:"long_break_interval"`
}

// AIConfig holds settings for the AI task-breakdown integration.
type AIConfig struct {
	Model     string `mapstructure:"model" yaml:"model"`
	MaxTokens int    `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DatabasePath is the sqlite database location. Empty means the
	// default path next to the config file.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	Pomodoro PomodoroConfig `mapstructure:"pomodoro" yaml:"pomodoro"`
	AI       AIConfig       `mapstructure:"ai" yaml:"ai"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/focusdo/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "focusdo", "config.yaml")
}

// DefaultDatabasePath returns the default sqlite database location.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "focusdo.db")
	}
	return filepath.Join(home, ".config", "focusdo", "focusdo.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DatabasePath: DefaultDatabasePath(),
		Pomodoro: PomodoroConfig{
			WorkMinutes:       25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
			LongBreakInterval: 4,
		},
		AI: AIConfig{
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 4096,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database_path", DefaultDatabasePath())
	v.SetDefault("pomodoro.work_minutes", 25)
	v.SetDefault("pomodoro.short_break_minutes", 5)
	v.SetDefault("pomodoro.long_break_minutes", 15)
	v.SetDefault("pomodoro.long_break_interval", 4)
	v.SetDefault("ai.model", "claude-sonnet-4-20250514")
	v.SetDefault("ai.max_tokens", 4096)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Pomodoro.WorkMinutes <= 0 {
		cfg.Pomodoro.WorkMinutes = 25
	}
	if cfg.Pomodoro.ShortBreakMinutes <= 0 {
		cfg.Pomodoro.ShortBreakMinutes = 5
	}
	if cfg.Pomodoro.LongBreakMinutes <= 0 {
		cfg.Pomodoro.LongBreakMinutes = 15
	}
	if cfg.Pomodoro.LongBreakInterval <= 0 {
		cfg.Pomodoro.LongBreakInterval = 4
	}

	return cfg, nil
}
