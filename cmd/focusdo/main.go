package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmuir/focusdo/internal/app"
	"github.com/tmuir/focusdo/internal/model"
	"github.com/tmuir/focusdo/internal/store"
)

func main() {
	configPathFlag := flag.String("config", "", "config file path")
	dbPathFlag := flag.String("db", "", "sqlite db path")
	flag.Parse()

	cfgPath := *configPathFlag
	if cfgPath == "" {
		cfgPath = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "focusdo: %v\n", err)
		os.Exit(1)
	}

	if *dbPathFlag != "" {
		cfg.DatabasePath = *dbPathFlag
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "focusdo: creating data directory: %v\n", err)
		os.Exit(1)
	}

	s, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "focusdo: opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	p := tea.NewProgram(app.New(s, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "focusdo: %v\n", err)
		os.Exit(1)
	}
}
