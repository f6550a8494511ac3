package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"grove/internal/adapters/editor"
	"grove/internal/adapters/obsidian"
	"grove/internal/adapters/tui"
	"grove/internal/bootstrap"
	"grove/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// the alternate screen owns the terminal; logs would corrupt it
	logger := config.NewLogger(cfg.LogLevel, io.Discard)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = config.NewLogger(cfg.LogLevel, f)
	}

	app, err := bootstrap.Open(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	ui := tui.NewApp(tui.Deps{
		Store:    app.Store,
		Index:    app.Index,
		Editor:   editor.NewOpener(""),
		Obsidian: obsidian.NewOpener(cfg.ObsidianVault, cfg.ExportFolder),
	})

	p := tea.NewProgram(ui, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
