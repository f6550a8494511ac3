package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grove/internal/bootstrap"
	"grove/internal/config"
	"grove/internal/ports"
)

var (
	dbPath   string
	logLevel string
	app      *bootstrap.App
)

var rootCmd = &cobra.Command{
	Use:   "grove-cli",
	Short: "Capture and grow notes, tasks and scratch entries",
	Long: `grove-cli is a command-line interface for grove, a personal knowledge
and task store.

Items are notes, tasks or scratch entries. Each kind has its own lifecycle:
notes mature from fleeting to permanent and exported, tasks go from active
to done, scratch entries stay drafts until promoted or archived.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DatabasePath = config.ExpandHome(dbPath)
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		app, err = bootstrap.Open(cmd.Context(), cfg, config.NewLogger(cfg.LogLevel, os.Stderr))
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		err := app.Close()
		app = nil
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the database (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
}

// GetStore returns the initialized item store
func GetStore() ports.ItemStore {
	return app.Store
}

// GetIndex returns the initialized search index
func GetIndex() ports.SearchIndex {
	return app.Index
}
