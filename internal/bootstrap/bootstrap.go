// Package bootstrap wires the storage, search and session adapters shared
// by every grove binary.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"grove/internal/adapters/session"
	"grove/internal/adapters/sqlite"
	"grove/internal/config"
	"grove/internal/domain"
)

// App holds the wired services of one process
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	DB       *sqlite.Database
	Store    *sqlite.Store
	Index    *sqlite.SearchIndex
	Sessions *session.Memory

	// Rebuilt reports the startup index rebuild
	Rebuilt *domain.RebuildStats
}

// Open opens the database named by cfg and rebuilds the search index once,
// so that rows written by an older or crashed process are searchable.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sqlite.Open(cfg.DatabasePath, sqlite.Options{Logger: logger})
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Store:    sqlite.NewStore(db),
		Index:    sqlite.NewSearchIndex(db),
		Sessions: session.NewMemory(session.WithLogger(logger)),
	}

	stats, err := app.Index.Rebuild(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to rebuild search index: %w", err)
	}
	app.Rebuilt = stats

	return app, nil
}

// Close releases the database
func (a *App) Close() error {
	return a.DB.Close()
}
