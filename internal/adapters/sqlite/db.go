package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Options configures a Database
type Options struct {
	Logger *slog.Logger
	// Clock stamps created/modified; defaults to time.Now
	Clock func() time.Time
}

// Database is the embedded store shared by Store and SearchIndex
type Database struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the database at path and ensures the schema
func Open(path string, opts Options) (*Database, error) {
	// Expand ~ in path
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer process, one connection: every store call is serialized.
	db.SetMaxOpenConns(1)

	d := &Database{
		db:     db,
		path:   path,
		logger: opts.Logger,
		now:    opts.Clock,
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.now == nil {
		d.now = time.Now
	}

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			priority TEXT NOT NULL DEFAULT '',
			due TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			aliases TEXT NOT NULL DEFAULT '[]',
			linked_ref TEXT NOT NULL DEFAULT '',
			origin TEXT NOT NULL DEFAULT 'manual',
			external_source TEXT NOT NULL DEFAULT '',
			created INTEGER NOT NULL,
			modified INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS share_links (
			token TEXT PRIMARY KEY,
			item_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
			visibility TEXT NOT NULL,
			created INTEGER NOT NULL
		);
		CREATE VIRTUAL TABLE IF NOT EXISTS items_fts USING fts5(
			id UNINDEXED,
			title,
			body,
			tokenize = 'trigram'
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_items_kind_status ON items(kind, status);
		CREATE INDEX IF NOT EXISTS idx_items_created ON items(created);
		CREATE INDEX IF NOT EXISTS idx_items_linked_ref ON items(linked_ref);
		CREATE INDEX IF NOT EXISTS idx_share_links_item ON share_links(item_id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if err := d.setMeta(context.Background(), "schema_version", schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return d, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Path returns the resolved database file path
func (d *Database) Path() string {
	return d.path
}

// LastRebuild returns when the search index was last rebuilt, or the zero time
func (d *Database) LastRebuild(ctx context.Context) time.Time {
	var v string
	if err := d.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'last_rebuild_time'`).Scan(&v); err != nil {
		return time.Time{}
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(0, n)
}

func (d *Database) setMeta(ctx context.Context, key, value string) error {
	_, err := d.db.ExecContext(ctx, `INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// withTx runs fn inside a transaction, committing on success
func (d *Database) withTx(ctx context.Context, fn func(tx *itemTx) error) error {
	sqlTx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&itemTx{tx: sqlTx}); err != nil {
		sqlTx.Rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func unixNano(n int64) time.Time {
	return time.Unix(0, n)
}
