package commands

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"grove/internal/adapters/sqlite"
	"grove/internal/domain"
)

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func newTestStore(t *testing.T) (*sqlite.Store, *sqlite.SearchIndex) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "grove.db"), sqlite.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlite.NewStore(db), sqlite.NewSearchIndex(db)
}

func capture(t *testing.T, store *sqlite.Store, in domain.NewItem) *domain.Item {
	t.Helper()
	res, err := NewCaptureCommand(store, in).Execute(context.Background())
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	return res.Item
}
