package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"grove/internal/domain"
)

// stepClock returns a strictly increasing time on every call
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func openTestDB(t testing.TB) *Database {
	t.Helper()
	clock := &stepClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	db, err := Open(filepath.Join(t.TempDir(), "grove.db"), Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:  clock.Now,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func mustCreate(t testing.TB, store *Store, in domain.NewItem) *domain.Item {
	t.Helper()
	item, err := store.Create(context.Background(), in)
	require.NoError(t, err)
	return item
}
