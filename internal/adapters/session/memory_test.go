package session

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestMemory() (*Memory, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := NewMemory(
		WithClock(clock.Now),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return m, clock
}

func TestResolve(t *testing.T) {
	m, _ := newTestMemory()
	m.Set("alice", []string{"a1", "a2", "a3"})

	tests := []struct {
		name   string
		user   string
		n      int
		wantID string
		wantOK bool
	}{
		{"first", "alice", 1, "a1", true},
		{"last", "alice", 3, "a3", true},
		{"zero", "alice", 0, "", false},
		{"past end", "alice", 4, "", false},
		{"negative", "alice", -1, "", false},
		{"never set", "bob", 1, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := m.Resolve(tt.user, tt.n)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestSetReplacesMapping(t *testing.T) {
	m, _ := newTestMemory()
	m.Set("alice", []string{"a1", "a2", "a3"})
	m.Set("alice", []string{"b1"})

	id, ok := m.Resolve("alice", 1)
	require.True(t, ok)
	assert.Equal(t, "b1", id)

	_, ok = m.Resolve("alice", 2)
	assert.False(t, ok, "index from the first mapping must be gone")
}

func TestSetCopiesInput(t *testing.T) {
	m, _ := newTestMemory()
	ids := []string{"a1"}
	m.Set("alice", ids)
	ids[0] = "mutated"

	id, _ := m.Resolve("alice", 1)
	assert.Equal(t, "a1", id)
}

func TestResolveExpires(t *testing.T) {
	m, clock := newTestMemory()
	m.Set("alice", []string{"a1"})

	clock.Advance(TTL - time.Second)
	_, ok := m.Resolve("alice", 1)
	require.True(t, ok)

	clock.Advance(time.Second)
	_, ok = m.Resolve("alice", 1)
	assert.False(t, ok)
	assert.Zero(t, m.Len(), "expired entry is evicted on lookup")
}

func TestSetRestartsTTL(t *testing.T) {
	m, clock := newTestMemory()
	m.Set("alice", []string{"a1"})

	clock.Advance(9 * time.Minute)
	m.Set("alice", []string{"a2"})
	clock.Advance(9 * time.Minute)

	id, ok := m.Resolve("alice", 1)
	require.True(t, ok)
	assert.Equal(t, "a2", id)
}

func TestUsersAreIsolated(t *testing.T) {
	m, clock := newTestMemory()
	m.Set("alice", []string{"a1"})
	clock.Advance(5 * time.Minute)
	m.Set("bob", []string{"b1"})
	clock.Advance(6 * time.Minute)

	_, ok := m.Resolve("alice", 1)
	assert.False(t, ok)

	id, ok := m.Resolve("bob", 1)
	require.True(t, ok)
	assert.Equal(t, "b1", id)
}

func TestEvict(t *testing.T) {
	m, _ := newTestMemory()
	m.Set("alice", []string{"a1"})
	m.Evict("alice")
	m.Evict("nobody")

	_, ok := m.Resolve("alice", 1)
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	m, clock := newTestMemory()

	var wg sync.WaitGroup
	for u := range 8 {
		user := fmt.Sprintf("user-%d", u)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				m.Set(user, []string{fmt.Sprintf("%s-%d", user, i)})
				id, ok := m.Resolve(user, 1)
				if assert.True(t, ok) {
					assert.Equal(t, fmt.Sprintf("%s-%d", user, i), id)
				}
				if i%50 == 0 {
					clock.Advance(time.Second)
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, m.Len())
}
