// Package session keeps the per-user numbered references handed out by
// listing commands, so that "#2" can be resolved on the next call.
package session

import (
	"log/slog"
	"sync"
	"time"

	"grove/internal/metrics"
	"grove/internal/ports"
)

// TTL is how long a mapping stays resolvable after the last Set
const TTL = 600 * time.Second

// entry is never mutated after Set publishes it
type entry struct {
	ids   []string
	setAt time.Time
}

// Memory implements ports.ReferenceSession in process memory
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*entry
	now     func() time.Time
	logger  *slog.Logger
}

// Ensure Memory implements ReferenceSession
var _ ports.ReferenceSession = (*Memory)(nil)

// Option configures a Memory session store
type Option func(*Memory)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

// WithLogger sets the logger used to report misses
func WithLogger(logger *slog.Logger) Option {
	return func(m *Memory) { m.logger = logger }
}

// NewMemory creates an empty session store
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		entries: make(map[string]*entry),
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Set replaces the whole mapping of userKey; position n maps to ids[n-1]
func (m *Memory) Set(userKey string, ids []string) {
	e := &entry{
		ids:   append([]string(nil), ids...),
		setAt: m.now(),
	}

	m.mu.Lock()
	m.entries[userKey] = e
	m.mu.Unlock()
}

// Resolve returns the id at 1-based position n of userKey's last listing.
// Expired mappings are evicted.
func (m *Memory) Resolve(userKey string, n int) (string, bool) {
	m.mu.RLock()
	e := m.entries[userKey]
	m.mu.RUnlock()

	if e == nil {
		m.miss(userKey, n, metrics.OutcomeUnset)
		return "", false
	}
	if m.now().Sub(e.setAt) >= TTL {
		m.evictIfSame(userKey, e)
		m.miss(userKey, n, metrics.OutcomeExpired)
		return "", false
	}
	if n < 1 || n > len(e.ids) {
		m.miss(userKey, n, metrics.OutcomeOutOfRange)
		return "", false
	}

	metrics.RecordResolution(metrics.OutcomeHit)
	return e.ids[n-1], true
}

// Evict drops userKey's mapping
func (m *Memory) Evict(userKey string) {
	m.mu.Lock()
	delete(m.entries, userKey)
	m.mu.Unlock()
}

// Len returns the number of users holding a mapping, expired or not
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// evictIfSame removes userKey unless a Set replaced the entry meanwhile
func (m *Memory) evictIfSame(userKey string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries[userKey] == e {
		delete(m.entries, userKey)
	}
}

func (m *Memory) miss(userKey string, n int, reason string) {
	metrics.RecordResolution(reason)
	m.logger.Debug("reference miss", "user", userKey, "ref", n, "reason", reason)
}
