package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shiftlens/shiftlens/internal/report"
)

// Entry is a report together with the time it was computed.
type Entry struct {
	Key       string
	Report    *report.Report
	UpdatedAt time.Time
}

// Store is a thread-safe in-memory report cache.
type Store struct {
	mu   sync.RWMutex
	data map[string]*Entry
	ttl  time.Duration
	gen  uint64
	now  func() time.Time // injectable for deterministic tests
}

// New creates a Store with the given TTL. A zero TTL disables caching:
// every entry is stale as soon as it is written.
func New(ttl time.Duration) *Store {
	return &Store{
		data: make(map[string]*Entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Put stores or replaces the report for key.
// Callers must not modify r after calling Put.
func (s *Store) Put(key string, r *report.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = &Entry{Key: key, Report: r, UpdatedAt: s.now()}
}

// Get returns the live entry for key. Entries older than the TTL are
// reported as missing.
func (s *Store) Get(key string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[key]
	if !ok || !e.UpdatedAt.After(s.now().Add(-s.ttl)) {
		return nil, false
	}
	return e, true
}

// GetOrBuild returns the cached report for key, calling build and caching
// its result on a miss. A Reset that happens while build runs discards the
// result instead of caching it.
func (s *Store) GetOrBuild(key string, build func() (*report.Report, error)) (*report.Report, error) {
	if e, ok := s.Get(key); ok {
		return e.Report, nil
	}

	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	r, err := build()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.data[key] = &Entry{Key: key, Report: r, UpdatedAt: s.now()}
	}
	return r, nil
}

// Reset drops every entry.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.data)
	s.data = make(map[string]*Entry)
	s.gen++
	slog.Debug("store: cache reset", "dropped", n)
}

// SetTTL changes the TTL applied to existing and future entries.
func (s *Store) SetTTL(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ttl = ttl
}

// Count returns the total number of entries currently held, including stale ones.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Evict removes entries whose UpdatedAt is older than now minus TTL.
// It returns the number of entries removed.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for k, e := range s.data {
		if !e.UpdatedAt.After(cutoff) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}

// Run starts the background eviction loop. It ticks at half the TTL
// (minimum 1 second) and blocks until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	s.mu.RLock()
	interval := s.ttl / 2
	s.mu.RUnlock()
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				slog.Debug("store: evicted stale reports", "count", n)
			}
		}
	}
}
