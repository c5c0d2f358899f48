// Package ratelimit provides a fixed-window request counter. The in-memory
// implementation is approximate under multi-process deployment; the Store
// interface lets a shared backend replace it without changing call sites.
package ratelimit

import (
	"sync"
	"time"
)

// Result reports the outcome of one rate-limit check.
type Result struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetTime time.Time `json:"resetTime"`
}

// Store counts requests per key within a fixed window.
type Store interface {
	Check(key string, max int, window time.Duration) Result
}

type windowEntry struct {
	count   int
	resetAt time.Time
}

// MemoryStore is the in-process implementation backed by a mutex-guarded map.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

// Check increments the counter for key and reports whether the request fits
// inside the current window.
func (s *MemoryStore) Check(key string, max int, window time.Duration) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || now.After(entry.resetAt) {
		entry = &windowEntry{count: 0, resetAt: now.Add(window)}
		s.entries[key] = entry
	}

	if entry.count >= max {
		return Result{Allowed: false, Remaining: 0, ResetTime: entry.resetAt}
	}

	entry.count++
	return Result{
		Allowed:   true,
		Remaining: max - entry.count,
		ResetTime: entry.resetAt,
	}
}
