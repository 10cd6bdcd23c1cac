// Package memory implements the audit store in memory for tests and local
// development without a writable filesystem.
package memory

import (
	"context"
	"sync"

	"breakpoint/internal/audit"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, e audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func (s *InMemoryStore) Tail(_ context.Context, n int) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if len(s.entries) > n {
		start = len(s.entries) - n
	}
	tail := s.entries[start:]
	out := make([]audit.Entry, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out, nil
}

// All returns every entry in append order; test helper.
func (s *InMemoryStore) All() []audit.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Entry{}, s.entries...)
}
