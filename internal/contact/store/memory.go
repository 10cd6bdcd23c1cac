package store

import (
	"context"
	"sort"
	"sync"

	"breakpoint/internal/contact"
)

type InMemoryStore struct {
	mu   sync.RWMutex
	subs []contact.Submission
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Create(_ context.Context, sub *contact.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, *sub)
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]contact.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]contact.Submission{}, s.subs...)
	// Stable keeps insertion order for equal timestamps.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*contact.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.subs {
		if s.subs[i].ID == id {
			sub := s.subs[i]
			return &sub, nil
		}
	}
	return nil, ErrNotFound
}
