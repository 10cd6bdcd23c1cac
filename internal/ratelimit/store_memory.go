package ratelimit

import (
	"context"
	"sync"
	"time"

	"breakpoint/pkg/requestcontext"
)

// InMemoryFailureStore keeps per-key failure timestamps behind one mutex.
// All mutation goes through that lock, so concurrent failures from the same
// address are never undercounted.
type InMemoryFailureStore struct {
	mu       sync.Mutex
	failures map[string][]time.Time
}

func NewInMemoryFailureStore() *InMemoryFailureStore {
	return &InMemoryFailureStore{failures: make(map[string][]time.Time)}
}

func (s *InMemoryFailureStore) Failures(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamps := s.prune(key, requestcontext.Now(ctx), window)
	if len(stamps) == 0 {
		return 0, time.Time{}, nil
	}
	return len(stamps), stamps[0], nil
}

func (s *InMemoryFailureStore) RecordFailure(ctx context.Context, key string, window time.Duration) error {
	now := requestcontext.Now(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	stamps := s.prune(key, now, window)
	s.failures[key] = append(stamps, now)
	return nil
}

// prune drops timestamps older than the window. Must be called holding s.mu.
func (s *InMemoryFailureStore) prune(key string, now time.Time, window time.Duration) []time.Time {
	stamps := s.failures[key]
	cutoff := now.Add(-window)
	i := 0
	for ; i < len(stamps); i++ {
		if stamps[i].After(cutoff) {
			break
		}
	}
	stamps = stamps[i:]
	if len(stamps) == 0 {
		delete(s.failures, key)
	} else {
		s.failures[key] = stamps
	}
	return stamps
}
