package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"breakpoint/pkg/requestcontext"
)

type InMemoryFailureStoreSuite struct {
	suite.Suite
	store *InMemoryFailureStore
}

func TestInMemoryFailureStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryFailureStoreSuite))
}

func (s *InMemoryFailureStoreSuite) SetupTest() {
	s.store = NewInMemoryFailureStore()
}

func (s *InMemoryFailureStoreSuite) TestUnknownKeyHasNoFailures() {
	count, oldest, err := s.store.Failures(context.Background(), "198.51.100.7", 15*time.Minute)
	s.NoError(err)
	s.Zero(count)
	s.True(oldest.IsZero())
}

func (s *InMemoryFailureStoreSuite) TestFailuresAccumulateWithinWindow() {
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	for i := range 3 {
		ctx := requestcontext.WithTime(context.Background(), base.Add(time.Duration(i)*time.Minute))
		s.Require().NoError(s.store.RecordFailure(ctx, "198.51.100.7", window))
	}

	ctx := requestcontext.WithTime(context.Background(), base.Add(5*time.Minute))
	count, oldest, err := s.store.Failures(ctx, "198.51.100.7", window)
	s.NoError(err)
	s.Equal(3, count)
	s.Equal(base, oldest)
}

func (s *InMemoryFailureStoreSuite) TestOldFailuresSlideOut() {
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	ctx := requestcontext.WithTime(context.Background(), base)
	s.Require().NoError(s.store.RecordFailure(ctx, "198.51.100.7", window))

	ctx = requestcontext.WithTime(context.Background(), base.Add(10*time.Minute))
	s.Require().NoError(s.store.RecordFailure(ctx, "198.51.100.7", window))

	// 16 minutes after the first failure: only the second one remains.
	ctx = requestcontext.WithTime(context.Background(), base.Add(16*time.Minute))
	count, oldest, err := s.store.Failures(ctx, "198.51.100.7", window)
	s.NoError(err)
	s.Equal(1, count)
	s.Equal(base.Add(10*time.Minute), oldest)
}

func (s *InMemoryFailureStoreSuite) TestKeysAreIndependent() {
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	ctx := requestcontext.WithTime(context.Background(), base)
	s.Require().NoError(s.store.RecordFailure(ctx, "198.51.100.7", window))

	count, _, err := s.store.Failures(ctx, "203.0.113.1", window)
	s.NoError(err)
	s.Zero(count)
}

func (s *InMemoryFailureStoreSuite) TestConcurrentFailuresAreNotUndercounted() {
	const attempts = 50
	window := 15 * time.Minute

	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.store.RecordFailure(context.Background(), "198.51.100.7", window)
		}()
	}
	wg.Wait()

	count, _, err := s.store.Failures(context.Background(), "198.51.100.7", window)
	s.NoError(err)
	s.Equal(attempts, count)
}
