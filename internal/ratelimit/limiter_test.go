package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"breakpoint/pkg/requestcontext"
)

func TestLimiterBlocksAfterLimit(t *testing.T) {
	limiter := New(NewInMemoryFailureStore(), 5, 15*time.Minute)
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), base)

	for i := range 5 {
		res, err := limiter.Check(ctx, "198.51.100.7")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "attempt %d should be allowed", i+1)
		require.NoError(t, limiter.RecordFailure(ctx, "198.51.100.7"))
	}

	res, err := limiter.Check(ctx, "198.51.100.7")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Zero(t, res.Remaining)
	assert.Equal(t, base.Add(15*time.Minute), res.ResetAt)
}

func TestLimiterSuccessDoesNotResetWindow(t *testing.T) {
	limiter := New(NewInMemoryFailureStore(), 5, 15*time.Minute)
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), base)

	// Four failures, then a success (which records nothing), then one more
	// failure: the address is now at the limit despite the success.
	for range 4 {
		require.NoError(t, limiter.RecordFailure(ctx, "198.51.100.7"))
	}
	res, err := limiter.Check(ctx, "198.51.100.7")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	require.NoError(t, limiter.RecordFailure(ctx, "198.51.100.7"))

	res, err = limiter.Check(ctx, "198.51.100.7")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestLimiterWindowExpiry(t *testing.T) {
	limiter := New(NewInMemoryFailureStore(), 5, 15*time.Minute)
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	ctx := requestcontext.WithTime(context.Background(), base)
	for range 5 {
		require.NoError(t, limiter.RecordFailure(ctx, "198.51.100.7"))
	}

	later := requestcontext.WithTime(context.Background(), base.Add(16*time.Minute))
	res, err := limiter.Check(later, "198.51.100.7")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 5, res.Remaining)
}
