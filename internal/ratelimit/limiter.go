// Package ratelimit throttles login attempts per client address. Only failed
// attempts count toward the limit; a successful login neither accumulates nor
// resets the window, so a legitimate admin cannot lock themselves out by
// logging in while an attacker keeps guessing.
package ratelimit

import (
	"context"
	"time"

	"breakpoint/pkg/requestcontext"
)

// FailureStore tracks failure timestamps per key within a sliding window.
type FailureStore interface {
	// Failures returns the current in-window failure count for key and the
	// oldest in-window failure time (zero when count is 0).
	Failures(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
	// RecordFailure appends one failure stamped with the request-scoped time.
	RecordFailure(ctx context.Context, key string, window time.Duration) error
}

// Result describes one limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter applies a fixed failures-per-window policy over a FailureStore.
type Limiter struct {
	store  FailureStore
	limit  int
	window time.Duration
}

func New(store FailureStore, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window}
}

// Check reports whether another attempt from key may proceed. It never
// increments anything; failures are recorded separately once the attempt's
// outcome is known.
func (l *Limiter) Check(ctx context.Context, key string) (*Result, error) {
	count, oldest, err := l.store.Failures(ctx, key, l.window)
	if err != nil {
		return nil, err
	}

	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	resetAt := requestcontext.Now(ctx).Add(l.window)
	if count > 0 {
		resetAt = oldest.Add(l.window)
	}

	return &Result{
		Allowed:   count < l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

// RecordFailure counts one failed attempt against key.
func (l *Limiter) RecordFailure(ctx context.Context, key string) error {
	return l.store.RecordFailure(ctx, key, l.window)
}

// Window exposes the policy window for response copy ("try again after ...").
func (l *Limiter) Window() time.Duration {
	return l.window
}
