package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"breakpoint/pkg/requestcontext"
)

// RedisFailureStore implements the sliding window on a redis sorted set, one
// member per failure scored by its timestamp. Useful when the API runs more
// than one replica behind a load balancer.
type RedisFailureStore struct {
	client *redis.Client
}

func NewRedisFailureStore(client *redis.Client) *RedisFailureStore {
	return &RedisFailureStore{client: client}
}

func failureKey(key string) string {
	return "login:failures:" + key
}

func (s *RedisFailureStore) Failures(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	now := requestcontext.Now(ctx)
	rkey := failureKey(key)
	cutoff := float64(now.Add(-window).UnixNano())

	pipe := s.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, rkey, "-inf", fmt.Sprintf("%f", cutoff))
	countCmd := pipe.ZCard(ctx, rkey)
	oldestCmd := pipe.ZRangeWithScores(ctx, rkey, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("redis failure count: %w", err)
	}

	count := int(countCmd.Val())
	if count == 0 {
		return 0, time.Time{}, nil
	}

	oldest := time.Time{}
	if members := oldestCmd.Val(); len(members) > 0 {
		oldest = time.Unix(0, int64(members[0].Score))
	}
	return count, oldest, nil
}

func (s *RedisFailureStore) RecordFailure(ctx context.Context, key string, window time.Duration) error {
	now := requestcontext.Now(ctx)
	rkey := failureKey(key)

	pipe := s.client.Pipeline()
	pipe.ZAdd(ctx, rkey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	// Keep the key from leaking if an address never comes back.
	pipe.Expire(ctx, rkey, window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis record failure: %w", err)
	}
	return nil
}
