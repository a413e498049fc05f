package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fetchLockKey = "careertracker:fetch:lock"
	fetchLockTTL = 30 * time.Minute
)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// RunLock is a best-effort distributed lock for fetch passes, so overlapping
// schedules across replicas do not hammer the providers. Persistence-level
// dedup keeps the pass idempotent even without it.
type RunLock struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewRunLock(rdb *redis.Client) *RunLock {
	return &RunLock{
		rdb: rdb,
		key: fetchLockKey,
		ttl: fetchLockTTL,
	}
}

func (l *RunLock) TryLock(ctx context.Context) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, l.key, "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire fetch lock: %w", err)
	}
	return ok, nil
}

func (l *RunLock) Unlock(ctx context.Context) error {
	if err := l.rdb.Del(ctx, l.key).Err(); err != nil {
		return fmt.Errorf("release fetch lock: %w", err)
	}
	return nil
}
