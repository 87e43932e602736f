package persistence

import (
	"context"
	"errors"
	"time"
)

// SweepLock is a coarse run-lock backed by Redis SET NX. It keeps the due
// sweep from running concurrently with itself, including across replicas.
type SweepLock struct {
	redis *Redis
	key   string
}

// NewSweepLock builds a lock on the given key.
func NewSweepLock(redis *Redis, key string) *SweepLock {
	return &SweepLock{redis: redis, key: key}
}

// TryLock attempts to take the lock for ttl. It returns false when another
// holder has it.
func (l *SweepLock) TryLock(ctx context.Context, ttl time.Duration) (bool, error) {
	if l.redis == nil || l.redis.Client == nil {
		return false, errors.New("redis client not configured")
	}
	return l.redis.Client.SetNX(ctx, l.key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

// Unlock releases the lock. Expiry covers the case where release fails.
func (l *SweepLock) Unlock(ctx context.Context) error {
	if l.redis == nil || l.redis.Client == nil {
		return nil
	}
	return l.redis.Client.Del(ctx, l.key).Err()
}
