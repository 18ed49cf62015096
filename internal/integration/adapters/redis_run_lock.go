package adapters

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/budgetloom/backend/internal/application/adapter"
)

const runLockKeyPrefix = "budgetloom:rule-run:"

// redisRunLock implements adapter.RunLock on a Redis SETNX key. The TTL
// guarantees a crashed run cannot wedge a user forever.
type redisRunLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRunLock creates a new Redis-backed run lock instance.
func NewRedisRunLock(client *redis.Client, ttl time.Duration) adapter.RunLock {
	return &redisRunLock{
		client: client,
		ttl:    ttl,
	}
}

// Acquire attempts to take the run lock for a user.
func (l *redisRunLock) Acquire(ctx context.Context, userID uuid.UUID) (bool, error) {
	return l.client.SetNX(ctx, runLockKey(userID), time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
}

// Release frees the run lock for a user.
func (l *redisRunLock) Release(ctx context.Context, userID uuid.UUID) error {
	return l.client.Del(ctx, runLockKey(userID)).Err()
}

func runLockKey(userID uuid.UUID) string {
	return runLockKeyPrefix + userID.String()
}
