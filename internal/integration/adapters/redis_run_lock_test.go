package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mini
}

func TestRedisRunLock(t *testing.T) {
	ctx := context.Background()
	client, mini := newTestRedis(t)
	lock := NewRedisRunLock(client, time.Minute)
	userID := uuid.New()

	t.Run("first acquire succeeds", func(t *testing.T) {
		acquired, err := lock.Acquire(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !acquired {
			t.Error("expected the lock to be acquired")
		}
	})

	t.Run("second acquire is refused while held", func(t *testing.T) {
		acquired, err := lock.Acquire(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if acquired {
			t.Error("expected the lock to be held")
		}
	})

	t.Run("locks are per user", func(t *testing.T) {
		acquired, err := lock.Acquire(ctx, uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !acquired {
			t.Error("expected another user's lock to be free")
		}
	})

	t.Run("release frees the lock", func(t *testing.T) {
		if err := lock.Release(ctx, userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		acquired, err := lock.Acquire(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !acquired {
			t.Error("expected the lock to be free after release")
		}
	})

	t.Run("lock expires after the TTL", func(t *testing.T) {
		mini.FastForward(2 * time.Minute)

		acquired, err := lock.Acquire(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !acquired {
			t.Error("expected the lock to expire")
		}
	})
}
