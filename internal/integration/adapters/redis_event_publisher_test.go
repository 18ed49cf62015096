package adapters

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/application/adapter"
)

func TestRedisEventPublisher(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestRedis(t)
	publisher := NewRedisEventPublisher(client)
	userID := uuid.New()

	sub := client.Subscribe(ctx, EventChannel(userID))
	t.Cleanup(func() { _ = sub.Close() })
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	err := publisher.Publish(ctx, adapter.TopicRulesChanged, userID, map[string]any{"updated": 3})
	if err != nil {
		t.Fatalf("failed to publish: %v", err)
	}

	select {
	case msg := <-sub.Channel():
		var received event
		if err := json.Unmarshal([]byte(msg.Payload), &received); err != nil {
			t.Fatalf("failed to decode event: %v", err)
		}
		if received.Topic != adapter.TopicRulesChanged {
			t.Errorf("expected topic %s, got %s", adapter.TopicRulesChanged, received.Topic)
		}
		if received.UserID != userID {
			t.Error("expected the event to carry the user id")
		}
		if received.OccurredAt.IsZero() {
			t.Error("expected a timestamp on the event")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the event")
	}
}
