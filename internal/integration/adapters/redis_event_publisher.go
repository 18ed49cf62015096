package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/budgetloom/backend/internal/application/adapter"
)

const eventChannelPrefix = "budgetloom:events:"

// event is the wire format published on a user's event channel.
type event struct {
	Topic      string    `json:"topic"`
	UserID     uuid.UUID `json:"userId"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// redisEventPublisher implements adapter.EventPublisher on Redis pub/sub.
// Connected API instances subscribe to the user's channel and forward
// events to clients so they refetch after server-side changes.
type redisEventPublisher struct {
	client *redis.Client
}

// NewRedisEventPublisher creates a new Redis-backed event publisher instance.
func NewRedisEventPublisher(client *redis.Client) adapter.EventPublisher {
	return &redisEventPublisher{
		client: client,
	}
}

// Publish emits an event on the user's channel.
func (p *redisEventPublisher) Publish(ctx context.Context, topic string, userID uuid.UUID, payload any) error {
	body, err := json.Marshal(event{
		Topic:      topic,
		UserID:     userID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.client.Publish(ctx, EventChannel(userID), body).Err()
}

// EventChannel returns the pub/sub channel name for a user.
func EventChannel(userID uuid.UUID) string {
	return eventChannelPrefix + userID.String()
}
