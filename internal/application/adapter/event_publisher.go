// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// Event topics published when server-side state changes behind the
// client's back, so connected clients can refetch.
const (
	TopicRulesChanged        = "rules.changed"
	TopicTransactionsChanged = "transactions.changed"
)

// EventPublisher defines the interface for publishing change notifications.
type EventPublisher interface {
	// Publish emits an event on the given topic for a user.
	Publish(ctx context.Context, topic string, userID uuid.UUID, payload any) error
}
