// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/domain/entity"
)

// RuleRepository defines the interface for categorization rule persistence operations.
type RuleRepository interface {
	// Create creates a new rule in the database.
	Create(ctx context.Context, rule *entity.Rule) error

	// FindByID retrieves a rule by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rule, error)

	// FindByUser retrieves all rules for a user, ordered by position ascending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Rule, error)

	// FindByUserWithCategory retrieves all rules for a user with their
	// category preloaded, ordered by position ascending.
	FindByUserWithCategory(ctx context.Context, userID uuid.UUID) ([]*entity.RuleWithCategory, error)

	// Update updates an existing rule in the database.
	Update(ctx context.Context, rule *entity.Rule) error

	// Delete removes a rule and renumbers the remaining positions densely.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// BulkDelete removes the given rules and renumbers the remaining
	// positions densely, all in one transaction. Returns the number of
	// rules actually deleted.
	BulkDelete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)

	// ReorderPositions atomically rewrites the positions of a user's rules
	// to match the order of ids (first id gets position 0).
	ReorderPositions(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error

	// MaxPriorityByUser returns the highest priority among a user's rules,
	// or 0 when the user has none.
	MaxPriorityByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// MaxPositionByUser returns the highest position among a user's rules,
	// or -1 when the user has none.
	MaxPositionByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
