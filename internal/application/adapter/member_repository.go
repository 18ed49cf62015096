// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/domain/entity"
)

// MemberRepository defines the interface for household member persistence operations.
type MemberRepository interface {
	// Create creates a new household member in the database.
	Create(ctx context.Context, member *entity.Member) error

	// FindByID retrieves a member by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error)

	// FindByUser retrieves all members of a user's household.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Member, error)

	// Delete removes a member from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
