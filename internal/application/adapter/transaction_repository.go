// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetloom/backend/internal/domain/entity"
)

// TransactionFilter represents the filters for transaction queries.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	Verified   *bool
	AssignedTo *uuid.UUID
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Search     string
	Page       int
	Limit      int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByUser retrieves transactions for a user matching the filter,
	// ordered by date descending.
	FindByUser(ctx context.Context, userID uuid.UUID, filter TransactionFilter) (*entity.TransactionListResult, error)

	// FindAllByUser retrieves every non-deleted transaction for a user,
	// ordered by date descending. Used by rule preview and bulk runs.
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// ApplyChange applies a categorization change to a single transaction.
	ApplyChange(ctx context.Context, userID uuid.UUID, change entity.TransactionChange) error
}
