// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a financial transaction in the BudgetLoom system.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal // Negative for expenses, positive for income
	CategoryID  *uuid.UUID      // Optional, can be uncategorized
	Tags        []string
	Verified    bool       // Set by a human review or a rule run
	AssignedTo  *uuid.UUID // Optional household member
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	categoryID *uuid.UUID,
	notes string,
) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      amount,
		CategoryID:  categoryID,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasTag reports whether the transaction already carries the given tag.
func (t *Transaction) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// TransactionChange is a partial update to a single transaction produced
// by a rule run. Only the fields a winning rule controls are present;
// AssignedTo carries the post-change value (it equals the transaction's
// current assignee when the rule leaves assignment unchanged).
type TransactionChange struct {
	TransactionID uuid.UUID
	CategoryID    uuid.UUID
	Tags          []string
	Verified      bool
	AssignedTo    *uuid.UUID
}

// TransactionWithCategory represents a transaction with its associated category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
