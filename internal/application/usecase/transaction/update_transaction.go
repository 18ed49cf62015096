package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/entity"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction updates.
// Nil pointer fields are left unchanged; the Clear flags remove optional
// values.
type UpdateTransactionInput struct {
	UserID          uuid.UUID
	TransactionID   uuid.UUID
	Date            *time.Time
	Description     *string
	Amount          *decimal.Decimal
	CategoryID      *uuid.UUID
	ClearCategory   bool
	Tags            []string // nil means unchanged
	Verified        *bool
	AssignedTo      *uuid.UUID
	ClearAssignedTo bool
	Notes           *string
}

// UpdateTransactionOutput represents the output of a transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	memberRepo      adapter.MemberRepository
	events          adapter.EventPublisher
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	memberRepo adapter.MemberRepository,
	events adapter.EventPublisher,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		memberRepo:      memberRepo,
		events:          events,
	}
}

// Execute performs the transaction update. Manually setting a category
// marks the transaction verified unless the request says otherwise; a
// human decision outranks whatever a rule run would do later.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	existing, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil || existing.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	if input.Date != nil {
		existing.Date = *input.Date
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionMissingField,
				"description cannot be empty",
				domainerror.ErrTransactionMissingFields,
			)
		}
		existing.Description = description
	}
	if input.Amount != nil {
		existing.Amount = *input.Amount
	}

	if input.ClearCategory {
		existing.CategoryID = nil
	} else if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil || category.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		existing.CategoryID = input.CategoryID
		if input.Verified == nil {
			existing.Verified = true
		}
	}

	if input.Tags != nil {
		existing.Tags = input.Tags
	}
	if input.Verified != nil {
		existing.Verified = *input.Verified
	}

	if input.ClearAssignedTo {
		existing.AssignedTo = nil
	} else if input.AssignedTo != nil {
		member, err := uc.memberRepo.FindByID(ctx, *input.AssignedTo)
		if err != nil || member.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnMemberNotFound,
				"household member not found",
				domainerror.ErrMemberNotFoundForTransaction,
			)
		}
		existing.AssignedTo = input.AssignedTo
	}

	if input.Notes != nil {
		existing.Notes = *input.Notes
	}

	existing.UpdatedAt = time.Now().UTC()
	if err := uc.transactionRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	_ = uc.events.Publish(ctx, adapter.TopicTransactionsChanged, input.UserID, nil)

	return &UpdateTransactionOutput{Transaction: existing}, nil
}
