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

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID
	Tags        []string
	AssignedTo  *uuid.UUID
	Notes       string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	memberRepo      adapter.MemberRepository
	events          adapter.EventPublisher
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	memberRepo adapter.MemberRepository,
	events adapter.EventPublisher,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		memberRepo:      memberRepo,
		events:          events,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" || input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionMissingField,
			"date and description are required",
			domainerror.ErrTransactionMissingFields,
		)
	}

	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil || category.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
	}

	if input.AssignedTo != nil {
		member, err := uc.memberRepo.FindByID(ctx, *input.AssignedTo)
		if err != nil || member.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnMemberNotFound,
				"household member not found",
				domainerror.ErrMemberNotFoundForTransaction,
			)
		}
	}

	tx := entity.NewTransaction(input.UserID, input.Date, description, input.Amount, input.CategoryID, input.Notes)
	tx.Tags = input.Tags
	tx.AssignedTo = input.AssignedTo

	if err := uc.transactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	_ = uc.events.Publish(ctx, adapter.TopicTransactionsChanged, input.UserID, nil)

	return &CreateTransactionOutput{Transaction: tx}, nil
}
