package rule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/application/adapter"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

// BulkDeleteRulesInput represents the input for bulk rule deletion.
type BulkDeleteRulesInput struct {
	UserID uuid.UUID
	IDs    []uuid.UUID
}

// BulkDeleteRulesOutput represents the output of bulk rule deletion.
type BulkDeleteRulesOutput struct {
	DeletedCount int
}

// BulkDeleteRulesUseCase handles bulk rule deletion logic.
type BulkDeleteRulesUseCase struct {
	ruleRepo adapter.RuleRepository
	events   adapter.EventPublisher
}

// NewBulkDeleteRulesUseCase creates a new BulkDeleteRulesUseCase instance.
func NewBulkDeleteRulesUseCase(ruleRepo adapter.RuleRepository, events adapter.EventPublisher) *BulkDeleteRulesUseCase {
	return &BulkDeleteRulesUseCase{ruleRepo: ruleRepo, events: events}
}

// Execute deletes the given rules in one transaction. IDs that do not
// belong to the user are ignored; remaining rules keep their relative
// order with positions renumbered densely.
func (uc *BulkDeleteRulesUseCase) Execute(ctx context.Context, input BulkDeleteRulesInput) (*BulkDeleteRulesOutput, error) {
	if len(input.IDs) == 0 {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeEmptyRuleIDs,
			"rule IDs list cannot be empty",
			domainerror.ErrEmptyRuleIDs,
		)
	}

	deleted, err := uc.ruleRepo.BulkDelete(ctx, input.UserID, input.IDs)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk delete rules: %w", err)
	}

	if deleted > 0 {
		_ = uc.events.Publish(ctx, adapter.TopicRulesChanged, input.UserID, nil)
	}

	return &BulkDeleteRulesOutput{DeletedCount: deleted}, nil
}
