package rule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/application/adapter"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

// DeleteRuleInput represents the input for rule deletion.
type DeleteRuleInput struct {
	UserID uuid.UUID
	RuleID uuid.UUID
}

// DeleteRuleUseCase handles rule deletion logic.
type DeleteRuleUseCase struct {
	ruleRepo adapter.RuleRepository
	events   adapter.EventPublisher
}

// NewDeleteRuleUseCase creates a new DeleteRuleUseCase instance.
func NewDeleteRuleUseCase(ruleRepo adapter.RuleRepository, events adapter.EventPublisher) *DeleteRuleUseCase {
	return &DeleteRuleUseCase{ruleRepo: ruleRepo, events: events}
}

// Execute performs the rule deletion. Remaining rules keep their relative
// order; positions are renumbered densely by the repository.
func (uc *DeleteRuleUseCase) Execute(ctx context.Context, input DeleteRuleInput) error {
	existing, err := uc.ruleRepo.FindByID(ctx, input.RuleID)
	if err != nil || existing.UserID != input.UserID {
		return domainerror.NewRuleError(
			domainerror.ErrCodeRuleNotFound,
			"rule not found",
			domainerror.ErrRuleNotFound,
		)
	}

	if err := uc.ruleRepo.Delete(ctx, input.UserID, input.RuleID); err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	_ = uc.events.Publish(ctx, adapter.TopicRulesChanged, input.UserID, nil)

	return nil
}
