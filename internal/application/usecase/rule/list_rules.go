// Package rule contains auto-categorization rule use cases.
package rule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/entity"
)

// ListRulesInput represents the input for listing rules.
type ListRulesInput struct {
	UserID uuid.UUID
}

// ListRulesOutput represents the output of listing rules.
type ListRulesOutput struct {
	Rules []*entity.RuleWithCategory
}

// ListRulesUseCase handles rule listing logic.
type ListRulesUseCase struct {
	ruleRepo adapter.RuleRepository
}

// NewListRulesUseCase creates a new ListRulesUseCase instance.
func NewListRulesUseCase(ruleRepo adapter.RuleRepository) *ListRulesUseCase {
	return &ListRulesUseCase{ruleRepo: ruleRepo}
}

// Execute retrieves the user's rules in position order.
func (uc *ListRulesUseCase) Execute(ctx context.Context, input ListRulesInput) (*ListRulesOutput, error) {
	rules, err := uc.ruleRepo.FindByUserWithCategory(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}

	return &ListRulesOutput{Rules: rules}, nil
}
