package rule

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/entity"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

// CreateRuleInput represents the input for rule creation.
type CreateRuleInput struct {
	UserID        uuid.UUID
	Keywords      []string
	CategoryID    uuid.UUID
	Priority      *int // Optional, defaults to max existing priority + margin
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	ApplyTags     []string
	MarkForReview bool
	AssignTo      *uuid.UUID
}

// CreateRuleOutput represents the output of rule creation.
type CreateRuleOutput struct {
	Rule *entity.RuleWithCategory
}

// CreateRuleUseCase handles rule creation logic.
type CreateRuleUseCase struct {
	ruleRepo       adapter.RuleRepository
	categoryRepo   adapter.CategoryRepository
	memberRepo     adapter.MemberRepository
	events         adapter.EventPublisher
	priorityMargin int
}

// NewCreateRuleUseCase creates a new CreateRuleUseCase instance.
func NewCreateRuleUseCase(
	ruleRepo adapter.RuleRepository,
	categoryRepo adapter.CategoryRepository,
	memberRepo adapter.MemberRepository,
	events adapter.EventPublisher,
	priorityMargin int,
) *CreateRuleUseCase {
	return &CreateRuleUseCase{
		ruleRepo:       ruleRepo,
		categoryRepo:   categoryRepo,
		memberRepo:     memberRepo,
		events:         events,
		priorityMargin: priorityMargin,
	}
}

// Execute performs the rule creation.
func (uc *CreateRuleUseCase) Execute(ctx context.Context, input CreateRuleInput) (*CreateRuleOutput, error) {
	keywords := entity.NormalizeKeywords(input.Keywords)
	if len(keywords) == 0 {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeRuleEmptyKeywords,
			"at least one keyword is required",
			domainerror.ErrRuleEmptyKeywords,
		)
	}

	if input.CategoryID == uuid.Nil {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeRuleMissingCategory,
			"category is required",
			domainerror.ErrRuleMissingCategory,
		)
	}

	if err := validateAmountBounds(input.MinAmount, input.MaxAmount); err != nil {
		return nil, err
	}

	// Verify category exists and belongs to the user.
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil || category.UserID != input.UserID {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeCategoryNotFoundRule,
			"category not found",
			domainerror.ErrCategoryNotFoundForRule,
		)
	}

	if input.AssignTo != nil {
		if err := uc.verifyMember(ctx, input.UserID, *input.AssignTo); err != nil {
			return nil, err
		}
	}

	// New rules land at the end of the persisted order, with a priority
	// margin above every existing rule so they win ties by default.
	priority := 0
	if input.Priority != nil {
		priority = *input.Priority
	} else {
		maxPriority, err := uc.ruleRepo.MaxPriorityByUser(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get max priority: %w", err)
		}
		priority = maxPriority + uc.priorityMargin
	}

	maxPosition, err := uc.ruleRepo.MaxPositionByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get max position: %w", err)
	}

	newRule := entity.NewRule(input.UserID, keywords, input.CategoryID, priority, maxPosition+1)
	newRule.MinAmount = input.MinAmount
	newRule.MaxAmount = input.MaxAmount
	newRule.ApplyTags = normalizeTags(input.ApplyTags)
	newRule.MarkForReview = input.MarkForReview
	newRule.AssignTo = input.AssignTo

	if err := uc.ruleRepo.Create(ctx, newRule); err != nil {
		return nil, fmt.Errorf("failed to create rule: %w", err)
	}

	_ = uc.events.Publish(ctx, adapter.TopicRulesChanged, input.UserID, nil)

	return &CreateRuleOutput{
		Rule: &entity.RuleWithCategory{Rule: newRule, Category: category},
	}, nil
}

func (uc *CreateRuleUseCase) verifyMember(ctx context.Context, userID, memberID uuid.UUID) error {
	member, err := uc.memberRepo.FindByID(ctx, memberID)
	if err != nil || member.UserID != userID {
		return domainerror.NewRuleError(
			domainerror.ErrCodeMemberNotFoundRule,
			"household member not found",
			domainerror.ErrMemberNotFoundForRule,
		)
	}
	return nil
}

// validateAmountBounds rejects negative bounds and inverted ranges.
// Bounds are compared against the absolute transaction amount, so a
// negative bound can never match anything.
func validateAmountBounds(min, max *decimal.Decimal) error {
	if min != nil && min.IsNegative() || max != nil && max.IsNegative() {
		return domainerror.NewRuleError(
			domainerror.ErrCodeInvalidAmountBounds,
			"amount bounds must not be negative",
			domainerror.ErrInvalidAmountBounds,
		)
	}
	if min != nil && max != nil && min.Cmp(*max) > 0 {
		return domainerror.NewRuleError(
			domainerror.ErrCodeInvalidAmountBounds,
			"minAmount must not exceed maxAmount",
			domainerror.ErrInvalidAmountBounds,
		)
	}
	return nil
}

// normalizeTags trims tags and drops empties, preserving case and order.
func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		normalized = append(normalized, trimmed)
	}
	return normalized
}
