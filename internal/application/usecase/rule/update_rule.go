package rule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/entity"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

// UpdateRuleInput represents the input for rule updates. Nil pointer
// fields are left unchanged; the Clear flags remove optional values.
type UpdateRuleInput struct {
	UserID         uuid.UUID
	RuleID         uuid.UUID
	Keywords       []string // nil means unchanged
	CategoryID     *uuid.UUID
	Priority       *int
	MinAmount      *decimal.Decimal
	MaxAmount      *decimal.Decimal
	ClearMinAmount bool
	ClearMaxAmount bool
	ApplyTags      []string // nil means unchanged
	MarkForReview  *bool
	AssignTo       *uuid.UUID
	ClearAssignTo  bool
}

// UpdateRuleOutput represents the output of a rule update.
type UpdateRuleOutput struct {
	Rule *entity.RuleWithCategory
}

// UpdateRuleUseCase handles rule update logic.
type UpdateRuleUseCase struct {
	ruleRepo     adapter.RuleRepository
	categoryRepo adapter.CategoryRepository
	memberRepo   adapter.MemberRepository
	events       adapter.EventPublisher
}

// NewUpdateRuleUseCase creates a new UpdateRuleUseCase instance.
func NewUpdateRuleUseCase(
	ruleRepo adapter.RuleRepository,
	categoryRepo adapter.CategoryRepository,
	memberRepo adapter.MemberRepository,
	events adapter.EventPublisher,
) *UpdateRuleUseCase {
	return &UpdateRuleUseCase{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
		memberRepo:   memberRepo,
		events:       events,
	}
}

// Execute performs the rule update.
func (uc *UpdateRuleUseCase) Execute(ctx context.Context, input UpdateRuleInput) (*UpdateRuleOutput, error) {
	existing, err := uc.ruleRepo.FindByID(ctx, input.RuleID)
	if err != nil || existing.UserID != input.UserID {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeRuleNotFound,
			"rule not found",
			domainerror.ErrRuleNotFound,
		)
	}

	if input.Keywords != nil {
		keywords := entity.NormalizeKeywords(input.Keywords)
		if len(keywords) == 0 {
			return nil, domainerror.NewRuleError(
				domainerror.ErrCodeRuleEmptyKeywords,
				"at least one keyword is required",
				domainerror.ErrRuleEmptyKeywords,
			)
		}
		existing.Keywords = keywords
	}

	if input.CategoryID != nil {
		existing.CategoryID = *input.CategoryID
	}
	if input.Priority != nil {
		existing.Priority = *input.Priority
	}

	if input.ClearMinAmount {
		existing.MinAmount = nil
	} else if input.MinAmount != nil {
		existing.MinAmount = input.MinAmount
	}
	if input.ClearMaxAmount {
		existing.MaxAmount = nil
	} else if input.MaxAmount != nil {
		existing.MaxAmount = input.MaxAmount
	}
	if err := validateAmountBounds(existing.MinAmount, existing.MaxAmount); err != nil {
		return nil, err
	}

	if input.ApplyTags != nil {
		existing.ApplyTags = normalizeTags(input.ApplyTags)
	}
	if input.MarkForReview != nil {
		existing.MarkForReview = *input.MarkForReview
	}

	if input.ClearAssignTo {
		existing.AssignTo = nil
	} else if input.AssignTo != nil {
		member, err := uc.memberRepo.FindByID(ctx, *input.AssignTo)
		if err != nil || member.UserID != input.UserID {
			return nil, domainerror.NewRuleError(
				domainerror.ErrCodeMemberNotFoundRule,
				"household member not found",
				domainerror.ErrMemberNotFoundForRule,
			)
		}
		existing.AssignTo = input.AssignTo
	}

	// Verify the (possibly updated) category exists and belongs to the user.
	category, err := uc.categoryRepo.FindByID(ctx, existing.CategoryID)
	if err != nil || category.UserID != input.UserID {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeCategoryNotFoundRule,
			"category not found",
			domainerror.ErrCategoryNotFoundForRule,
		)
	}

	existing.UpdatedAt = time.Now().UTC()
	if err := uc.ruleRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update rule: %w", err)
	}

	_ = uc.events.Publish(ctx, adapter.TopicRulesChanged, input.UserID, nil)

	return &UpdateRuleOutput{
		Rule: &entity.RuleWithCategory{Rule: existing, Category: category},
	}, nil
}
