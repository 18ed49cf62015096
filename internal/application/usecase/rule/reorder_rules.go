package rule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/application/adapter"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

// ReorderRulesInput represents the input for rule reordering.
type ReorderRulesInput struct {
	UserID uuid.UUID
	IDs    []uuid.UUID // Desired order; must be a permutation of the user's rules
}

// ReorderRulesUseCase handles rule reordering logic.
type ReorderRulesUseCase struct {
	ruleRepo adapter.RuleRepository
	events   adapter.EventPublisher
}

// NewReorderRulesUseCase creates a new ReorderRulesUseCase instance.
func NewReorderRulesUseCase(ruleRepo adapter.RuleRepository, events adapter.EventPublisher) *ReorderRulesUseCase {
	return &ReorderRulesUseCase{ruleRepo: ruleRepo, events: events}
}

// Execute rewrites the persisted order of the user's rules. The request
// must cover exactly the existing rule set, with no omissions, unknown
// IDs or duplicates; otherwise nothing changes.
func (uc *ReorderRulesUseCase) Execute(ctx context.Context, input ReorderRulesInput) error {
	existing, err := uc.ruleRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	if len(input.IDs) != len(existing) {
		return reorderMismatch()
	}

	known := make(map[uuid.UUID]struct{}, len(existing))
	for _, rule := range existing {
		known[rule.ID] = struct{}{}
	}
	seen := make(map[uuid.UUID]struct{}, len(input.IDs))
	for _, id := range input.IDs {
		if _, ok := known[id]; !ok {
			return reorderMismatch()
		}
		if _, dup := seen[id]; dup {
			return reorderMismatch()
		}
		seen[id] = struct{}{}
	}

	if err := uc.ruleRepo.ReorderPositions(ctx, input.UserID, input.IDs); err != nil {
		return fmt.Errorf("failed to reorder rules: %w", err)
	}

	_ = uc.events.Publish(ctx, adapter.TopicRulesChanged, input.UserID, nil)

	return nil
}

func reorderMismatch() error {
	return domainerror.NewRuleError(
		domainerror.ErrCodeReorderSetMismatch,
		"ids must cover exactly the existing rule set",
		domainerror.ErrReorderSetMismatch,
	)
}
