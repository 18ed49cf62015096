package rule

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/entity"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

func TestReorderRulesUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	categoryID := uuid.New()

	seed := func() (*ReorderRulesUseCase, *fakeRuleRepo, *fakeEventPublisher, []*entity.Rule) {
		ruleRepo := &fakeRuleRepo{}
		for i := 0; i < 3; i++ {
			ruleRepo.rules = append(ruleRepo.rules, entity.NewRule(userID, []string{"kw"}, categoryID, 0, i))
		}
		events := &fakeEventPublisher{}
		return NewReorderRulesUseCase(ruleRepo, events), ruleRepo, events, ruleRepo.rules
	}

	t.Run("persists the requested order", func(t *testing.T) {
		uc, ruleRepo, events, rules := seed()
		order := []uuid.UUID{rules[2].ID, rules[0].ID, rules[1].ID}

		if err := uc.Execute(ctx, ReorderRulesInput{UserID: userID, IDs: order}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ruleRepo.lastOrder) != 3 || ruleRepo.lastOrder[0] != rules[2].ID {
			t.Error("expected the repository to receive the requested order")
		}
		if !events.published(adapter.TopicRulesChanged) {
			t.Error("expected a rules.changed event")
		}
	})

	t.Run("rejects a partial set", func(t *testing.T) {
		uc, ruleRepo, _, rules := seed()

		err := uc.Execute(ctx, ReorderRulesInput{UserID: userID, IDs: []uuid.UUID{rules[0].ID, rules[1].ID}})
		if !errors.Is(err, domainerror.ErrReorderSetMismatch) {
			t.Errorf("expected ErrReorderSetMismatch, got %v", err)
		}
		if ruleRepo.lastOrder != nil {
			t.Error("expected no reorder to be persisted")
		}
	})

	t.Run("rejects unknown ids", func(t *testing.T) {
		uc, _, _, rules := seed()

		err := uc.Execute(ctx, ReorderRulesInput{
			UserID: userID,
			IDs:    []uuid.UUID{rules[0].ID, rules[1].ID, uuid.New()},
		})
		if !errors.Is(err, domainerror.ErrReorderSetMismatch) {
			t.Errorf("expected ErrReorderSetMismatch, got %v", err)
		}
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		uc, _, _, rules := seed()

		err := uc.Execute(ctx, ReorderRulesInput{
			UserID: userID,
			IDs:    []uuid.UUID{rules[0].ID, rules[1].ID, rules[1].ID},
		})
		if !errors.Is(err, domainerror.ErrReorderSetMismatch) {
			t.Errorf("expected ErrReorderSetMismatch, got %v", err)
		}
	})
}

func TestBulkDeleteRulesUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	categoryID := uuid.New()

	t.Run("deletes owned rules and reports the count", func(t *testing.T) {
		ruleRepo := &fakeRuleRepo{}
		mine := entity.NewRule(userID, []string{"a"}, categoryID, 0, 0)
		other := entity.NewRule(uuid.New(), []string{"b"}, categoryID, 0, 0)
		ruleRepo.rules = []*entity.Rule{mine, other}
		events := &fakeEventPublisher{}
		uc := NewBulkDeleteRulesUseCase(ruleRepo, events)

		output, err := uc.Execute(ctx, BulkDeleteRulesInput{
			UserID: userID,
			IDs:    []uuid.UUID{mine.ID, other.ID},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.DeletedCount != 1 {
			t.Errorf("expected 1 deletion, got %d", output.DeletedCount)
		}
		if !events.published(adapter.TopicRulesChanged) {
			t.Error("expected a rules.changed event")
		}
	})

	t.Run("rejects an empty id list", func(t *testing.T) {
		uc := NewBulkDeleteRulesUseCase(&fakeRuleRepo{}, &fakeEventPublisher{})

		_, err := uc.Execute(ctx, BulkDeleteRulesInput{UserID: userID})
		if !errors.Is(err, domainerror.ErrEmptyRuleIDs) {
			t.Errorf("expected ErrEmptyRuleIDs, got %v", err)
		}
	})
}
