package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetloom/backend/internal/domain/entity"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

func seedRules(t *testing.T, repo *ruleRepository, userID uuid.UUID, count int) []*entity.Rule {
	t.Helper()
	ctx := context.Background()
	categoryID := uuid.New()

	rules := make([]*entity.Rule, 0, count)
	for i := 0; i < count; i++ {
		rule := entity.NewRule(userID, []string{"keyword"}, categoryID, i*10, i)
		if err := repo.Create(ctx, rule); err != nil {
			t.Fatalf("failed to seed rule: %v", err)
		}
		rules = append(rules, rule)
	}
	return rules
}

func TestRuleRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewRuleRepository(newTestDB(t)).(*ruleRepository)
	userID := uuid.New()

	t.Run("round-trips every field", func(t *testing.T) {
		min := decimal.RequireFromString("10.50")
		max := decimal.RequireFromString("99.99")
		assignee := uuid.New()

		rule := entity.NewRule(userID, []string{"netflix", "nflx"}, uuid.New(), 20, 0)
		rule.MinAmount = &min
		rule.MaxAmount = &max
		rule.ApplyTags = []string{"streaming", "fixed"}
		rule.MarkForReview = true
		rule.AssignTo = &assignee

		if err := repo.Create(ctx, rule); err != nil {
			t.Fatalf("failed to create rule: %v", err)
		}

		found, err := repo.FindByID(ctx, rule.ID)
		if err != nil {
			t.Fatalf("failed to find rule: %v", err)
		}
		if len(found.Keywords) != 2 || found.Keywords[0] != "netflix" || found.Keywords[1] != "nflx" {
			t.Errorf("keywords not preserved: %v", found.Keywords)
		}
		if found.MinAmount == nil || !found.MinAmount.Equal(min) {
			t.Error("min amount not preserved")
		}
		if found.MaxAmount == nil || !found.MaxAmount.Equal(max) {
			t.Error("max amount not preserved")
		}
		if len(found.ApplyTags) != 2 {
			t.Errorf("apply tags not preserved: %v", found.ApplyTags)
		}
		if !found.MarkForReview {
			t.Error("mark for review not preserved")
		}
		if found.AssignTo == nil || *found.AssignTo != assignee {
			t.Error("assignee not preserved")
		}
	})

	t.Run("unknown id returns domain error", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		if !errors.Is(err, domainerror.ErrRuleNotFound) {
			t.Errorf("expected ErrRuleNotFound, got %v", err)
		}
	})
}

func TestRuleRepository_FindByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewRuleRepository(newTestDB(t)).(*ruleRepository)
	userID := uuid.New()
	seedRules(t, repo, userID, 3)
	seedRules(t, repo, uuid.New(), 2) // other user's rules

	rules, err := repo.FindByUser(ctx, userID)
	if err != nil {
		t.Fatalf("failed to list rules: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	for i, rule := range rules {
		if rule.Position != i {
			t.Errorf("expected position order, got position %d at index %d", rule.Position, i)
		}
	}
}

func TestRuleRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewRuleRepository(newTestDB(t)).(*ruleRepository)
	userID := uuid.New()
	rules := seedRules(t, repo, userID, 3)

	t.Run("renumbers remaining positions densely", func(t *testing.T) {
		if err := repo.Delete(ctx, userID, rules[1].ID); err != nil {
			t.Fatalf("failed to delete rule: %v", err)
		}

		remaining, err := repo.FindByUser(ctx, userID)
		if err != nil {
			t.Fatalf("failed to list rules: %v", err)
		}
		if len(remaining) != 2 {
			t.Fatalf("expected 2 rules, got %d", len(remaining))
		}
		if remaining[0].ID != rules[0].ID || remaining[0].Position != 0 {
			t.Error("expected first rule to keep position 0")
		}
		if remaining[1].ID != rules[2].ID || remaining[1].Position != 1 {
			t.Errorf("expected last rule to move to position 1, got %d", remaining[1].Position)
		}
	})

	t.Run("unknown id returns domain error", func(t *testing.T) {
		err := repo.Delete(ctx, userID, uuid.New())
		if !errors.Is(err, domainerror.ErrRuleNotFound) {
			t.Errorf("expected ErrRuleNotFound, got %v", err)
		}
	})
}

func TestRuleRepository_BulkDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRuleRepository(newTestDB(t)).(*ruleRepository)
	userID := uuid.New()
	rules := seedRules(t, repo, userID, 4)
	foreign := seedRules(t, repo, uuid.New(), 1)

	deleted, err := repo.BulkDelete(ctx, userID, []uuid.UUID{
		rules[0].ID,
		rules[2].ID,
		foreign[0].ID, // not owned, ignored
		uuid.New(),    // unknown, ignored
	})
	if err != nil {
		t.Fatalf("failed to bulk delete: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deletions, got %d", deleted)
	}

	remaining, err := repo.FindByUser(ctx, userID)
	if err != nil {
		t.Fatalf("failed to list rules: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(remaining))
	}
	if remaining[0].ID != rules[1].ID || remaining[0].Position != 0 {
		t.Error("expected surviving rules to be renumbered from 0")
	}
	if remaining[1].ID != rules[3].ID || remaining[1].Position != 1 {
		t.Error("expected dense positions after bulk delete")
	}
}

func TestRuleRepository_ReorderPositions(t *testing.T) {
	ctx := context.Background()
	repo := NewRuleRepository(newTestDB(t)).(*ruleRepository)
	userID := uuid.New()
	rules := seedRules(t, repo, userID, 3)

	order := []uuid.UUID{rules[2].ID, rules[0].ID, rules[1].ID}
	if err := repo.ReorderPositions(ctx, userID, order); err != nil {
		t.Fatalf("failed to reorder: %v", err)
	}

	reordered, err := repo.FindByUser(ctx, userID)
	if err != nil {
		t.Fatalf("failed to list rules: %v", err)
	}
	for i, id := range order {
		if reordered[i].ID != id {
			t.Errorf("expected %s at index %d, got %s", id, i, reordered[i].ID)
		}
		if reordered[i].Position != i {
			t.Errorf("expected position %d, got %d", i, reordered[i].Position)
		}
	}
}

func TestRuleRepository_MaxValues(t *testing.T) {
	ctx := context.Background()
	repo := NewRuleRepository(newTestDB(t)).(*ruleRepository)
	userID := uuid.New()

	t.Run("empty rule set", func(t *testing.T) {
		priority, err := repo.MaxPriorityByUser(ctx, userID)
		if err != nil || priority != 0 {
			t.Errorf("expected max priority 0, got %d (err %v)", priority, err)
		}
		position, err := repo.MaxPositionByUser(ctx, userID)
		if err != nil || position != -1 {
			t.Errorf("expected max position -1, got %d (err %v)", position, err)
		}
	})

	t.Run("populated rule set", func(t *testing.T) {
		seedRules(t, repo, userID, 3) // priorities 0,10,20; positions 0,1,2

		priority, err := repo.MaxPriorityByUser(ctx, userID)
		if err != nil || priority != 20 {
			t.Errorf("expected max priority 20, got %d (err %v)", priority, err)
		}
		position, err := repo.MaxPositionByUser(ctx, userID)
		if err != nil || position != 2 {
			t.Errorf("expected max position 2, got %d (err %v)", position, err)
		}
	})
}
