package rule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/entity"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

func TestRunRulesUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	categoryID := uuid.New()

	newRunFixture := func() (*RunRulesUseCase, *fakeRuleRepo, *fakeTransactionRepo, *fakeRunLock, *fakeEventPublisher) {
		ruleRepo := &fakeRuleRepo{}
		txRepo := &fakeTransactionRepo{failIDs: make(map[uuid.UUID]bool)}
		lock := newFakeRunLock()
		events := &fakeEventPublisher{}
		return NewRunRulesUseCase(ruleRepo, txRepo, lock, events), ruleRepo, txRepo, lock, events
	}

	seedTx := func(repo *fakeTransactionRepo, description string) *entity.Transaction {
		tx := entity.NewTransaction(userID, time.Now().UTC(), description, decimal.RequireFromString("-15.99"), nil, "")
		repo.transactions = append(repo.transactions, tx)
		return tx
	}

	t.Run("categorizes matching transactions and publishes an event", func(t *testing.T) {
		uc, ruleRepo, txRepo, lock, events := newRunFixture()
		ruleRepo.rules = append(ruleRepo.rules, entity.NewRule(userID, []string{"netflix"}, categoryID, 0, 0))
		matched := seedTx(txRepo, "NETFLIX.COM")
		seedTx(txRepo, "SPOTIFY")

		output, err := uc.Execute(ctx, RunRulesInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.TotalScanned != 2 {
			t.Errorf("expected 2 scanned, got %d", output.TotalScanned)
		}
		if output.UpdatedCount != 1 {
			t.Errorf("expected 1 update, got %d", output.UpdatedCount)
		}
		if matched.CategoryID == nil || *matched.CategoryID != categoryID {
			t.Error("expected the matching transaction to be categorized")
		}
		if !matched.Verified {
			t.Error("expected the matching transaction to be verified")
		}
		if !events.published(adapter.TopicTransactionsChanged) {
			t.Error("expected a transactions.changed event")
		}
		if lock.releases != 1 {
			t.Error("expected the run lock to be released")
		}
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		uc, ruleRepo, txRepo, _, _ := newRunFixture()
		ruleRepo.rules = append(ruleRepo.rules, entity.NewRule(userID, []string{"netflix"}, categoryID, 0, 0))
		seedTx(txRepo, "NETFLIX.COM")

		if _, err := uc.Execute(ctx, RunRulesInput{UserID: userID}); err != nil {
			t.Fatalf("unexpected error on first run: %v", err)
		}
		second, err := uc.Execute(ctx, RunRulesInput{UserID: userID, OverwriteVerified: true})
		if err != nil {
			t.Fatalf("unexpected error on second run: %v", err)
		}
		if second.UpdatedCount != 0 {
			t.Errorf("expected an idempotent second run, got %d updates", second.UpdatedCount)
		}
	})

	t.Run("verified transactions are protected by default", func(t *testing.T) {
		uc, ruleRepo, txRepo, _, _ := newRunFixture()
		ruleRepo.rules = append(ruleRepo.rules, entity.NewRule(userID, []string{"netflix"}, categoryID, 0, 0))
		other := uuid.New()
		tx := seedTx(txRepo, "NETFLIX.COM")
		tx.Verified = true
		tx.CategoryID = &other

		output, err := uc.Execute(ctx, RunRulesInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.UpdatedCount != 0 {
			t.Error("expected the verified transaction to be left alone")
		}

		output, err = uc.Execute(ctx, RunRulesInput{UserID: userID, OverwriteVerified: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.UpdatedCount != 1 || *tx.CategoryID != categoryID {
			t.Error("expected overwriteVerified to recategorize the transaction")
		}
	})

	t.Run("rejects a run while another is in flight", func(t *testing.T) {
		uc, _, _, lock, _ := newRunFixture()
		lock.held[userID] = true

		_, err := uc.Execute(ctx, RunRulesInput{UserID: userID})
		if !errors.Is(err, domainerror.ErrRunInProgress) {
			t.Errorf("expected ErrRunInProgress, got %v", err)
		}
	})

	t.Run("a failed update does not abort the run", func(t *testing.T) {
		uc, ruleRepo, txRepo, lock, _ := newRunFixture()
		ruleRepo.rules = append(ruleRepo.rules, entity.NewRule(userID, []string{"netflix"}, categoryID, 0, 0))
		failing := seedTx(txRepo, "NETFLIX.COM 1")
		seedTx(txRepo, "NETFLIX.COM 2")
		txRepo.failIDs[failing.ID] = true

		output, err := uc.Execute(ctx, RunRulesInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.UpdatedCount != 1 {
			t.Errorf("expected 1 update despite the failure, got %d", output.UpdatedCount)
		}
		if len(output.FailedTransactionIDs) != 1 || output.FailedTransactionIDs[0] != failing.ID {
			t.Error("expected the failed transaction to be reported")
		}
		if lock.releases != 1 {
			t.Error("expected the run lock to be released after a partial failure")
		}
	})
}
