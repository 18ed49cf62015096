package rule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/engine"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

// RunRulesInput represents the input for a bulk rule run.
type RunRulesInput struct {
	UserID            uuid.UUID
	OverwriteVerified bool
}

// RunRulesOutput represents the summary of a bulk rule run.
type RunRulesOutput struct {
	TotalScanned         int
	UpdatedCount         int
	FailedTransactionIDs []uuid.UUID
}

// RunRulesUseCase handles bulk rule run logic.
type RunRulesUseCase struct {
	ruleRepo        adapter.RuleRepository
	transactionRepo adapter.TransactionRepository
	runLock         adapter.RunLock
	events          adapter.EventPublisher
}

// NewRunRulesUseCase creates a new RunRulesUseCase instance.
func NewRunRulesUseCase(
	ruleRepo adapter.RuleRepository,
	transactionRepo adapter.TransactionRepository,
	runLock adapter.RunLock,
	events adapter.EventPublisher,
) *RunRulesUseCase {
	return &RunRulesUseCase{
		ruleRepo:        ruleRepo,
		transactionRepo: transactionRepo,
		runLock:         runLock,
		events:          events,
	}
}

// Execute applies the user's full rule set to their transaction history.
// At most one run per user is in flight at a time. Each transaction is
// updated independently; a failed update is recorded and the run
// continues, so a run that did any work still reports what it changed.
func (uc *RunRulesUseCase) Execute(ctx context.Context, input RunRulesInput) (*RunRulesOutput, error) {
	acquired, err := uc.runLock.Acquire(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !acquired {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeRunInProgress,
			"a rule run is already in progress",
			domainerror.ErrRunInProgress,
		)
	}
	defer func() {
		if err := uc.runLock.Release(ctx, input.UserID); err != nil {
			slog.Warn("failed to release rule run lock", "user_id", input.UserID, "error", err)
		}
	}()

	rules, err := uc.ruleRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	transactions, err := uc.transactionRepo.FindAllByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	changes := engine.Plan(rules, transactions, input.OverwriteVerified)

	output := &RunRulesOutput{TotalScanned: len(transactions)}
	for _, change := range changes {
		if err := uc.transactionRepo.ApplyChange(ctx, input.UserID, change); err != nil {
			slog.Warn("failed to apply rule change",
				"user_id", input.UserID,
				"transaction_id", change.TransactionID,
				"error", err)
			output.FailedTransactionIDs = append(output.FailedTransactionIDs, change.TransactionID)
			continue
		}
		output.UpdatedCount++
	}

	if output.UpdatedCount > 0 {
		_ = uc.events.Publish(ctx, adapter.TopicTransactionsChanged, input.UserID, map[string]any{
			"updated": output.UpdatedCount,
		})
	}

	return output, nil
}
