package rule

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/engine"
	"github.com/budgetloom/backend/internal/domain/entity"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

const (
	// DefaultPreviewLimit is the number of sample transactions returned
	// when the request does not specify a limit.
	DefaultPreviewLimit = 10

	// MaxPreviewLimit caps the sample size of a preview response.
	MaxPreviewLimit = 100
)

// PreviewRuleInput represents the input for a rule preview. The candidate
// rule does not have to exist; previews never write anything.
type PreviewRuleInput struct {
	UserID    uuid.UUID
	Keywords  []string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Limit     int // 0 means DefaultPreviewLimit
}

// PreviewRuleOutput represents the output of a rule preview.
type PreviewRuleOutput struct {
	Result *entity.RulePreviewResult
}

// PreviewRuleUseCase handles rule preview logic.
type PreviewRuleUseCase struct {
	transactionRepo adapter.TransactionRepository
	defaultLimit    int
}

// NewPreviewRuleUseCase creates a new PreviewRuleUseCase instance.
// defaultLimit is used when a request does not specify a sample size;
// zero falls back to DefaultPreviewLimit.
func NewPreviewRuleUseCase(transactionRepo adapter.TransactionRepository, defaultLimit int) *PreviewRuleUseCase {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPreviewLimit
	}
	return &PreviewRuleUseCase{transactionRepo: transactionRepo, defaultLimit: defaultLimit}
}

// Execute evaluates the candidate rule against the user's full
// transaction history. The match count covers everything, including
// verified and already-categorized transactions; only the returned
// sample is capped. Precedence against other rules is not considered,
// so the preview answers "what does this rule match", not "what would
// a run change".
func (uc *PreviewRuleUseCase) Execute(ctx context.Context, input PreviewRuleInput) (*PreviewRuleOutput, error) {
	keywords := entity.NormalizeKeywords(input.Keywords)
	if len(keywords) == 0 {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeRuleEmptyKeywords,
			"at least one keyword is required",
			domainerror.ErrRuleEmptyKeywords,
		)
	}

	if err := validateAmountBounds(input.MinAmount, input.MaxAmount); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = uc.defaultLimit
	}
	if limit > MaxPreviewLimit {
		limit = MaxPreviewLimit
	}

	candidate := &entity.Rule{
		UserID:    input.UserID,
		Keywords:  keywords,
		MinAmount: input.MinAmount,
		MaxAmount: input.MaxAmount,
	}

	transactions, err := uc.transactionRepo.FindAllByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	result := &entity.RulePreviewResult{
		MatchingTransactions: make([]*entity.MatchingTransaction, 0, limit),
	}
	// Transactions arrive most recent first, so the sample is the most
	// recent matches.
	for _, tx := range transactions {
		if !engine.Matches(candidate, tx) {
			continue
		}
		result.MatchCount++
		if len(result.MatchingTransactions) < limit {
			result.MatchingTransactions = append(result.MatchingTransactions, &entity.MatchingTransaction{
				ID:          tx.ID,
				Description: tx.Description,
				Amount:      tx.Amount,
				Date:        tx.Date,
			})
		}
	}

	return &PreviewRuleOutput{Result: result}, nil
}
