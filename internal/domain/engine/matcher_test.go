package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetloom/backend/internal/domain/entity"
)

func newTestTransaction(description string, amount string) *entity.Transaction {
	return &entity.Transaction{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Date:        time.Now().UTC(),
		Description: description,
		Amount:      decimal.RequireFromString(amount),
	}
}

func newKeywordRule(keywords ...string) *entity.Rule {
	return &entity.Rule{
		ID:         uuid.New(),
		Keywords:   entity.NormalizeKeywords(keywords),
		CategoryID: uuid.New(),
	}
}

func boundedRule(min, max string, keywords ...string) *entity.Rule {
	rule := newKeywordRule(keywords...)
	if min != "" {
		value := decimal.RequireFromString(min)
		rule.MinAmount = &value
	}
	if max != "" {
		value := decimal.RequireFromString(max)
		rule.MaxAmount = &value
	}
	return rule
}

func TestMatches_Keywords(t *testing.T) {
	t.Run("matches case-insensitive substring", func(t *testing.T) {
		rule := newKeywordRule("netflix")
		tx := newTestTransaction("NETFLIX.COM 800-123-4567", "-15.99")

		if !Matches(rule, tx) {
			t.Error("expected rule to match uppercase description")
		}
	})

	t.Run("any keyword is sufficient", func(t *testing.T) {
		rule := newKeywordRule("woolworths", "coles")
		tx := newTestTransaction("COLES 0423 SYDNEY", "-54.20")

		if !Matches(rule, tx) {
			t.Error("expected second keyword to match")
		}
	})

	t.Run("no keyword present returns false", func(t *testing.T) {
		rule := newKeywordRule("woolworths", "coles")
		tx := newTestTransaction("ALDI STORES", "-31.00")

		if Matches(rule, tx) {
			t.Error("expected rule not to match")
		}
	})
}

func TestMatches_AmountBounds(t *testing.T) {
	t.Run("unbounded rule matches any amount", func(t *testing.T) {
		rule := newKeywordRule("netflix")
		tx := newTestTransaction("netflix", "-99999.99")

		if !Matches(rule, tx) {
			t.Error("expected unbounded rule to match")
		}
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		rule := boundedRule("10", "20", "netflix")

		for _, amount := range []string{"-10", "-20", "-15.50"} {
			if !Matches(rule, newTestTransaction("netflix", amount)) {
				t.Errorf("expected amount %s to be within inclusive bounds", amount)
			}
		}
		for _, amount := range []string{"-9.99", "-20.01"} {
			if Matches(rule, newTestTransaction("netflix", amount)) {
				t.Errorf("expected amount %s to be outside bounds", amount)
			}
		}
	})

	t.Run("absolute value covers refunds", func(t *testing.T) {
		rule := boundedRule("10", "20", "netflix")
		refund := newTestTransaction("NETFLIX REFUND", "15.99")

		if !Matches(rule, refund) {
			t.Error("expected positive amount to match via absolute value")
		}
	})

	t.Run("min-only bound", func(t *testing.T) {
		rule := boundedRule("100", "", "flight")

		if Matches(rule, newTestTransaction("flight centre", "-99.99")) {
			t.Error("expected amount below min not to match")
		}
		if !Matches(rule, newTestTransaction("flight centre", "-250.00")) {
			t.Error("expected amount above min to match")
		}
	})

	t.Run("amount bound passes but keyword missing returns false", func(t *testing.T) {
		rule := boundedRule("10", "20", "netflix")
		tx := newTestTransaction("SPOTIFY", "-15.00")

		if Matches(rule, tx) {
			t.Error("expected rule to require both keyword and amount tests")
		}
	})
}
