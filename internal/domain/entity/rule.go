// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rule represents an auto-categorization rule in the BudgetLoom system.
// A rule matches transactions by keyword substrings over the description
// and optional inclusive bounds over the absolute amount, and assigns a
// category plus optional side effects (tags, review flag, assignee).
type Rule struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Keywords   []string // Lowercase, trimmed, de-duplicated; never empty
	CategoryID uuid.UUID
	Priority   int // Higher priority rules are checked first within a tier
	Position   int // Persisted total order; authoritative tie-break

	// Optional inclusive bounds over abs(transaction amount). A rule with
	// either bound set belongs to the amount-filtered tier, which always
	// outranks keyword-only rules during resolution.
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal

	ApplyTags     []string   // Unioned onto a matched transaction's tags
	MarkForReview bool       // Matched transactions get Verified=false when set
	AssignTo      *uuid.UUID // Household member to assign; nil leaves unchanged

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRule creates a new Rule entity. Keywords are expected to be
// normalized already; priority and position are assigned by the store.
func NewRule(
	userID uuid.UUID,
	keywords []string,
	categoryID uuid.UUID,
	priority int,
	position int,
) *Rule {
	now := time.Now().UTC()
	return &Rule{
		ID:         uuid.New(),
		UserID:     userID,
		Keywords:   keywords,
		CategoryID: categoryID,
		Priority:   priority,
		Position:   position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AmountFiltered reports whether the rule has an amount bound set, which
// places it in the amount-filtered precedence tier.
func (r *Rule) AmountFiltered() bool {
	return r.MinAmount != nil || r.MaxAmount != nil
}

// NormalizeKeywords lowercases, trims and de-duplicates keywords while
// preserving first-seen order. Empty tokens are discarded. The result is
// never nil.
func NormalizeKeywords(keywords []string) []string {
	normalized := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, keyword := range keywords {
		token := strings.ToLower(strings.TrimSpace(keyword))
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		normalized = append(normalized, token)
	}
	return normalized
}

// ParseKeywords splits comma-separated user input and normalizes the
// resulting tokens. "Woolworths, Coles" yields ["woolworths", "coles"].
func ParseKeywords(raw string) []string {
	return NormalizeKeywords(strings.Split(raw, ","))
}

// RuleWithCategory represents a rule with its associated category.
type RuleWithCategory struct {
	Rule     *Rule
	Category *Category
}

// MatchingTransaction represents a transaction returned by a rule preview.
type MatchingTransaction struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

// RulePreviewResult represents the result of previewing a candidate rule
// against the transaction corpus.
type RulePreviewResult struct {
	MatchCount           int
	MatchingTransactions []*MatchingTransaction
}
