// Package engine implements the pure evaluation core of the
// auto-categorization rule engine: keyword/amount matching, precedence
// resolution and run planning. Nothing in this package performs I/O or
// mutates its inputs.
package engine

import (
	"strings"

	"github.com/budgetloom/backend/internal/domain/entity"
)

// Matches reports whether the rule matches the transaction.
//
// The keyword test passes when any rule keyword is a substring of the
// lowercased description (OR semantics, so "woolworths, coles" means
// either). The amount test compares the absolute transaction amount
// against the rule's inclusive bounds; absolute value is used so one
// rule covers both a charge and its refund. Both tests must pass; the
// amount test is vacuously true when no bound is set.
func Matches(rule *entity.Rule, tx *entity.Transaction) bool {
	if !matchesKeywords(rule, tx) {
		return false
	}
	return matchesAmount(rule, tx)
}

func matchesKeywords(rule *entity.Rule, tx *entity.Transaction) bool {
	description := strings.ToLower(tx.Description)
	for _, keyword := range rule.Keywords {
		if strings.Contains(description, keyword) {
			return true
		}
	}
	return false
}

func matchesAmount(rule *entity.Rule, tx *entity.Transaction) bool {
	abs := tx.Amount.Abs()
	if rule.MinAmount != nil && abs.Cmp(*rule.MinAmount) < 0 {
		return false
	}
	if rule.MaxAmount != nil && abs.Cmp(*rule.MaxAmount) > 0 {
		return false
	}
	return true
}
