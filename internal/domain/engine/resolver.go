package engine

import (
	"sort"

	"github.com/budgetloom/backend/internal/domain/entity"
)

// Resolve selects the single winning rule for a transaction, or nil when
// no rule matches.
//
// Rules are scanned in two precedence tiers: amount-filtered rules
// always outrank keyword-only rules regardless of priority, so a
// specific rule deliberately overrides a catch-all. Within a tier,
// candidates are ordered by priority descending with ties broken by
// persisted position ascending, which keeps the result deterministic
// and independent of the order of the input slice. The first matching
// rule in that order wins; effects of lower-ranked matches are never
// merged in.
func Resolve(rules []*entity.Rule, tx *entity.Transaction) *entity.Rule {
	for _, rule := range OrderForResolution(rules) {
		if Matches(rule, tx) {
			return rule
		}
	}
	return nil
}

// OrderForResolution returns the rules in evaluation order: tier first
// (amount-filtered before generic), then priority descending, then
// position ascending. The input slice is not modified.
func OrderForResolution(rules []*entity.Rule) []*entity.Rule {
	ordered := make([]*entity.Rule, len(rules))
	copy(ordered, rules)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.AmountFiltered() != b.AmountFiltered() {
			return a.AmountFiltered()
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.Position < b.Position
	})

	return ordered
}
