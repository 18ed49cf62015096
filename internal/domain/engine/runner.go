package engine

import (
	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/domain/entity"
)

// PlanChange computes the mutation a winning rule would apply to a
// transaction. The second return value is false when the transaction
// already carries every effect of the rule, in which case no write is
// needed; this is what makes repeated runs idempotent.
func PlanChange(rule *entity.Rule, tx *entity.Transaction) (entity.TransactionChange, bool) {
	change := entity.TransactionChange{
		TransactionID: tx.ID,
		CategoryID:    rule.CategoryID,
		Tags:          unionTags(tx.Tags, rule.ApplyTags),
		Verified:      !rule.MarkForReview,
		AssignedTo:    tx.AssignedTo,
	}
	if rule.AssignTo != nil {
		change.AssignedTo = rule.AssignTo
	}

	return change, wouldAlter(tx, change)
}

// Plan evaluates the full rule set over a transaction corpus and returns
// the mutations a run would apply. Verified transactions are skipped
// entirely (resolution is not even attempted) unless overwriteVerified
// is set; transactions with no winning rule are left untouched; no-op
// mutations are dropped.
func Plan(rules []*entity.Rule, txs []*entity.Transaction, overwriteVerified bool) []entity.TransactionChange {
	ordered := OrderForResolution(rules)

	changes := make([]entity.TransactionChange, 0)
	for _, tx := range txs {
		if tx.Verified && !overwriteVerified {
			continue
		}

		var winner *entity.Rule
		for _, rule := range ordered {
			if Matches(rule, tx) {
				winner = rule
				break
			}
		}
		if winner == nil {
			continue
		}

		if change, altered := PlanChange(winner, tx); altered {
			changes = append(changes, change)
		}
	}

	return changes
}

// unionTags appends the tags from apply that are not already present,
// preserving the order of both lists.
func unionTags(existing, apply []string) []string {
	union := make([]string, 0, len(existing)+len(apply))
	union = append(union, existing...)
	for _, tag := range apply {
		if !containsTag(union, tag) {
			union = append(union, tag)
		}
	}
	return union
}

func containsTag(tags []string, tag string) bool {
	for _, existing := range tags {
		if existing == tag {
			return true
		}
	}
	return false
}

func wouldAlter(tx *entity.Transaction, change entity.TransactionChange) bool {
	if tx.CategoryID == nil || *tx.CategoryID != change.CategoryID {
		return true
	}
	if tx.Verified != change.Verified {
		return true
	}
	if len(tx.Tags) != len(change.Tags) {
		return true
	}
	for i, tag := range tx.Tags {
		if change.Tags[i] != tag {
			return true
		}
	}
	return !sameAssignee(tx.AssignedTo, change.AssignedTo)
}

func sameAssignee(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
