package dto

import (
	"time"

	"github.com/budgetloom/backend/internal/domain/entity"
)

// CreateRuleRequest represents the request body for rule creation.
// Amounts are decimal strings; bounds apply to the absolute value of
// the transaction amount.
type CreateRuleRequest struct {
	Keywords      []string `json:"keywords" binding:"required,min=1"`
	CategoryID    string   `json:"category_id" binding:"required,uuid"`
	Priority      *int     `json:"priority,omitempty"`
	MinAmount     *string  `json:"min_amount,omitempty"`
	MaxAmount     *string  `json:"max_amount,omitempty"`
	ApplyTags     []string `json:"apply_tags,omitempty"`
	MarkForReview bool     `json:"mark_for_review,omitempty"`
	AssignTo      *string  `json:"assign_to,omitempty" binding:"omitempty,uuid"`
}

// UpdateRuleRequest represents the request body for rule update. Absent
// fields are left unchanged; the clear flags reset an optional field.
type UpdateRuleRequest struct {
	Keywords       []string `json:"keywords,omitempty"`
	CategoryID     *string  `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Priority       *int     `json:"priority,omitempty"`
	MinAmount      *string  `json:"min_amount,omitempty"`
	ClearMinAmount bool     `json:"clear_min_amount,omitempty"`
	MaxAmount      *string  `json:"max_amount,omitempty"`
	ClearMaxAmount bool     `json:"clear_max_amount,omitempty"`
	ApplyTags      []string `json:"apply_tags,omitempty"`
	MarkForReview  *bool    `json:"mark_for_review,omitempty"`
	AssignTo       *string  `json:"assign_to,omitempty" binding:"omitempty,uuid"`
	ClearAssignTo  bool     `json:"clear_assign_to,omitempty"`
}

// BulkDeleteRulesRequest represents the request body for bulk rule deletion.
type BulkDeleteRulesRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

// ReorderRulesRequest represents the request body for rule reordering.
// The list must be the complete rule set in the desired order.
type ReorderRulesRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

// PreviewRuleRequest represents the request body for a rule preview.
type PreviewRuleRequest struct {
	Keywords  []string `json:"keywords" binding:"required,min=1"`
	MinAmount *string  `json:"min_amount,omitempty"`
	MaxAmount *string  `json:"max_amount,omitempty"`
	Limit     int      `json:"limit,omitempty" binding:"omitempty,min=1,max=100"`
}

// RuleResponse represents a single rule in API responses.
type RuleResponse struct {
	ID            string            `json:"id"`
	Keywords      []string          `json:"keywords"`
	CategoryID    string            `json:"category_id"`
	Category      *CategoryResponse `json:"category,omitempty"`
	Priority      int               `json:"priority"`
	Position      int               `json:"position"`
	MinAmount     *string           `json:"min_amount,omitempty"`
	MaxAmount     *string           `json:"max_amount,omitempty"`
	ApplyTags     []string          `json:"apply_tags"`
	MarkForReview bool              `json:"mark_for_review"`
	AssignTo      *string           `json:"assign_to,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// RuleListResponse represents the response for listing rules.
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// BulkDeleteRulesResponse represents the response for bulk rule deletion.
type BulkDeleteRulesResponse struct {
	DeletedCount int `json:"deleted_count"`
}

// MatchingTransactionResponse represents a sample transaction in a
// preview response.
type MatchingTransactionResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Date        time.Time `json:"date"`
}

// RulePreviewResponse represents the response for a rule preview.
type RulePreviewResponse struct {
	MatchCount           int                           `json:"match_count"`
	MatchingTransactions []MatchingTransactionResponse `json:"matching_transactions"`
}

// RunRulesResponse represents the summary of a bulk rule run.
type RunRulesResponse struct {
	TotalScanned         int      `json:"total_scanned"`
	UpdatedCount         int      `json:"updated_count"`
	FailedTransactionIDs []string `json:"failed_transaction_ids,omitempty"`
}

// ToRuleResponse converts a domain Rule to a RuleResponse DTO.
func ToRuleResponse(rule *entity.Rule, category *entity.Category) RuleResponse {
	response := RuleResponse{
		ID:            rule.ID.String(),
		Keywords:      rule.Keywords,
		CategoryID:    rule.CategoryID.String(),
		Priority:      rule.Priority,
		Position:      rule.Position,
		ApplyTags:     rule.ApplyTags,
		MarkForReview: rule.MarkForReview,
		CreatedAt:     rule.CreatedAt,
		UpdatedAt:     rule.UpdatedAt,
	}
	if response.ApplyTags == nil {
		response.ApplyTags = []string{}
	}
	if rule.MinAmount != nil {
		amount := rule.MinAmount.String()
		response.MinAmount = &amount
	}
	if rule.MaxAmount != nil {
		amount := rule.MaxAmount.String()
		response.MaxAmount = &amount
	}
	if rule.AssignTo != nil {
		id := rule.AssignTo.String()
		response.AssignTo = &id
	}
	if category != nil {
		categoryResponse := ToCategoryResponse(category)
		response.Category = &categoryResponse
	}
	return response
}

// ToRuleListResponse converts rules with categories to a RuleListResponse.
func ToRuleListResponse(rules []*entity.RuleWithCategory) RuleListResponse {
	response := RuleListResponse{
		Rules: make([]RuleResponse, len(rules)),
	}
	for i, item := range rules {
		response.Rules[i] = ToRuleResponse(item.Rule, item.Category)
	}
	return response
}

// ToRulePreviewResponse converts a domain preview result to a
// RulePreviewResponse.
func ToRulePreviewResponse(result *entity.RulePreviewResult) RulePreviewResponse {
	response := RulePreviewResponse{
		MatchCount:           result.MatchCount,
		MatchingTransactions: make([]MatchingTransactionResponse, len(result.MatchingTransactions)),
	}
	for i, match := range result.MatchingTransactions {
		response.MatchingTransactions[i] = MatchingTransactionResponse{
			ID:          match.ID.String(),
			Description: match.Description,
			Amount:      match.Amount.String(),
			Date:        match.Date,
		}
	}
	return response
}
