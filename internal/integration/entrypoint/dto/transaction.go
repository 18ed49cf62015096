package dto

import (
	"time"

	"github.com/budgetloom/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description" binding:"required,min=1,max=500"`
	Amount      string    `json:"amount" binding:"required"`
	CategoryID  *string   `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Tags        []string  `json:"tags,omitempty"`
	AssignedTo  *string   `json:"assigned_to,omitempty" binding:"omitempty,uuid"`
	Notes       string    `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateTransactionRequest represents the request body for transaction
// update. Absent fields are left unchanged; the clear flags reset the
// corresponding optional field.
type UpdateTransactionRequest struct {
	Date            *time.Time `json:"date,omitempty"`
	Description     *string    `json:"description,omitempty" binding:"omitempty,min=1,max=500"`
	Amount          *string    `json:"amount,omitempty"`
	CategoryID      *string    `json:"category_id,omitempty" binding:"omitempty,uuid"`
	ClearCategory   bool       `json:"clear_category,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	Verified        *bool      `json:"verified,omitempty"`
	AssignedTo      *string    `json:"assigned_to,omitempty" binding:"omitempty,uuid"`
	ClearAssignedTo bool       `json:"clear_assigned_to,omitempty"`
	Notes           *string    `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string            `json:"id"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Amount      string            `json:"amount"`
	CategoryID  *string           `json:"category_id,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Tags        []string          `json:"tags"`
	Verified    bool              `json:"verified"`
	AssignedTo  *string           `json:"assigned_to,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TransactionListResponse represents a paginated transaction listing.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
func ToTransactionResponse(transaction *entity.Transaction, category *entity.Category) TransactionResponse {
	response := TransactionResponse{
		ID:          transaction.ID.String(),
		Date:        transaction.Date,
		Description: transaction.Description,
		Amount:      transaction.Amount.String(),
		Tags:        transaction.Tags,
		Verified:    transaction.Verified,
		Notes:       transaction.Notes,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}
	if response.Tags == nil {
		response.Tags = []string{}
	}
	if transaction.CategoryID != nil {
		id := transaction.CategoryID.String()
		response.CategoryID = &id
	}
	if transaction.AssignedTo != nil {
		id := transaction.AssignedTo.String()
		response.AssignedTo = &id
	}
	if category != nil {
		categoryResponse := ToCategoryResponse(category)
		response.Category = &categoryResponse
	}
	return response
}

// ToTransactionListResponse converts a domain listing result to a
// TransactionListResponse.
func ToTransactionListResponse(result *entity.TransactionListResult) TransactionListResponse {
	response := TransactionListResponse{
		Transactions: make([]TransactionResponse, len(result.Transactions)),
		Total:        result.Total,
		Page:         result.Page,
		Limit:        result.Limit,
		TotalPages:   result.TotalPages,
	}
	for i, item := range result.Transactions {
		response.Transactions[i] = ToTransactionResponse(item.Transaction, item.Category)
	}
	return response
}
