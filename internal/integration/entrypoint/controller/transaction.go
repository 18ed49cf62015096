package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/application/usecase/transaction"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
	"github.com/budgetloom/backend/internal/integration/entrypoint/dto"
	"github.com/budgetloom/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /transactions requests. Filters arrive as query
// parameters; everything is optional.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	filter, err := parseTransactionFilter(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeTransactionMissingField),
		})
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
		Filter: filter,
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Result))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeTransactionMissingField),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeTransactionMissingField),
		})
		return
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID",
			Code:  string(domainerror.ErrCodeTxnCategoryNotFound),
		})
		return
	}

	assignedTo, err := parseOptionalUUID(req.AssignedTo)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid member ID",
			Code:  string(domainerror.ErrCodeTxnMemberNotFound),
		})
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:      userID,
		Date:        req.Date,
		Description: req.Description,
		Amount:      amount,
		CategoryID:  categoryID,
		Tags:        req.Tags,
		AssignedTo:  assignedTo,
		Notes:       req.Notes,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction, nil))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeTransactionMissingField),
		})
		return
	}

	input := transaction.UpdateTransactionInput{
		UserID:          userID,
		TransactionID:   transactionID,
		Date:            req.Date,
		Description:     req.Description,
		Tags:            req.Tags,
		Verified:        req.Verified,
		ClearCategory:   req.ClearCategory,
		ClearAssignedTo: req.ClearAssignedTo,
		Notes:           req.Notes,
	}

	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount format",
				Code:  string(domainerror.ErrCodeTransactionMissingField),
			})
			return
		}
		input.Amount = &amount
	}

	input.CategoryID, err = parseOptionalUUID(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID",
			Code:  string(domainerror.ErrCodeTxnCategoryNotFound),
		})
		return
	}

	input.AssignedTo, err = parseOptionalUUID(req.AssignedTo)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid member ID",
			Code:  string(domainerror.ErrCodeTxnMemberNotFound),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction, nil))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return
	}

	input := transaction.DeleteTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Transaction deleted successfully",
	})
}

// parseTransactionFilter builds a listing filter from query parameters.
func parseTransactionFilter(ctx *gin.Context) (adapter.TransactionFilter, error) {
	var filter adapter.TransactionFilter

	if raw := ctx.Query("start_date"); raw != "" {
		startDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.New("invalid start_date, expected RFC3339")
		}
		filter.StartDate = &startDate
	}
	if raw := ctx.Query("end_date"); raw != "" {
		endDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.New("invalid end_date, expected RFC3339")
		}
		filter.EndDate = &endDate
	}
	if raw := ctx.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid category_id")
		}
		filter.CategoryID = &categoryID
	}
	if raw := ctx.Query("verified"); raw != "" {
		verified, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errors.New("invalid verified, expected true or false")
		}
		filter.Verified = &verified
	}
	if raw := ctx.Query("assigned_to"); raw != "" {
		assignedTo, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid assigned_to")
		}
		filter.AssignedTo = &assignedTo
	}
	if raw := ctx.Query("min_amount"); raw != "" {
		minAmount, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("invalid min_amount")
		}
		filter.MinAmount = &minAmount
	}
	if raw := ctx.Query("max_amount"); raw != "" {
		maxAmount, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("invalid max_amount")
		}
		filter.MaxAmount = &maxAmount
	}
	filter.Search = ctx.Query("search")
	filter.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	return filter, nil
}

// parseOptionalUUID parses an optional string UUID field.
func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var transactionErr *domainerror.TransactionError
	if errors.As(err, &transactionErr) {
		statusCode := c.getStatusCodeForTransactionError(transactionErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: transactionErr.Message,
			Code:  string(transactionErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeTxnCategoryNotFound,
		domainerror.ErrCodeTxnMemberNotFound,
		domainerror.ErrCodeTransactionMissingField,
		domainerror.ErrCodeEmptyTransactionIDs:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
