package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetloom/backend/internal/application/usecase/rule"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
	"github.com/budgetloom/backend/internal/integration/entrypoint/dto"
	"github.com/budgetloom/backend/internal/integration/entrypoint/middleware"
)

// RuleController handles auto-categorization rule endpoints.
type RuleController struct {
	listUseCase       *rule.ListRulesUseCase
	createUseCase     *rule.CreateRuleUseCase
	updateUseCase     *rule.UpdateRuleUseCase
	deleteUseCase     *rule.DeleteRuleUseCase
	bulkDeleteUseCase *rule.BulkDeleteRulesUseCase
	reorderUseCase    *rule.ReorderRulesUseCase
	previewUseCase    *rule.PreviewRuleUseCase
	runUseCase        *rule.RunRulesUseCase
}

// NewRuleController creates a new rule controller instance.
func NewRuleController(
	listUseCase *rule.ListRulesUseCase,
	createUseCase *rule.CreateRuleUseCase,
	updateUseCase *rule.UpdateRuleUseCase,
	deleteUseCase *rule.DeleteRuleUseCase,
	bulkDeleteUseCase *rule.BulkDeleteRulesUseCase,
	reorderUseCase *rule.ReorderRulesUseCase,
	previewUseCase *rule.PreviewRuleUseCase,
	runUseCase *rule.RunRulesUseCase,
) *RuleController {
	return &RuleController{
		listUseCase:       listUseCase,
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		bulkDeleteUseCase: bulkDeleteUseCase,
		reorderUseCase:    reorderUseCase,
		previewUseCase:    previewUseCase,
		runUseCase:        runUseCase,
	}
}

// List handles GET /rules requests. Rules come back in position order,
// which is the order a run resolves ties in.
func (c *RuleController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), rule.ListRulesInput{UserID: userID})
	if err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRuleListResponse(output.Rules))
}

// Create handles POST /rules requests.
func (c *RuleController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	var req dto.CreateRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeRuleMissingFields),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID",
			Code:  string(domainerror.ErrCodeRuleMissingCategory),
		})
		return
	}

	input := rule.CreateRuleInput{
		UserID:        userID,
		Keywords:      req.Keywords,
		CategoryID:    categoryID,
		Priority:      req.Priority,
		ApplyTags:     req.ApplyTags,
		MarkForReview: req.MarkForReview,
	}

	input.MinAmount, err = parseOptionalAmount(req.MinAmount)
	if err == nil {
		input.MaxAmount, err = parseOptionalAmount(req.MaxAmount)
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidAmountBounds),
		})
		return
	}

	input.AssignTo, err = parseOptionalUUID(req.AssignTo)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid member ID",
			Code:  string(domainerror.ErrCodeMemberNotFoundRule),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRuleResponse(output.Rule.Rule, output.Rule.Category))
}

// Update handles PATCH /rules/:id requests.
func (c *RuleController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID",
			Code:  string(domainerror.ErrCodeRuleNotFound),
		})
		return
	}

	var req dto.UpdateRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeRuleMissingFields),
		})
		return
	}

	input := rule.UpdateRuleInput{
		UserID:         userID,
		RuleID:         ruleID,
		Keywords:       req.Keywords,
		Priority:       req.Priority,
		ClearMinAmount: req.ClearMinAmount,
		ClearMaxAmount: req.ClearMaxAmount,
		ApplyTags:      req.ApplyTags,
		MarkForReview:  req.MarkForReview,
		ClearAssignTo:  req.ClearAssignTo,
	}

	input.CategoryID, err = parseOptionalUUID(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID",
			Code:  string(domainerror.ErrCodeCategoryNotFoundRule),
		})
		return
	}

	input.MinAmount, err = parseOptionalAmount(req.MinAmount)
	if err == nil {
		input.MaxAmount, err = parseOptionalAmount(req.MaxAmount)
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidAmountBounds),
		})
		return
	}

	input.AssignTo, err = parseOptionalUUID(req.AssignTo)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid member ID",
			Code:  string(domainerror.ErrCodeMemberNotFoundRule),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRuleResponse(output.Rule.Rule, output.Rule.Category))
}

// Delete handles DELETE /rules/:id requests.
func (c *RuleController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID",
			Code:  string(domainerror.ErrCodeRuleNotFound),
		})
		return
	}

	input := rule.DeleteRuleInput{
		UserID: userID,
		RuleID: ruleID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Rule deleted successfully",
	})
}

// BulkDelete handles POST /rules/bulk-delete requests.
func (c *RuleController) BulkDelete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	var req dto.BulkDeleteRulesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeEmptyRuleIDs),
		})
		return
	}

	ids, err := parseUUIDList(req.IDs)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID in list",
			Code:  string(domainerror.ErrCodeEmptyRuleIDs),
		})
		return
	}

	input := rule.BulkDeleteRulesInput{
		UserID: userID,
		IDs:    ids,
	}

	output, err := c.bulkDeleteUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BulkDeleteRulesResponse{
		DeletedCount: output.DeletedCount,
	})
}

// Reorder handles PUT /rules/reorder requests. The body must list every
// rule the user has, in the desired order.
func (c *RuleController) Reorder(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	var req dto.ReorderRulesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeReorderSetMismatch),
		})
		return
	}

	ids, err := parseUUIDList(req.IDs)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID in list",
			Code:  string(domainerror.ErrCodeReorderSetMismatch),
		})
		return
	}

	input := rule.ReorderRulesInput{
		UserID: userID,
		IDs:    ids,
	}

	if err := c.reorderUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Rules reordered successfully",
	})
}

// Preview handles POST /rules/preview requests. The candidate rule does
// not have to exist; nothing is written.
func (c *RuleController) Preview(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	var req dto.PreviewRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeRuleEmptyKeywords),
		})
		return
	}

	input := rule.PreviewRuleInput{
		UserID:   userID,
		Keywords: req.Keywords,
		Limit:    req.Limit,
	}

	var err error
	input.MinAmount, err = parseOptionalAmount(req.MinAmount)
	if err == nil {
		input.MaxAmount, err = parseOptionalAmount(req.MaxAmount)
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidAmountBounds),
		})
		return
	}

	output, err := c.previewUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRulePreviewResponse(output.Result))
}

// Run handles POST /rules/run requests. The overwrite_verified query
// parameter lets a run recategorize transactions a human already
// confirmed; it defaults to false.
func (c *RuleController) Run(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	overwriteVerified, _ := strconv.ParseBool(ctx.DefaultQuery("overwrite_verified", "false"))

	input := rule.RunRulesInput{
		UserID:            userID,
		OverwriteVerified: overwriteVerified,
	}

	output, err := c.runUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	response := dto.RunRulesResponse{
		TotalScanned: output.TotalScanned,
		UpdatedCount: output.UpdatedCount,
	}
	for _, id := range output.FailedTransactionIDs {
		response.FailedTransactionIDs = append(response.FailedTransactionIDs, id.String())
	}

	ctx.JSON(http.StatusOK, response)
}

// parseOptionalAmount parses an optional decimal string field.
func parseOptionalAmount(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	amount, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

// parseUUIDList parses a list of string UUIDs.
func parseUUIDList(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(raw))
	for i, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// handleRuleError handles rule errors and returns appropriate HTTP responses.
func (c *RuleController) handleRuleError(ctx *gin.Context, err error) {
	var ruleErr *domainerror.RuleError
	if errors.As(err, &ruleErr) {
		statusCode := c.getStatusCodeForRuleError(ruleErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: ruleErr.Message,
			Code:  string(ruleErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRuleError maps rule error codes to HTTP status codes.
func (c *RuleController) getStatusCodeForRuleError(code domainerror.RuleErrorCode) int {
	switch code {
	case domainerror.ErrCodeRuleNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRuleEmptyKeywords,
		domainerror.ErrCodeRuleMissingCategory,
		domainerror.ErrCodeCategoryNotFoundRule,
		domainerror.ErrCodeMemberNotFoundRule,
		domainerror.ErrCodeInvalidAmountBounds,
		domainerror.ErrCodeRuleMissingFields,
		domainerror.ErrCodeEmptyRuleIDs,
		domainerror.ErrCodeReorderSetMismatch:
		return http.StatusBadRequest
	case domainerror.ErrCodeRunInProgress:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
