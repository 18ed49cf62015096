package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/application/usecase/member"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
	"github.com/budgetloom/backend/internal/integration/entrypoint/dto"
	"github.com/budgetloom/backend/internal/integration/entrypoint/middleware"
)

// MemberController handles household member endpoints.
type MemberController struct {
	listUseCase   *member.ListMembersUseCase
	createUseCase *member.CreateMemberUseCase
	deleteUseCase *member.DeleteMemberUseCase
}

// NewMemberController creates a new member controller instance.
func NewMemberController(
	listUseCase *member.ListMembersUseCase,
	createUseCase *member.CreateMemberUseCase,
	deleteUseCase *member.DeleteMemberUseCase,
) *MemberController {
	return &MemberController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /members requests.
func (c *MemberController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), member.ListMembersInput{UserID: userID})
	if err != nil {
		c.handleMemberError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMemberListResponse(output.Members))
}

// Create handles POST /members requests.
func (c *MemberController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	var req dto.CreateMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMemberMissingFields),
		})
		return
	}

	input := member.CreateMemberInput{
		UserID: userID,
		Name:   req.Name,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleMemberError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToMemberResponse(output.Member))
}

// Delete handles DELETE /members/:id requests.
func (c *MemberController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return
	}

	memberID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid member ID",
			Code:  string(domainerror.ErrCodeMemberNotFound),
		})
		return
	}

	input := member.DeleteMemberInput{
		UserID:   userID,
		MemberID: memberID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleMemberError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Member deleted successfully",
	})
}

// handleMemberError handles member errors and returns appropriate HTTP responses.
func (c *MemberController) handleMemberError(ctx *gin.Context, err error) {
	var memberErr *domainerror.MemberError
	if errors.As(err, &memberErr) {
		statusCode := c.getStatusCodeForMemberError(memberErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: memberErr.Message,
			Code:  string(memberErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForMemberError maps member error codes to HTTP status codes.
func (c *MemberController) getStatusCodeForMemberError(code domainerror.MemberErrorCode) int {
	switch code {
	case domainerror.ErrCodeMemberNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeMemberMissingFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
