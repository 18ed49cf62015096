package member

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/entity"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

// CreateMemberInput represents the input for household member creation.
type CreateMemberInput struct {
	UserID uuid.UUID
	Name   string
}

// CreateMemberOutput represents the output of household member creation.
type CreateMemberOutput struct {
	Member *entity.Member
}

// CreateMemberUseCase handles household member creation logic.
type CreateMemberUseCase struct {
	memberRepo adapter.MemberRepository
}

// NewCreateMemberUseCase creates a new CreateMemberUseCase instance.
func NewCreateMemberUseCase(memberRepo adapter.MemberRepository) *CreateMemberUseCase {
	return &CreateMemberUseCase{memberRepo: memberRepo}
}

// Execute performs the household member creation.
func (uc *CreateMemberUseCase) Execute(ctx context.Context, input CreateMemberInput) (*CreateMemberOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewMemberError(
			domainerror.ErrCodeMemberMissingFields,
			"name is required",
			domainerror.ErrMemberMissingFields,
		)
	}

	member := entity.NewMember(input.UserID, name)
	if err := uc.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return &CreateMemberOutput{Member: member}, nil
}
