// Package member contains household member-related use cases.
package member

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/entity"
)

// ListMembersInput represents the input for listing household members.
type ListMembersInput struct {
	UserID uuid.UUID
}

// ListMembersOutput represents the output of listing household members.
type ListMembersOutput struct {
	Members []*entity.Member
}

// ListMembersUseCase handles household member listing logic.
type ListMembersUseCase struct {
	memberRepo adapter.MemberRepository
}

// NewListMembersUseCase creates a new ListMembersUseCase instance.
func NewListMembersUseCase(memberRepo adapter.MemberRepository) *ListMembersUseCase {
	return &ListMembersUseCase{memberRepo: memberRepo}
}

// Execute retrieves the user's household members.
func (uc *ListMembersUseCase) Execute(ctx context.Context, input ListMembersInput) (*ListMembersOutput, error) {
	members, err := uc.memberRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return &ListMembersOutput{Members: members}, nil
}
