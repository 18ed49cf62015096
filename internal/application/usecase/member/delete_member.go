package member

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/application/adapter"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

// DeleteMemberInput represents the input for household member deletion.
type DeleteMemberInput struct {
	UserID   uuid.UUID
	MemberID uuid.UUID
}

// DeleteMemberUseCase handles household member deletion logic.
type DeleteMemberUseCase struct {
	memberRepo adapter.MemberRepository
}

// NewDeleteMemberUseCase creates a new DeleteMemberUseCase instance.
func NewDeleteMemberUseCase(memberRepo adapter.MemberRepository) *DeleteMemberUseCase {
	return &DeleteMemberUseCase{memberRepo: memberRepo}
}

// Execute performs the household member deletion. Transactions and rules
// referencing the member have their assignment cleared by the database.
func (uc *DeleteMemberUseCase) Execute(ctx context.Context, input DeleteMemberInput) error {
	existing, err := uc.memberRepo.FindByID(ctx, input.MemberID)
	if err != nil || existing.UserID != input.UserID {
		return domainerror.NewMemberError(
			domainerror.ErrCodeMemberNotFound,
			"household member not found",
			domainerror.ErrMemberNotFound,
		)
	}

	if err := uc.memberRepo.Delete(ctx, input.MemberID); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	return nil
}
