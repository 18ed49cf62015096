package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/entity"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category updates. Nil
// pointer fields are left unchanged.
type UpdateCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       *string
	Icon       *string
	Color      *string
}

// UpdateCategoryOutput represents the output of a category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category update. The category type is immutable;
// switching a bucket between expense and income would silently flip the
// meaning of its history.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	existing, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil || existing.UserID != input.UserID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryMissingFields,
				"name cannot be empty",
				domainerror.ErrCategoryMissingFields,
			)
		}
		if name != existing.Name {
			exists, err := uc.categoryRepo.ExistsByNameAndUser(ctx, name, input.UserID)
			if err != nil {
				return nil, fmt.Errorf("failed to check category name: %w", err)
			}
			if exists {
				return nil, domainerror.NewCategoryError(
					domainerror.ErrCodeCategoryNameExists,
					"a category with this name already exists",
					domainerror.ErrCategoryNameExists,
				)
			}
		}
		existing.Name = name
	}
	if input.Icon != nil {
		existing.Icon = *input.Icon
	}
	if input.Color != nil {
		existing.Color = *input.Color
	}

	existing.UpdatedAt = time.Now().UTC()
	if err := uc.categoryRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{Category: existing}, nil
}
