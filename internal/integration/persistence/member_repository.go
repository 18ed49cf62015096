package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/entity"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
	"github.com/budgetloom/backend/internal/integration/persistence/model"
)

// memberRepository implements the adapter.MemberRepository interface.
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository instance.
func NewMemberRepository(db *gorm.DB) adapter.MemberRepository {
	return &memberRepository{
		db: db,
	}
}

// Create creates a new household member in the database.
func (r *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	memberModel := model.MemberFromEntity(member)
	result := r.db.WithContext(ctx).Create(memberModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a member by their ID.
func (r *memberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	var memberModel model.MemberModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&memberModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrMemberNotFound
		}
		return nil, result.Error
	}
	return memberModel.ToEntity(), nil
}

// FindByUser retrieves all members of a user's household, sorted by name.
func (r *memberRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Member, error) {
	var memberModels []model.MemberModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&memberModels)
	if result.Error != nil {
		return nil, result.Error
	}

	members := make([]*entity.Member, len(memberModels))
	for i, mm := range memberModels {
		members[i] = mm.ToEntity()
	}
	return members, nil
}

// Delete removes a member. Transactions and rules that assigned to the
// member have their assignment cleared in the same transaction.
func (r *memberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.TransactionModel{}).
			Where("assigned_to = ?", id).
			Update("assigned_to", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.RuleModel{}).
			Where("assign_to = ?", id).
			Update("assign_to", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.MemberModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrMemberNotFound
		}
		return nil
	})
}
