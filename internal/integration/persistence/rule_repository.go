// Package persistence implements repository interfaces for database operations.
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

// ruleRepository implements the adapter.RuleRepository interface.
type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository creates a new rule repository instance.
func NewRuleRepository(db *gorm.DB) adapter.RuleRepository {
	return &ruleRepository{
		db: db,
	}
}

// Create creates a new rule in the database.
func (r *ruleRepository) Create(ctx context.Context, rule *entity.Rule) error {
	ruleModel := model.RuleFromEntity(rule)
	result := r.db.WithContext(ctx).Create(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a rule by its ID.
func (r *ruleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rule, error) {
	var ruleModel model.RuleModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRuleNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// FindByUser retrieves all rules for a user, sorted by position (ascending).
func (r *ruleRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Rule, error) {
	var ruleModels []model.RuleModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.Rule, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntity()
	}
	return rules, nil
}

// FindByUserWithCategory retrieves all rules with their categories for a
// user, sorted by position (ascending).
func (r *ruleRepository) FindByUserWithCategory(ctx context.Context, userID uuid.UUID) ([]*entity.RuleWithCategory, error) {
	var ruleModels []model.RuleModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.RuleWithCategory, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntityWithCategory()
	}
	return rules, nil
}

// Update updates an existing rule in the database.
func (r *ruleRepository) Update(ctx context.Context, rule *entity.Rule) error {
	ruleModel := model.RuleFromEntity(rule)
	result := r.db.WithContext(ctx).Save(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a rule and renumbers the remaining positions densely.
func (r *ruleRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.RuleModel{}, "id = ? AND user_id = ?", id, userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrRuleNotFound
		}
		return renumberPositions(tx, userID)
	})
}

// BulkDelete removes the given rules in one transaction and renumbers the
// remaining positions densely. IDs not owned by the user are ignored.
func (r *ruleRepository) BulkDelete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.RuleModel{}, "user_id = ? AND id IN ?", userID, ids)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		if deleted == 0 {
			return nil
		}
		return renumberPositions(tx, userID)
	})
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

// ReorderPositions atomically rewrites the positions of a user's rules to
// match the order of ids. Callers must pass an exact permutation of the
// user's rule set.
func (r *ruleRepository) ReorderPositions(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, id := range ids {
			result := tx.Model(&model.RuleModel{}).
				Where("id = ? AND user_id = ?", id, userID).
				Update("position", position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return domainerror.ErrRuleNotFound
			}
		}
		return nil
	})
}

// MaxPriorityByUser returns the highest priority among a user's rules, or
// 0 when the user has none.
func (r *ruleRepository) MaxPriorityByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var max *int
	result := r.db.WithContext(ctx).
		Model(&model.RuleModel{}).
		Where("user_id = ?", userID).
		Select("MAX(priority)").
		Scan(&max)
	if result.Error != nil {
		return 0, result.Error
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// MaxPositionByUser returns the highest position among a user's rules, or
// -1 when the user has none.
func (r *ruleRepository) MaxPositionByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var max *int
	result := r.db.WithContext(ctx).
		Model(&model.RuleModel{}).
		Where("user_id = ?", userID).
		Select("MAX(position)").
		Scan(&max)
	if result.Error != nil {
		return 0, result.Error
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// renumberPositions rewrites a user's rule positions to 0..n-1 keeping
// the current relative order.
func renumberPositions(tx *gorm.DB, userID uuid.UUID) error {
	var ruleModels []model.RuleModel
	if err := tx.Where("user_id = ?", userID).
		Order("position ASC").
		Find(&ruleModels).Error; err != nil {
		return err
	}

	for position, rm := range ruleModels {
		if rm.Position == position {
			continue
		}
		if err := tx.Model(&model.RuleModel{}).
			Where("id = ?", rm.ID).
			Update("position", position).Error; err != nil {
			return err
		}
	}
	return nil
}
