package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/budgetloom/backend/internal/domain/entity"
)

// RuleModel represents the rules table in the database.
type RuleModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	Keywords      pq.StringArray   `gorm:"type:text[];not null"`
	CategoryID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Priority      int              `gorm:"not null;default:0"`
	Position      int              `gorm:"not null;index"`
	MinAmount     *decimal.Decimal `gorm:"type:decimal(15,2)"`
	MaxAmount     *decimal.Decimal `gorm:"type:decimal(15,2)"`
	ApplyTags     pq.StringArray   `gorm:"type:text[]"`
	MarkForReview bool             `gorm:"not null;default:false"`
	AssignTo      *uuid.UUID       `gorm:"type:uuid"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the RuleModel.
func (RuleModel) TableName() string {
	return "rules"
}

// ToEntity converts a RuleModel to a domain Rule entity.
func (m *RuleModel) ToEntity() *entity.Rule {
	return &entity.Rule{
		ID:            m.ID,
		UserID:        m.UserID,
		Keywords:      []string(m.Keywords),
		CategoryID:    m.CategoryID,
		Priority:      m.Priority,
		Position:      m.Position,
		MinAmount:     m.MinAmount,
		MaxAmount:     m.MaxAmount,
		ApplyTags:     []string(m.ApplyTags),
		MarkForReview: m.MarkForReview,
		AssignTo:      m.AssignTo,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToEntityWithCategory converts a RuleModel with its Category to a
// RuleWithCategory entity.
func (m *RuleModel) ToEntityWithCategory() *entity.RuleWithCategory {
	result := &entity.RuleWithCategory{
		Rule: m.ToEntity(),
	}

	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}

	return result
}

// RuleFromEntity creates a RuleModel from a domain Rule entity.
func RuleFromEntity(rule *entity.Rule) *RuleModel {
	return &RuleModel{
		ID:            rule.ID,
		UserID:        rule.UserID,
		Keywords:      pq.StringArray(rule.Keywords),
		CategoryID:    rule.CategoryID,
		Priority:      rule.Priority,
		Position:      rule.Position,
		MinAmount:     rule.MinAmount,
		MaxAmount:     rule.MaxAmount,
		ApplyTags:     pq.StringArray(rule.ApplyTags),
		MarkForReview: rule.MarkForReview,
		AssignTo:      rule.AssignTo,
		CreatedAt:     rule.CreatedAt,
		UpdatedAt:     rule.UpdatedAt,
	}
}
