package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budgetloom/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Tags        pq.StringArray  `gorm:"type:text[]"`
	Verified    bool            `gorm:"not null;default:false;index"`
	AssignedTo  *uuid.UUID      `gorm:"type:uuid;index"`
	Notes       string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	Assignee *MemberModel   `gorm:"foreignKey:AssignedTo;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Date:        m.Date,
		Description: m.Description,
		Amount:      m.Amount,
		CategoryID:  m.CategoryID,
		Tags:        []string(m.Tags),
		Verified:    m.Verified,
		AssignedTo:  m.AssignedTo,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// ToEntityWithCategory converts a TransactionModel with its Category to a
// TransactionWithCategory entity.
func (m *TransactionModel) ToEntityWithCategory() *entity.TransactionWithCategory {
	result := &entity.TransactionWithCategory{
		Transaction: m.ToEntity(),
	}

	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}

	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(tx *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if tx.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *tx.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount,
		CategoryID:  tx.CategoryID,
		Tags:        pq.StringArray(tx.Tags),
		Verified:    tx.Verified,
		AssignedTo:  tx.AssignedTo,
		Notes:       tx.Notes,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}
