package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/domain/entity"
)

// MemberModel represents the members table in the database.
type MemberModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the MemberModel.
func (MemberModel) TableName() string {
	return "members"
}

// ToEntity converts a MemberModel to a domain Member entity.
func (m *MemberModel) ToEntity() *entity.Member {
	return &entity.Member{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

// MemberFromEntity creates a MemberModel from a domain Member entity.
func MemberFromEntity(member *entity.Member) *MemberModel {
	return &MemberModel{
		ID:        member.ID,
		UserID:    member.UserID,
		Name:      member.Name,
		CreatedAt: member.CreatedAt,
	}
}
