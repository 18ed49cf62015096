// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Member represents a household member transactions can be assigned to.
// Members belong to the account holder's household; they are assignment
// targets only and do not log in themselves.
type Member struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
}

// NewMember creates a new household Member entity.
func NewMember(userID uuid.UUID, name string) *Member {
	return &Member{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
