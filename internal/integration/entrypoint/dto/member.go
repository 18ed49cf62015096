package dto

import (
	"time"

	"github.com/budgetloom/backend/internal/domain/entity"
)

// CreateMemberRequest represents the request body for member creation.
type CreateMemberRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// MemberResponse represents a household member in API responses.
type MemberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberListResponse represents the response for listing members.
type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
}

// ToMemberResponse converts a domain Member to a MemberResponse DTO.
func ToMemberResponse(member *entity.Member) MemberResponse {
	return MemberResponse{
		ID:        member.ID.String(),
		Name:      member.Name,
		CreatedAt: member.CreatedAt,
	}
}

// ToMemberListResponse converts domain Members to a MemberListResponse.
func ToMemberListResponse(members []*entity.Member) MemberListResponse {
	response := MemberListResponse{
		Members: make([]MemberResponse, len(members)),
	}
	for i, member := range members {
		response.Members[i] = ToMemberResponse(member)
	}
	return response
}
