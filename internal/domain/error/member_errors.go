// Package error defines domain-specific errors for the BudgetLoom application.
package error

import "errors"

// Household member domain errors.
var (
	// ErrMemberNotFound is returned when a household member is not found in the system.
	ErrMemberNotFound = errors.New("household member not found")

	// ErrMemberMissingFields is returned when required fields are missing.
	ErrMemberMissingFields = errors.New("missing required fields")
)

// MemberErrorCode defines error codes for household member errors.
// Format: MEM-XXYYYY where XX is category and YYYY is specific error.
type MemberErrorCode string

const (
	ErrCodeMemberNotFound      MemberErrorCode = "MEM-010001"
	ErrCodeMemberMissingFields MemberErrorCode = "MEM-010002"
)

// MemberError represents a household member error with code and message.
type MemberError struct {
	Code    MemberErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *MemberError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *MemberError) Unwrap() error {
	return e.Err
}

// NewMemberError creates a new MemberError with the given code and message.
func NewMemberError(code MemberErrorCode, message string, err error) *MemberError {
	return &MemberError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
