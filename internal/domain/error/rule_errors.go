// Package error defines domain-specific errors for the BudgetLoom application.
package error

import "errors"

// Rule domain errors.
var (
	// ErrRuleNotFound is returned when a rule is not found in the system.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrRuleEmptyKeywords is returned when a rule has no keywords left after normalization.
	ErrRuleEmptyKeywords = errors.New("rule must have at least one keyword")

	// ErrRuleMissingCategory is returned when the rule's category reference is missing.
	ErrRuleMissingCategory = errors.New("rule category is required")

	// ErrCategoryNotFoundForRule is returned when the referenced category does not exist.
	ErrCategoryNotFoundForRule = errors.New("category not found for rule")

	// ErrMemberNotFoundForRule is returned when the referenced assignee does not exist.
	ErrMemberNotFoundForRule = errors.New("household member not found for rule")

	// ErrInvalidAmountBounds is returned when minAmount exceeds maxAmount or a bound is negative.
	ErrInvalidAmountBounds = errors.New("invalid amount bounds")

	// ErrReorderSetMismatch is returned when a reorder request does not cover
	// exactly the existing rule set.
	ErrReorderSetMismatch = errors.New("reorder ids must match the existing rule set exactly")

	// ErrRuleMissingFields is returned when required fields are missing.
	ErrRuleMissingFields = errors.New("missing required fields")

	// ErrEmptyRuleIDs is returned when a bulk delete receives no rule IDs.
	ErrEmptyRuleIDs = errors.New("rule IDs list cannot be empty")

	// ErrRunInProgress is returned when a bulk run is requested while another
	// run for the same user is still in flight.
	ErrRunInProgress = errors.New("a rule run is already in progress")
)

// RuleErrorCode defines error codes for rule errors.
// Format: RUL-XXYYYY where XX is category and YYYY is specific error.
type RuleErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeRuleNotFound         RuleErrorCode = "RUL-010001"
	ErrCodeRuleEmptyKeywords    RuleErrorCode = "RUL-010002"
	ErrCodeRuleMissingCategory  RuleErrorCode = "RUL-010003"
	ErrCodeCategoryNotFoundRule RuleErrorCode = "RUL-010004"
	ErrCodeMemberNotFoundRule   RuleErrorCode = "RUL-010005"
	ErrCodeInvalidAmountBounds  RuleErrorCode = "RUL-010006"
	ErrCodeRuleMissingFields    RuleErrorCode = "RUL-010007"
	ErrCodeEmptyRuleIDs         RuleErrorCode = "RUL-010008"

	// Ordering errors (02XXXX)
	ErrCodeReorderSetMismatch RuleErrorCode = "RUL-020001"

	// Run errors (03XXXX)
	ErrCodeRunInProgress RuleErrorCode = "RUL-030001"
)

// RuleError represents a rule error with code and message.
type RuleError struct {
	Code    RuleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RuleError) Unwrap() error {
	return e.Err
}

// NewRuleError creates a new RuleError with the given code and message.
func NewRuleError(code RuleErrorCode, message string, err error) *RuleError {
	return &RuleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
