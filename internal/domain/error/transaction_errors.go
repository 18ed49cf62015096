// Package error defines domain-specific errors for the BudgetLoom application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrCategoryNotFoundForTransaction is returned when the referenced category does not exist.
	ErrCategoryNotFoundForTransaction = errors.New("category not found for transaction")

	// ErrMemberNotFoundForTransaction is returned when the referenced household member does not exist.
	ErrMemberNotFoundForTransaction = errors.New("household member not found for transaction")

	// ErrTransactionMissingFields is returned when required fields are missing.
	ErrTransactionMissingFields = errors.New("missing required fields")

	// ErrEmptyTransactionIDs is returned when a bulk operation receives no transaction IDs.
	ErrEmptyTransactionIDs = errors.New("transaction IDs list cannot be empty")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	ErrCodeTransactionNotFound     TransactionErrorCode = "TXN-010001"
	ErrCodeTxnCategoryNotFound     TransactionErrorCode = "TXN-010002"
	ErrCodeTxnMemberNotFound       TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionMissingField TransactionErrorCode = "TXN-010004"
	ErrCodeEmptyTransactionIDs     TransactionErrorCode = "TXN-010005"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
