// Package error defines domain-specific errors for the ledger engine.
package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account does not resolve to a
	// record owned by the calling user.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountHasTransactions is returned when deleting an account that
	// still owns transactions.
	ErrAccountHasTransactions = errors.New("account has existing transactions")

	// ErrInvalidAccountKind is returned when the account kind is invalid.
	ErrInvalidAccountKind = errors.New("invalid account kind")

	// ErrMissingAccountName is returned when the account name is empty.
	ErrMissingAccountName = errors.New("account name is required")

	// ErrInvalidCreditLimit is returned when a credit account has a
	// non-positive credit limit.
	ErrInvalidCreditLimit = errors.New("invalid credit limit")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAccountKind AccountErrorCode = "ACC-010001"
	ErrCodeMissingAccountName AccountErrorCode = "ACC-010002"
	ErrCodeInvalidCreditLimit AccountErrorCode = "ACC-010003"
	ErrCodeAccountNotFound    AccountErrorCode = "ACC-010004"

	// Conflict errors (02XXXX)
	ErrCodeAccountHasTransactions AccountErrorCode = "ACC-020001"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error

	// TransactionCount carries the number of owning transactions when the
	// code is ErrCodeAccountHasTransactions.
	TransactionCount int64
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
