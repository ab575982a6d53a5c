package error

import "errors"

// Recurring transaction domain errors.
var (
	// ErrRecurringNotFound is returned when a recurring transaction is not found.
	ErrRecurringNotFound = errors.New("recurring transaction not found")

	// ErrInvalidFrequency is returned when the frequency is invalid.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrInvalidRecurringType is returned when the transaction type is not
	// supported for recurrences (only income and expense are allowed).
	ErrInvalidRecurringType = errors.New("recurring transactions support only income and expense")

	// ErrInvalidDateRange is returned when the end date precedes the start date.
	ErrInvalidDateRange = errors.New("end date must not precede start date")

	// ErrScheduleAlreadyAdvanced is returned when a materialization finds the
	// schedule position changed underneath it, typically by a concurrent
	// catch-up run. The occurrence has already been handled elsewhere.
	ErrScheduleAlreadyAdvanced = errors.New("schedule already advanced")
)

// RecurringErrorCode defines error codes for recurring transaction errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidFrequency     RecurringErrorCode = "REC-010001"
	ErrCodeInvalidRecurringType RecurringErrorCode = "REC-010002"
	ErrCodeInvalidDateRange     RecurringErrorCode = "REC-010003"
	ErrCodeRecurringNotFound    RecurringErrorCode = "REC-010004"

	// Conflict errors (02XXXX)
	ErrCodeScheduleAlreadyAdvanced RecurringErrorCode = "REC-020001"
)

// RecurringError represents a recurring transaction error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
