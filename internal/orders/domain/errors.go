package domain

import "fmt"

// DataValidationError is the single error kind for malformed input and for
// storage failures during create/update/delete. It always carries a
// human-readable message.
type DataValidationError struct {
	Message string
}

func (e *DataValidationError) Error() string { return e.Message }

// NewDataValidationError formats a new validation error.
func NewDataValidationError(format string, args ...any) *DataValidationError {
	return &DataValidationError{Message: fmt.Sprintf(format, args...)}
}

var (
	ErrMissingCustomerID = NewDataValidationError("invalid order: missing customer_id")
	ErrInvalidQuantity   = NewDataValidationError("invalid item: quantity must be greater than zero")
	ErrInvalidUnitPrice  = NewDataValidationError("invalid item: unit_price must not be negative")
	ErrNameTooLong       = NewDataValidationError("invalid item: name exceeds 64 characters")
)
