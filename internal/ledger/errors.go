package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record exists for the given order number.
var ErrNotFound = errors.New("sale record not found")

// ErrValidation is returned when required input is missing or invalid. The
// triggering operation aborts before any store mutation.
var ErrValidation = errors.New("validation failed")

// ErrInvalidState is returned when an operation is incompatible with the
// record's current status, e.g. paying a cancelled record.
var ErrInvalidState = errors.New("operation not allowed in current status")

// ErrAlreadySettled is returned when registering a payment on a record whose
// remaining balance is already zero or less.
var ErrAlreadySettled = errors.New("sale is already fully paid")

// ErrAlreadyCancelled is returned when cancelling a record twice.
var ErrAlreadyCancelled = errors.New("sale is already cancelled")

// ErrConfirmationRequired is returned when a destructive operation is missing
// its explicit confirmation (overpayment, cancellation, or the permanent
// delete challenge text).
var ErrConfirmationRequired = errors.New("explicit confirmation required")

func newValidationError(detail string) error {
	return fmt.Errorf("%w: %s", ErrValidation, detail)
}
