package hisaab

import (
	"errors"
	"fmt"
)

// Domain errors. All of them are caller-fixable: a rejected operation
// persists nothing. Anything else bubbling out of the store is an
// infrastructure failure and is surfaced wrapped, for the caller's
// retry policy.
var (
	// ErrNotFound reports that a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCancelled reports an operation attempted on a cancelled transaction.
	ErrCancelled = errors.New("transaction is cancelled")
	// ErrSettled reports an attempt to cancel a settled transaction.
	// Settled is terminal; use a payment delete to reopen it.
	ErrSettled = errors.New("transaction is settled")
	// ErrPaymentDeleted reports an operation on an already-deleted payment.
	ErrPaymentDeleted = errors.New("payment is deleted")
)

// ValidationError reports a caller mistake in the fields of a request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
