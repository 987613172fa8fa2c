package model

import (
	"errors"
	"fmt"
)

// ErrLoanNotFound is returned by repositories when no loan matches the
// given identifier.
var ErrLoanNotFound = errors.New("loan not found")

// ValidationError reports malformed or out-of-range input. It is
// deterministic: the same input always produces the same error, so callers
// must never retry it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidStateError reports an operation attempted against a loan whose
// current state forbids it, such as a payment on a closed loan. The
// operation has no effect.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid loan state: %s", e.Reason)
}

func newInvalidStateError(reason string) *InvalidStateError {
	return &InvalidStateError{Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsInvalidState reports whether err is (or wraps) an InvalidStateError.
func IsInvalidState(err error) bool {
	var se *InvalidStateError
	return errors.As(err, &se)
}
