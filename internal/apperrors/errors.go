package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates the buyer cannot cover a trade from barter
// balance plus available credit. This is a soft outcome: the unit of work
// aborts with no mutation, but callers report it as a rejection, not a failure.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrCapExceeded indicates a trade would breach one of the seller's sales caps.
var ErrCapExceeded = errors.New("sales cap exceeded")

// ErrInvalidStateTransition indicates a workflow or status operation was
// attempted from a state that does not permit it.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrConflict indicates the operation conflicts with the current state of the
// resource (e.g. concurrent modification detected by a row version).
var ErrConflict = errors.New("conflict with current resource state")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal indicates an unexpected failure in storage or a collaborator.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a message and cause.
// Repositories use it to surface storage failures without leaking SQL details.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
