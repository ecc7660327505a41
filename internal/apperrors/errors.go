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

// ErrInvalidDate indicates that a user-supplied date string could not be parsed.
var ErrInvalidDate = errors.New("invalid date")

// ErrInvalidRange indicates a date range whose end precedes its start.
var ErrInvalidRange = errors.New("invalid date range")

// ErrInfrastructure indicates an unrecoverable runtime-environment failure,
// e.g. worker lock file I/O. Never retried.
var ErrInfrastructure = errors.New("infrastructure error")

// NewNotFoundError wraps ErrNotFound with a formatted message.
func NewNotFoundError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// NewValidationError wraps ErrValidation with a formatted message.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// APIError carries the upstream HTTP status and raw body when the rate
// provider returns a non-2xx status, a transport error, or an unparseable
// payload.
type APIError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream API error: %v", e.Err)
	}
	return fmt.Sprintf("upstream API error: status %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
