package core

import (
	"errors"
	"fmt"
)

// Error codes for domain errors.
const (
	ErrCodeInvalidInput     = "invalid_input"
	ErrCodeConflict         = "conflict"
	ErrCodeNotFound         = "not_found"
	ErrCodeUnknownSender    = "unknown_sender"
	ErrCodeStoreUnavailable = "store_unavailable"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("name already taken")
	ErrNotFound         = errors.New("participant not found")
	ErrUnknownSender    = errors.New("unknown sender")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Error wraps a code and human-readable message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Classify maps any error returned by the services onto a domain Error.
// Unrecognized errors are reported as store failures.
func Classify(err error) *Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidInput):
		return &Error{Code: ErrCodeInvalidInput, Message: err.Error()}
	case errors.Is(err, ErrConflict):
		return &Error{Code: ErrCodeConflict, Message: ErrConflict.Error()}
	case errors.Is(err, ErrNotFound):
		return &Error{Code: ErrCodeNotFound, Message: ErrNotFound.Error()}
	case errors.Is(err, ErrUnknownSender):
		return &Error{Code: ErrCodeUnknownSender, Message: ErrUnknownSender.Error()}
	default:
		return &Error{Code: ErrCodeStoreUnavailable, Message: ErrStoreUnavailable.Error()}
	}
}

// Invalid builds an ErrInvalidInput with detail.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Unavailable marks a storage failure for op.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
