package errors

import (
	"errors"
	"fmt"
)

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// CodeOf returns the code of the outermost AppError in the chain, or CodeInternal
// for errors that never went through this package. A nil error has no code.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// IsRetryable reports whether the caller may retry the operation as-is.
// Only store failures qualify; business outcomes never change on retry.
func IsRetryable(err error) bool {
	return Is(err, CodeUnavailable)
}

// Error code constants
const (
	CodeInternal     = "INTERNAL_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidArg   = "INVALID_ARGUMENT"
	CodeConflict     = "CONFLICT"          // Resource or edge already exists
	CodeNotConnected = "NOT_CONNECTED"     // Edge removal for a pair that is not connected
	CodeUnavailable  = "STORE_UNAVAILABLE" // Store unreachable or failed internally
	CodeCascade      = "CASCADE_INCOMPLETE"
)
