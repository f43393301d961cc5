// Package errors provides standardized domain errors with codes for the review audit pipeline.
//
// Usage:
//
//	// In stages - return typed errors
//	if len(books) == 0 {
//	    return errors.NoMatchingBooks("no books with 1234 ratings averaging 5.0")
//	}
//
//	// In the command - check with errors.Is
//	if errors.Is(err, errors.ErrNoMatchingReviews) {
//	    ...
//	}
//
//	// Or use the Code directly for the exit status
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    os.Exit(domainErr.Code.ExitCode())
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the pipeline.
const (
	CodeNoMatchingBooks      Code = "NO_MATCHING_BOOKS"
	CodeNoMatchingReviews    Code = "NO_MATCHING_REVIEWS"
	CodeNoKeyIntersection    Code = "NO_KEY_INTERSECTION"
	CodeMissingColumn        Code = "MISSING_COLUMN"
	CodeInsufficientLabels   Code = "INSUFFICIENT_LABELS"
	CodeNoGenuineReviews     Code = "NO_GENUINE_REVIEWS"
	CodeDegenerateVocabulary Code = "DEGENERATE_VOCABULARY"
	CodeValidation           Code = "VALIDATION"
	CodeInternal             Code = "INTERNAL"
)

// ExitCode returns the process exit status for an error code.
// Every code is non-zero; precondition failures share status 2 so scripts
// can tell them apart from configuration (3) and internal (1) failures.
func (c Code) ExitCode() int {
	switch c {
	case CodeNoMatchingBooks, CodeNoMatchingReviews, CodeNoKeyIntersection,
		CodeInsufficientLabels, CodeNoGenuineReviews, CodeDegenerateVocabulary:
		return 2
	case CodeMissingColumn, CodeValidation:
		return 3
	default:
		return 1
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// ExitCode returns the process exit status for this error.
func (e *Error) ExitCode() int {
	return e.Code.ExitCode()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNoMatchingBooks      = &Error{Code: CodeNoMatchingBooks, Message: "no matching books"}
	ErrNoMatchingReviews    = &Error{Code: CodeNoMatchingReviews, Message: "no matching reviews"}
	ErrNoKeyIntersection    = &Error{Code: CodeNoKeyIntersection, Message: "no key intersection"}
	ErrMissingColumn        = &Error{Code: CodeMissingColumn, Message: "missing column"}
	ErrInsufficientLabels   = &Error{Code: CodeInsufficientLabels, Message: "insufficient labels"}
	ErrNoGenuineReviews     = &Error{Code: CodeNoGenuineReviews, Message: "no genuine reviews"}
	ErrDegenerateVocabulary = &Error{Code: CodeDegenerateVocabulary, Message: "degenerate vocabulary"}
	ErrValidation           = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal             = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// NoMatchingBooks creates a no matching books error.
func NoMatchingBooks(msg string) *Error {
	return &Error{Code: CodeNoMatchingBooks, Message: msg}
}

// NoMatchingReviews creates a no matching reviews error.
func NoMatchingReviews(msg string) *Error {
	return &Error{Code: CodeNoMatchingReviews, Message: msg}
}

// NoKeyIntersection creates a no key intersection error.
func NoKeyIntersection(msg string) *Error {
	return &Error{Code: CodeNoKeyIntersection, Message: msg}
}

// MissingColumnf creates a missing column error with formatted message.
func MissingColumnf(format string, args ...any) *Error {
	return &Error{Code: CodeMissingColumn, Message: fmt.Sprintf(format, args...)}
}

// InsufficientLabelsf creates an insufficient labels error with formatted message.
func InsufficientLabelsf(format string, args ...any) *Error {
	return &Error{Code: CodeInsufficientLabels, Message: fmt.Sprintf(format, args...)}
}

// NoGenuineReviews creates a no genuine reviews error.
func NoGenuineReviews(msg string) *Error {
	return &Error{Code: CodeNoGenuineReviews, Message: msg}
}

// DegenerateVocabulary creates a degenerate vocabulary error.
func DegenerateVocabulary(msg string) *Error {
	return &Error{Code: CodeDegenerateVocabulary, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}

// ExitCode returns the exit status for any error.
// Domain errors use their code; anything else is internal.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.ExitCode()
	}
	return CodeInternal.ExitCode()
}
