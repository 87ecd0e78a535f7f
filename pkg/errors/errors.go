// Package errors provides structured error types for the Flowbox engine.
//
// Error codes are machine-readable and hierarchical:
//   - INVALID_*: input validation failures (imports, config)
//   - *_NOT_FOUND: missing resources (boards, store keys)
//   - STORE_*: persistence backend failures
//   - INTERNAL_*: unexpected internal errors
//
// Policy rejections — duplicate connectors, self-loops, gestures started
// while one is active — are deliberately NOT part of this taxonomy: they
// are silent no-ops inside the model and controllers, because they
// represent normal interactive exploration.
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidImport, "nodes array missing")
//	if errors.Is(err, errors.ErrCodeInvalidImport) {
//	    // report to the user, abort the import
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidImport Code = "INVALID_IMPORT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidKind   Code = "INVALID_KIND"
	ErrCodeInvalidPort   Code = "INVALID_PORT"

	// Resource not found errors
	ErrCodeBoardNotFound Code = "BOARD_NOT_FOUND"
	ErrCodeKeyNotFound   Code = "KEY_NOT_FOUND"

	// Persistence errors
	ErrCodeStore Code = "STORE_ERROR"

	// State errors
	ErrCodeGestureActive Code = "GESTURE_ACTIVE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
