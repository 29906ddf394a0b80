// Package errors provides structured error types for roadgraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the library
//   - Machine-readable error codes for programmatic handling
//   - Precise, user-facing messages (e.g. which bounding-box rule failed)
//
// # Error Codes
//
// The codes mirror the failure kinds of the build/export pipeline:
//   - INVALID_BOUNDS: a bounding box failed validation
//   - TRANSPORT_FAILURE: the map data provider could not be reached or answered with an error
//   - UNSUPPORTED_FORMAT: an unknown export format selector
//   - NO_GRAPH: an export was requested before any graph was built
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidBounds, "north must be greater than south")
//	if errors.Is(err, errors.ErrCodeInvalidBounds) {
//	    // Report the rule to the user
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTransport, origErr, "tile %d of %d", i, n)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidBounds     Code = "INVALID_BOUNDS"
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// State errors
	ErrCodeNoGraph         Code = "NO_GRAPH"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Provider errors
	ErrCodeTransport Code = "TRANSPORT_FAILURE"

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
// For *Error types, returns the message without the code prefix, followed by
// the cause when there is one; nested structured causes drop their codes too.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
