// Package errors provides structured error types for the format converter.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across loaders, writers and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The graph model and the format loaders report these kinds of failures:
//   - FORMAT_ERROR: malformed or unsupported input (bad path grammar, missing
//     field, misplaced close-path, transformed or elliptic arcs)
//   - DUPLICATE_EDGE: an edge key was inserted twice without opting into
//     duplicate-tolerant insertion
//   - UNKNOWN_KEY, MISSING_ATTRIBUTE: GraphML key and attribute lookups
//
// Self-loops are not errors; the graph drops them and logs a diagnostic.
//
// # Usage
//
//	err := errors.FormatAt(3, "unknown path element %q", line)
//	if errors.Is(err, errors.ErrCodeFormat) {
//	    // Handle malformed input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
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
	ErrCodeFormat            Code = "FORMAT_ERROR"
	ErrCodeDuplicateEdge     Code = "DUPLICATE_EDGE"
	ErrCodeUnknownKey        Code = "UNKNOWN_KEY"
	ErrCodeMissingAttribute  Code = "MISSING_ATTRIBUTE"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// Validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// FormatAt creates a FORMAT_ERROR that names the 1-based input line it
// refers to.
func FormatAt(line int, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeFormat,
		Message: fmt.Sprintf("line %d: %s", line, fmt.Sprintf(format, args...)),
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
