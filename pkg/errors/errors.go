// Package errors provides structured error types for docweave.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and API
//   - Machine-readable error codes for programmatic handling
//   - Per-directive diagnostics that never abort a resolution run
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every recoverable resolution problem maps to exactly one code. The
// resolution engine attaches these to inclusion edges and returns them as
// diagnostics; it never raises them past the pipeline boundary.
//
// # Usage
//
//	err := errors.New(errors.ErrCodePathTraversal, "path escapes root: %s", p)
//	if errors.Is(err, errors.ErrCodePathTraversal) {
//	    // Handle sandbox violation
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Directive resolution errors (recoverable, attached to edges)
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"
	ErrCodePathTraversal     Code = "PATH_TRAVERSAL"
	ErrCodeUnsupportedScheme Code = "UNSUPPORTED_SCHEME"
	ErrCodeBinaryFile        Code = "BINARY_FILE"
	ErrCodeCycleDetected     Code = "CYCLE_DETECTED"

	// Input validation errors
	ErrCodeInvalidMode Code = "INVALID_MODE"
	ErrCodeInvalidPath Code = "INVALID_PATH"

	// Fatal errors
	ErrCodeRootUnreadable Code = "ROOT_UNREADABLE"
	ErrCodeInternal       Code = "INTERNAL_ERROR"
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

// IsFatal reports whether err should abort a resolution run.
// Only a failure to read the root document is fatal; every other
// resolution error becomes a per-edge diagnostic.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeRootUnreadable, ErrCodeInternal:
		return true
	}
	return false
}
