// Package errors provides structured error types for apkgraph.
//
// Every failure that crosses a package boundary carries a [Code] so callers
// can tell "the package exists but has no dependencies" apart from "the
// package or its index could not be found". The CLI maps any coded error to
// a human-readable diagnostic and a non-zero exit status.
//
// # Error Codes
//
//   - SOURCE_UNAVAILABLE: the package index could not be read or fetched
//   - RECORD_NOT_FOUND: a name (or name+version) lookup matched nothing
//   - CYCLE_DETECTED: a load order could not include every package
//   - MALFORMED_INPUT: input that could not be decoded or parsed
//   - INVALID_*: command-line or configuration input was rejected
//
// # Usage
//
//	err := errors.New(errors.ErrCodeRecordNotFound, "package %q not in index", name)
//	if errors.Is(err, errors.ErrCodeRecordNotFound) {
//	    // Handle missing package
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSourceUnavailable, origErr, "fetch %s", url)
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
	ErrCodeInvalidVersion Code = "INVALID_VERSION"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Resolution errors
	ErrCodeSourceUnavailable Code = "SOURCE_UNAVAILABLE"
	ErrCodeRecordNotFound    Code = "RECORD_NOT_FOUND"
	ErrCodeCycleDetected     Code = "CYCLE_DETECTED"
	ErrCodeMalformedInput    Code = "MALFORMED_INPUT"
	ErrCodeLimitExceeded     Code = "LIMIT_EXCEEDED"

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
// the cause when one is attached. For other errors, returns the error string.
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

// IsLookupFailure reports whether err aborts a graph build: the index could
// not be obtained or a required record was missing.
func IsLookupFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeSourceUnavailable, ErrCodeRecordNotFound:
		return true
	}
	return false
}
