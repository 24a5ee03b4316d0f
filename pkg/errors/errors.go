// Package errors provides structured error types for dnrgps.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP bridge
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The host-facing taxonomy (NOT_ATTACHED, UNPROJECTABLE_POINT, ...) is
// reported synchronously by the failing operation and is never retried
// internally.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedAddress, "invalid address %q", s)
//	if errors.Is(err, errors.ErrCodeMalformedAddress) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeLayerUnavailable, origErr, "create %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Host state errors
	ErrCodeNotAttached        Code = "NOT_ATTACHED"
	ErrCodeUnprojectablePoint Code = "UNPROJECTABLE_POINT"
	ErrCodeLayerUnavailable   Code = "LAYER_UNAVAILABLE"
	ErrCodeNotAFeatureLayer   Code = "NOT_A_FEATURE_LAYER"
	ErrCodeLayerNotFound      Code = "LAYER_NOT_FOUND"

	// Input validation errors
	ErrCodeMissingShapeColumn Code = "MISSING_SHAPE_COLUMN"
	ErrCodeMalformedAddress   Code = "MALFORMED_ADDRESS"
	ErrCodeIndexOutOfRange    Code = "INDEX_OUT_OF_RANGE"
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// coder is implemented by error types that carry a code without being *Error.
type coder interface {
	error
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error (or any error exposing
// a Code method) with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
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

// IndexOutOfRangeError reports a layer address component that does not index
// a child of its container.
type IndexOutOfRangeError struct {
	Component int    // Position of the offending component within the address
	Index     int    // The index that was requested
	Count     int    // Number of children in the container; 0 means empty
	Container string // Name of the map or group that was indexed
}

// Error implements the error interface.
func (e *IndexOutOfRangeError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("address component %d: %q is empty", e.Component, e.Container)
	}
	return fmt.Sprintf("address component %d: index %d for %q is not in the range (0,%d)",
		e.Component, e.Index, e.Container, e.Count-1)
}

// Code returns the error code for this error type.
func (e *IndexOutOfRangeError) Code() Code {
	return ErrCodeIndexOutOfRange
}

// Empty reports whether the indexed container had no children at all.
func (e *IndexOutOfRangeError) Empty() bool {
	return e.Count == 0
}
