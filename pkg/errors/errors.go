// Package errors provides structured error types for linkdiag.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for the linker driver
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (manifest lines, config, names)
//   - NOT_FOUND_*: Missing files
//   - UNRESOLVED_SYMBOL, MODULE_NOT_LOADED, TYPE_MISMATCH: the fatal linkage
//     failures that linkdiag explains
//   - INCONSISTENT_GRAPH, INTERNAL_*: Broken internal invariants
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidManifest, "line %d: %s", no, line)
//	if errors.Is(err, errors.ErrCodeInvalidManifest) {
//	    // Skip the line and continue
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInconsistentGraph, origErr, "merge %s", id)
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
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidManifest   Code = "INVALID_MANIFEST"
	ErrCodeInvalidModuleName Code = "INVALID_MODULE_NAME"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeModuleNotFound Code = "MODULE_NOT_FOUND"

	// Linkage failures
	ErrCodeUnresolvedSymbol Code = "UNRESOLVED_SYMBOL"
	ErrCodeModuleNotLoaded  Code = "MODULE_NOT_LOADED"
	ErrCodeTypeMismatch     Code = "TYPE_MISMATCH"

	// Internal errors
	ErrCodeInconsistentGraph Code = "INCONSISTENT_GRAPH"
	ErrCodeInternal          Code = "INTERNAL_ERROR"
	ErrCodeUnsupported       Code = "UNSUPPORTED"
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

// LineError describes a malformed line of a line-oriented input file.
// Line numbers are 1-based.
type LineError struct {
	File   string // Source file, if known
	LineNo int    // 1-based line number
	Line   string // Raw line text
	Reason string // Why the line was rejected
}

// Error implements the error interface.
func (e *LineError) Error() string {
	loc := fmt.Sprintf("line %d", e.LineNo)
	if e.File != "" {
		loc = fmt.Sprintf("%s:%d", e.File, e.LineNo)
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s: %q", loc, e.Reason, e.Line)
	}
	return fmt.Sprintf("%s: %q", loc, e.Line)
}

// Code returns the error code for this error type.
func (e *LineError) Code() Code {
	return ErrCodeInvalidManifest
}
