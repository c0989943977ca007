// Package scanner walks source trees and runs the full pattern analysis
// pipeline over each file: extraction, static risk analysis, bounded
// execution, and performance scoring.
package scanner

import (
	"fmt"
	"time"
)

// ErrorCode identifies the type of analysis error.
type ErrorCode string

// Error codes for scan operations.
const (
	ErrCodeFileAccess    ErrorCode = "FILE_ACCESS"
	ErrCodeFileRead      ErrorCode = "FILE_READ"
	ErrCodeFileTooLarge  ErrorCode = "FILE_TOO_LARGE"
	ErrCodeContextCancel ErrorCode = "CONTEXT_CANCELLED"
	ErrCodeValidation    ErrorCode = "VALIDATION"
	ErrCodeCache         ErrorCode = "CACHE"
)

// AnalysisError provides structured error information for scan operations.
// Every failure mode is represented as a value; nothing in the scan path
// panics on malformed input.
type AnalysisError struct {
	Code      ErrorCode
	Path      string
	Operation string
	Message   string
	Cause     error
	Timestamp time.Time
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s failed for %s: %s: %v",
			e.Code, e.Operation, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s failed for %s: %s",
		e.Code, e.Operation, e.Path, e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Is matches errors by code.
func (e *AnalysisError) Is(target error) bool {
	if t, ok := target.(*AnalysisError); ok {
		return e.Code == t.Code
	}
	return false
}

// IsFatal returns true if the error should stop the entire scan.
func (e *AnalysisError) IsFatal() bool {
	return e.Code == ErrCodeContextCancel
}

// NewAnalysisError creates a new analysis error.
func NewAnalysisError(code ErrorCode, path, operation, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Code:      code,
		Path:      path,
		Operation: operation,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// ErrFileAccess creates an error for file access failures.
func ErrFileAccess(path string, cause error) *AnalysisError {
	return NewAnalysisError(ErrCodeFileAccess, path, "open", "cannot access file", cause)
}

// ErrFileRead creates an error for file read failures.
func ErrFileRead(path string, cause error) *AnalysisError {
	return NewAnalysisError(ErrCodeFileRead, path, "read", "cannot read file", cause)
}

// ErrFileTooLarge creates an error for files exceeding the size limit.
func ErrFileTooLarge(path string, size, limit int64) *AnalysisError {
	return NewAnalysisError(ErrCodeFileTooLarge, path, "validate",
		fmt.Sprintf("file size %d exceeds limit %d", size, limit), nil)
}

// ErrCancelled creates an error for cancelled operations.
func ErrCancelled(path string, cause error) *AnalysisError {
	return NewAnalysisError(ErrCodeContextCancel, path, "scan", "operation cancelled", cause)
}
