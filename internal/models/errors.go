package models

import (
	"errors"
	"fmt"
)

// ValidationError represents malformed roster input
type ValidationError struct {
	message string
	// Line is the 1-based source line, 0 when the error is not tied to one line
	Line int
}

// NewValidationError creates a new validation error
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		message: fmt.Sprintf(format, args...),
	}
}

// NewLineValidationError creates a validation error pinned to a source line
func NewLineValidationError(line int, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		message: fmt.Sprintf(format, args...),
		Line:    line,
	}
}

// Error returns the error message
func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.message)
	}
	return e.message
}

// IsValidationError checks if an error is (or wraps) a validation error
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
