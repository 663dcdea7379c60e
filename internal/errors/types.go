package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for lookups. Callers wrap these with %w and match with
// errors.Is, so the message text is part of the contract.
var (
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrSnippetNotFound  = errors.New("snippet not found")
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeParse      ErrorType = "parse"
	ErrorTypeExercise   ErrorType = "exercise"
	ErrorTypeRender     ErrorType = "render"
	ErrorTypeInternal   ErrorType = "internal"
)

// PrimerError is a structured error type with context.
type PrimerError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Slug        string
	FilePath    string
	Line        int
	Recoverable bool
}

// Error implements the error interface.
func (e *PrimerError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Slug != "" {
		parts = append(parts, "lesson:"+e.Slug)
	}

	if e.FilePath != "" {
		location := e.FilePath
		if e.Line > 0 {
			location += fmt.Sprintf(":%d", e.Line)
		}
		parts = append(parts, location)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *PrimerError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *PrimerError) Is(target error) bool {
	var t *PrimerError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithLocation adds file location information.
func (e *PrimerError) WithLocation(filePath string, line int) *PrimerError {
	e.FilePath = filePath
	e.Line = line

	return e
}

// WithLesson adds lesson context.
func (e *PrimerError) WithLesson(slug string) *PrimerError {
	e.Slug = slug

	return e
}

// Error creation functions

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *PrimerError {
	return &PrimerError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *PrimerError {
	return &PrimerError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *PrimerError {
	return &PrimerError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewParseError creates a lesson parse error.
func NewParseError(code, message string, cause error) *PrimerError {
	return &PrimerError{
		Type:        ErrorTypeParse,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewExerciseError creates an exercise error.
func NewExerciseError(code, message string, cause error) *PrimerError {
	return &PrimerError{
		Type:        ErrorTypeExercise,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewRenderError creates a rendering error.
func NewRenderError(code, message string, cause error) *PrimerError {
	return &PrimerError{
		Type:        ErrorTypeRender,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *PrimerError {
	return &PrimerError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// Error recovery and handling utilities

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var pe *PrimerError
	if errors.As(err, &pe) {
		return pe.Recoverable
	}

	return false
}

// IsParseError checks if an error came from lesson parsing.
func IsParseError(err error) bool {
	var pe *PrimerError
	if errors.As(err, &pe) {
		return pe.Type == ErrorTypeParse
	}

	return false
}

// IsConfigError checks if an error is configuration-related.
func IsConfigError(err error) bool {
	var pe *PrimerError
	if errors.As(err, &pe) {
		return pe.Type == ErrorTypeConfig
	}

	return false
}
