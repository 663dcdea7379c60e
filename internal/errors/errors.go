package errors

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// LessonError represents a problem found while scanning or parsing a lesson
type LessonError struct {
	Slug      string
	File      string
	Line      int
	Message   string
	Severity  ErrorSeverity
	Timestamp time.Time
}

// ErrorSeverity represents the severity of an error
type ErrorSeverity int

const (
	ErrorSeverityInfo ErrorSeverity = iota
	ErrorSeverityWarning
	ErrorSeverityError
	ErrorSeverityFatal
)

// String returns the string representation of the severity
func (s ErrorSeverity) String() string {
	switch s {
	case ErrorSeverityInfo:
		return "info"
	case ErrorSeverityWarning:
		return "warning"
	case ErrorSeverityError:
		return "error"
	case ErrorSeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error implements the error interface
func (le *LessonError) Error() string {
	if le.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", le.File, le.Line, le.Severity, le.Message)
	}
	return fmt.Sprintf("%s: %s: %s", le.File, le.Severity, le.Message)
}

// ErrorCollector collects and manages lesson errors and general errors
type ErrorCollector struct {
	lessonErrors []LessonError
	errors       []error
	mutex        sync.RWMutex
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		lessonErrors: make([]LessonError, 0),
		errors:       make([]error, 0),
	}
}

// Add adds a lesson error to the collector
func (ec *ErrorCollector) Add(err LessonError) {
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	err.Timestamp = time.Now()
	ec.lessonErrors = append(ec.lessonErrors, err)
}

// AddError adds a general error to the collector
func (ec *ErrorCollector) AddError(err error) {
	if err == nil {
		return
	}
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.errors = append(ec.errors, err)
}

// GetErrors returns all collected lesson errors
func (ec *ErrorCollector) GetErrors() []LessonError {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	// Return a copy to avoid race conditions
	result := make([]LessonError, len(ec.lessonErrors))
	copy(result, ec.lessonErrors)
	return result
}

// GetAllErrors returns all collected errors (lesson and general)
func (ec *ErrorCollector) GetAllErrors() []error {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()

	allErrors := make([]error, 0, len(ec.lessonErrors)+len(ec.errors))

	for _, lessonErr := range ec.lessonErrors {
		allErrors = append(allErrors, &lessonErr)
	}

	allErrors = append(allErrors, ec.errors...)

	return allErrors
}

// HasErrors returns true if there are any errors
func (ec *ErrorCollector) HasErrors() bool {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	return len(ec.lessonErrors) > 0 || len(ec.errors) > 0
}

// Clear clears all errors
func (ec *ErrorCollector) Clear() {
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.lessonErrors = ec.lessonErrors[:0]
	ec.errors = ec.errors[:0]
}

// GetErrorsByFile returns errors for a specific file
func (ec *ErrorCollector) GetErrorsByFile(file string) []LessonError {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	var fileErrors []LessonError
	for _, err := range ec.lessonErrors {
		if err.File == file {
			fileErrors = append(fileErrors, err)
		}
	}
	return fileErrors
}

// GetErrorsBySlug returns errors for a specific lesson
func (ec *ErrorCollector) GetErrorsBySlug(slug string) []LessonError {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	var slugErrors []LessonError
	for _, err := range ec.lessonErrors {
		if err.Slug == slug {
			slugErrors = append(slugErrors, err)
		}
	}
	return slugErrors
}

// Summary renders the collected errors as a terminal report grouped by file,
// suitable for the scan and doctor commands. Returns the empty string when
// nothing was collected.
func (ec *ErrorCollector) Summary() string {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()

	if len(ec.lessonErrors) == 0 && len(ec.errors) == 0 {
		return ""
	}

	var sb strings.Builder

	byFile := make(map[string][]LessonError)
	files := make([]string, 0)
	for _, err := range ec.lessonErrors {
		if _, seen := byFile[err.File]; !seen {
			files = append(files, err.File)
		}
		byFile[err.File] = append(byFile[err.File], err)
	}
	sort.Strings(files)

	for _, file := range files {
		fmt.Fprintf(&sb, "%s\n", file)
		for _, err := range byFile[file] {
			if err.Line > 0 {
				fmt.Fprintf(&sb, "  %s (line %d): %s\n", err.Severity, err.Line, err.Message)
			} else {
				fmt.Fprintf(&sb, "  %s: %s\n", err.Severity, err.Message)
			}
		}
	}

	for _, err := range ec.errors {
		fmt.Fprintf(&sb, "error: %v\n", err)
	}

	return sb.String()
}
