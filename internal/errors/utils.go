package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating a PrimerError if the
// input is not already one
func Wrap(err error, errType ErrorType, code, message string) *PrimerError {
	if err == nil {
		return nil
	}

	// If it's already a PrimerError, preserve its properties but update the message
	var pe *PrimerError
	if errors.As(err, &pe) {
		return &PrimerError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       pe,
			Slug:        pe.Slug,
			FilePath:    pe.FilePath,
			Line:        pe.Line,
			Recoverable: pe.Recoverable,
		}
	}

	return &PrimerError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation || errType == ErrorTypeParse || errType == ErrorTypeExercise,
	}
}

// WrapValidation wraps an error as a validation error
func WrapValidation(err error, code, message string) *PrimerError {
	return Wrap(err, ErrorTypeValidation, code, message)
}

// WrapIO wraps an error as an I/O error
func WrapIO(err error, code, message string) *PrimerError {
	primerErr := Wrap(err, ErrorTypeIO, code, message)
	if primerErr != nil {
		primerErr.Recoverable = false
	}
	return primerErr
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, code, message string) *PrimerError {
	primerErr := Wrap(err, ErrorTypeConfig, code, message)
	if primerErr != nil {
		primerErr.Recoverable = false
	}
	return primerErr
}

// WrapParse wraps an error as a lesson parse error
func WrapParse(err error, code, message string) *PrimerError {
	return Wrap(err, ErrorTypeParse, code, message)
}

// WrapInternal wraps an error as an internal error
func WrapInternal(err error, code, message string) *PrimerError {
	primerErr := Wrap(err, ErrorTypeInternal, code, message)
	if primerErr != nil {
		primerErr.Recoverable = false
	}
	return primerErr
}

// FormatError formats an error for user display
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var pe *PrimerError
	if errors.As(err, &pe) {
		return pe.Error()
	}

	return err.Error()
}

// FirstError returns the first non-nil error from a list
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
