// Package faults bundles the chapter 9 error-handling demo: opening
// files that may not exist, wrapping what fails, and using errors.Is,
// errors.As and recover to look inside.
package faults

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Kind buckets an open failure by what the caller can do about it.
type Kind int

const (
	// KindOther covers everything the demo has no special handling for
	KindOther Kind = iota
	// KindNotExist means the path simply is not there
	KindNotExist
	// KindPermission means the path exists but is off limits
	KindPermission
)

// String returns the string representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindNotExist:
		return "missing file"
	case KindPermission:
		return "permission denied"
	default:
		return "other"
	}
}

// Open opens the path for reading, wrapping any failure with context
// while keeping the original error reachable through errors.Is.
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open notes file: %w", err)
	}
	return f, nil
}

// Classify walks the wrap chain and buckets the failure.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotExist
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	default:
		return KindOther
	}
}

// Describe pulls the *fs.PathError out of a wrapped chain, if one is
// there, and reports which operation failed on which path.
func Describe(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Sprintf("op=%s path=%s: %v", pathErr.Op, pathErr.Path, pathErr.Err)
	}
	return err.Error()
}

// Recovered runs fn and converts a panic into an ordinary error, the
// way a server loop shields itself from one bad handler.
func Recovered(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered: %v", r)
		}
	}()
	fn()
	return nil
}
