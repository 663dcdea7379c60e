package faults

import (
	"context"
	"fmt"
	"os"

	"github.com/amar-at-iitm/primer/internal/exercise"
	"github.com/amar-at-iitm/primer/internal/types"
)

func init() {
	exercise.Register(Runner{})
}

// Runner exposes the error-handling walkthrough through the exercise
// registry.
type Runner struct{}

func (Runner) Info() types.ExerciseInfo {
	return types.ExerciseInfo{
		Slug:    "faults",
		Title:   "Errors, Wrapping and Recover",
		Chapter: 9,
		Kind:    types.KindDemo,
		Summary: "Open files that fail, classify the errors, recover from a panic",
		Usage:   "primer run faults [path]",
	}
}

func (Runner) Run(ctx context.Context, streams exercise.IO, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("faults takes at most one path, got %d arguments", len(args))
	}

	fmt.Fprintln(streams.Out, "Errors in Go are values. This demo opens paths, wraps what fails,")
	fmt.Fprintln(streams.Out, "and uses errors.Is and errors.As to look inside the wrap chain.")
	fmt.Fprintln(streams.Out)

	path := "no/such/notes.md"
	if len(args) == 1 {
		path = args[0]
	}
	narrateOpen(streams, path)

	// A path that opens cleanly, for contrast
	if path != os.DevNull {
		narrateOpen(streams, os.DevNull)
	}

	fmt.Fprintln(streams.Out, "A panic is not an error, but recover can turn one into one:")
	err := Recovered(func() {
		letters := []string{"a", "b", "c"}
		i := len(letters) + 2
		_ = letters[i]
	})
	fmt.Fprintf(streams.Out, "  %v\n", err)
	return nil
}

func narrateOpen(streams exercise.IO, path string) {
	fmt.Fprintf(streams.Out, "Opening %q:\n", path)

	f, err := Open(path)
	if err == nil {
		fmt.Fprintln(streams.Out, "  opened and closed without error")
		fmt.Fprintln(streams.Out)
		f.Close()
		return
	}

	fmt.Fprintf(streams.Out, "  error: %v\n", err)
	fmt.Fprintf(streams.Out, "  errors.Is(err, fs.ErrNotExist) = %v\n", Classify(err) == KindNotExist)
	fmt.Fprintf(streams.Out, "  errors.Is(err, fs.ErrPermission) = %v\n", Classify(err) == KindPermission)
	fmt.Fprintf(streams.Out, "  classified as: %s\n", Classify(err))

	fmt.Fprintf(streams.Out, "  errors.As finds the *fs.PathError: %s\n", Describe(err))
	fmt.Fprintln(streams.Out)
}
