package fib

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/amar-at-iitm/primer/internal/exercise"
	"github.com/amar-at-iitm/primer/internal/types"
)

func init() {
	exercise.Register(Runner{})
}

// Runner exposes the Fibonacci drill through the exercise registry.
type Runner struct{}

func (Runner) Info() types.ExerciseInfo {
	return types.ExerciseInfo{
		Slug:    "fib",
		Title:   "Fibonacci Numbers",
		Chapter: 4,
		Kind:    types.KindDrill,
		Summary: "Compute Fibonacci numbers iteratively, up to the uint64 limit",
		Usage:   "primer run fib [n]... (0 <= n <= 93)",
	}
}

func (Runner) Run(ctx context.Context, streams exercise.IO, args []string) error {
	if len(args) == 0 {
		seq, err := Sequence(10)
		if err != nil {
			return err
		}
		parts := make([]string, len(seq))
		for i, v := range seq {
			parts[i] = strconv.FormatUint(v, 10)
		}
		fmt.Fprintf(streams.Out, "F(0..10): %s\n", strings.Join(parts, " "))
		fmt.Fprintf(streams.Out, "\nPass your own indexes: primer run fib 42 93\n")
		return nil
	}

	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("not a whole number: %q", arg)
		}
		v, err := N(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(streams.Out, "F(%d) = %d\n", n, v)
	}
	return nil
}
