package numstats

import (
	"context"
	"fmt"

	"github.com/amar-at-iitm/primer/internal/exercise"
	"github.com/amar-at-iitm/primer/internal/types"
)

func init() {
	exercise.Register(Runner{})
}

// Runner exposes the statistics drill through the exercise registry.
type Runner struct{}

func (Runner) Info() types.ExerciseInfo {
	return types.ExerciseInfo{
		Slug:    "numstats",
		Title:   "Number Statistics",
		Chapter: 8,
		Kind:    types.KindDrill,
		Summary: "Mean, median and mode over a list of integers",
		Usage:   "primer run numstats <n>... (e.g. 4 8 15 16 23 42)",
	}
}

func (Runner) Run(ctx context.Context, streams exercise.IO, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: try primer run numstats 4 8 15 16 23 42", ErrNoData)
	}

	nums, err := ParseInts(args)
	if err != nil {
		return err
	}
	s, err := Summarize(nums)
	if err != nil {
		return err
	}

	fmt.Fprintf(streams.Out, "count:  %d\n", s.Count)
	fmt.Fprintf(streams.Out, "min:    %d\n", s.Min)
	fmt.Fprintf(streams.Out, "max:    %d\n", s.Max)
	fmt.Fprintf(streams.Out, "mean:   %g\n", s.Mean)
	fmt.Fprintf(streams.Out, "median: %g\n", s.Median)
	fmt.Fprintf(streams.Out, "mode:   %d\n", s.Mode)
	return nil
}
