package tempconv

import (
	"context"
	"fmt"

	"github.com/amar-at-iitm/primer/internal/exercise"
	"github.com/amar-at-iitm/primer/internal/types"
)

func init() {
	exercise.Register(Runner{})
}

// Runner converts temperatures given as command arguments.
type Runner struct{}

// Info describes the exercise for listings and lookups
func (Runner) Info() types.ExerciseInfo {
	return types.ExerciseInfo{
		Slug:    "tempconv",
		Title:   "Temperature Conversions",
		Chapter: 3,
		Kind:    types.KindDrill,
		Summary: "Convert between Celsius, Fahrenheit, and Kelvin with typed floats",
		Usage:   "primer run tempconv <temp>... (e.g. 100C -40F 273.15K)",
	}
}

// Run converts each argument, or prints reference rows when given none.
func (Runner) Run(ctx context.Context, streams exercise.IO, args []string) error {
	if len(args) == 0 {
		for _, c := range []Celsius{AbsoluteZeroC, FreezingC, BoilingC} {
			printRow(streams, Reading{Value: float64(c), Scale: ScaleCelsius})
		}
		fmt.Fprintln(streams.Out, "\nPass your own readings: primer run tempconv 37C 98.6F")
		return nil
	}

	for _, arg := range args {
		r, err := Parse(arg)
		if err != nil {
			return err
		}
		printRow(streams, r)
	}

	return nil
}

// printRow prints the reading first in its own scale, then the other two.
func printRow(streams exercise.IO, r Reading) {
	c, f, k := r.Convert()
	switch r.Scale {
	case ScaleFahrenheit:
		fmt.Fprintf(streams.Out, "%s = %s = %s\n", f, c, k)
	case ScaleKelvin:
		fmt.Fprintf(streams.Out, "%s = %s = %s\n", k, c, f)
	default:
		fmt.Fprintf(streams.Out, "%s = %s = %s\n", c, f, k)
	}
}
