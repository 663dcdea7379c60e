package bistro

import (
	"context"
	"fmt"
	"strings"

	"github.com/amar-at-iitm/primer/internal/exercise"
	"github.com/amar-at-iitm/primer/internal/types"
)

func init() {
	exercise.Register(Runner{})
}

// Runner exposes the bistro walkthrough through the exercise registry.
type Runner struct{}

func (Runner) Info() types.ExerciseInfo {
	return types.ExerciseInfo{
		Slug:    "bistro",
		Title:   "Bistro Front and Back of House",
		Chapter: 7,
		Kind:    types.KindDemo,
		Summary: "Walk an order through a package split by exported and unexported names",
		Usage:   "primer run bistro [dish]...",
	}
}

func (Runner) Run(ctx context.Context, streams exercise.IO, args []string) error {
	fmt.Fprintln(streams.Out, "The bistro package keeps its kitchen private. Exported names are")
	fmt.Fprintln(streams.Out, "the front of house; everything lowercase stays behind the pass.")
	fmt.Fprintln(streams.Out)

	fmt.Fprintln(streams.Out, "bistro.Menu (exported):")
	for _, dish := range Menu() {
		fmt.Fprintf(streams.Out, "  %-18s %-8s %6.2f\n", dish.Name, dish.Course, dish.Price)
	}
	fmt.Fprintln(streams.Out)

	table, err := Seat(2)
	if err != nil {
		return err
	}
	fmt.Fprintf(streams.Out, "bistro.Seat(2) (exported): table %d for %d\n\n", table.Number, table.Seats)

	names := args
	if len(names) == 0 {
		names = []string{"garlic soup", "lemon tart"}
	}
	order, err := PlaceOrder(table, names...)
	if err != nil {
		return err
	}

	fmt.Fprintf(streams.Out, "bistro.PlaceOrder(table, %s) (exported):\n", strings.Join(quoted(names), ", "))
	for _, step := range order.Path() {
		marker := "exported"
		if strings.HasPrefix(step, "cook:") || strings.HasPrefix(step, "plate:") {
			marker = "unexported"
		}
		fmt.Fprintf(streams.Out, "  [%-10s] %s\n", marker, step)
	}
	fmt.Fprintln(streams.Out)

	fmt.Fprintln(streams.Out, "From another package, bistro.cook and bistro.plate do not compile.")
	fmt.Fprintln(streams.Out, "The only way into the kitchen is through PlaceOrder.")
	return nil
}

func quoted(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = fmt.Sprintf("%q", name)
	}
	return out
}
