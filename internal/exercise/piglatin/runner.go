package piglatin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amar-at-iitm/primer/internal/exercise"
	"github.com/amar-at-iitm/primer/internal/types"
)

// ErrNoWords reports a run with nothing to translate.
var ErrNoWords = errors.New("no words given")

func init() {
	exercise.Register(Runner{})
}

// Runner exposes the pig latin drill through the exercise registry.
type Runner struct{}

func (Runner) Info() types.ExerciseInfo {
	return types.ExerciseInfo{
		Slug:    "piglatin",
		Title:   "Pig Latin",
		Chapter: 8,
		Kind:    types.KindDrill,
		Summary: "Translate words into pig latin, keeping case and punctuation intact",
		Usage:   "primer run piglatin <word>... (e.g. The quick brown fox)",
	}
}

func (Runner) Run(ctx context.Context, streams exercise.IO, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: try primer run piglatin The quick brown fox", ErrNoWords)
	}

	fmt.Fprintln(streams.Out, Sentence(strings.Join(args, " ")))
	return nil
}
