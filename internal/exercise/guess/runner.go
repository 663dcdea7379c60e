package guess

import (
	"bufio"
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

// Runner is the plain prompt front end for the game.
type Runner struct{}

// Info describes the exercise for listings and lookups
func (Runner) Info() types.ExerciseInfo {
	return types.ExerciseInfo{
		Slug:    "guess",
		Title:   "Guess the Number",
		Chapter: 2,
		Kind:    types.KindInteractive,
		Summary: "Find the secret number from higher/lower hints before attempts run out",
		Usage:   "primer run guess [easy|normal|hard]",
	}
}

// Run plays one round at the requested difficulty.
func (Runner) Run(ctx context.Context, streams exercise.IO, args []string) error {
	difficulty := Normal
	if len(args) > 0 {
		difficulty = Difficulty(strings.ToLower(args[0]))
		switch difficulty {
		case Easy, Normal, Hard:
		default:
			return fmt.Errorf("unknown difficulty %q (easy, normal, or hard)", args[0])
		}
	}

	game, err := New(Config{Difficulty: difficulty})
	if err != nil {
		return err
	}

	return Play(ctx, game, streams)
}

// Play drives one round of an already configured game over the given
// streams. The play command uses this directly with the configured range.
func Play(ctx context.Context, game *Game, streams exercise.IO) error {
	fmt.Fprintf(streams.Out, "I picked a number between %d and %d. You have %d attempts.\n",
		game.Low(), game.High(), game.Limit())

	scanner := bufio.NewScanner(streams.In)

	for !game.Over() {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(streams.Out, "Guess %d/%d: ", game.Attempts()+1, game.Limit())

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			fmt.Fprintln(streams.Out, "\nLeaving the game.")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "quit" {
			fmt.Fprintln(streams.Out, "Leaving the game.")
			return nil
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(streams.Out, "Please enter a whole number.")
			continue
		}

		outcome, err := game.Guess(n)
		if err != nil {
			// Out-of-range guesses cost nothing
			fmt.Fprintf(streams.Out, "Stay between %d and %d.\n", game.Low(), game.High())
			continue
		}

		switch outcome {
		case OutcomeLow:
			fmt.Fprintln(streams.Out, "Too low.")
		case OutcomeHigh:
			fmt.Fprintln(streams.Out, "Too high.")
		case OutcomeCorrect:
			fmt.Fprintf(streams.Out, "Correct! You found it in %d attempts.\n", game.Attempts())
		}
	}

	if !game.Won() {
		if secret, ok := game.Reveal(); ok {
			fmt.Fprintf(streams.Out, "Out of attempts! The number was %d.\n", secret)
		}
	}

	return nil
}
