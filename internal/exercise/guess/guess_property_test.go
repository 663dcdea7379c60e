//go:build property
// +build property

package guess

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestGuessProperties tests invariant properties of the game engine
func TestGuessProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(3141)
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property 1: Binary search wins any 1..100 game within 7 guesses
	properties.Property("binary search always wins", prop.ForAll(
		func(seed int64) bool {
			game, err := New(Config{Rand: rand.New(rand.NewSource(seed))})
			if err != nil {
				return false
			}

			lo, hi := game.Low(), game.High()
			for !game.Over() {
				mid := (lo + hi) / 2
				outcome, err := game.Guess(mid)
				if err != nil {
					return false
				}
				switch outcome {
				case OutcomeLow:
					lo = mid + 1
				case OutcomeHigh:
					hi = mid - 1
				}
			}
			return game.Won() && game.Attempts() <= 7
		},
		gen.Int64Range(0, 1<<31),
	))

	// Property 2: Every hint tells the truth about the secret
	properties.Property("hints are truthful", prop.ForAll(
		func(seed int64, guesses []int) bool {
			game, err := New(Config{
				Difficulty: Easy,
				Rand:       rand.New(rand.NewSource(seed)),
			})
			if err != nil {
				return false
			}

			for _, n := range guesses {
				if game.Over() {
					break
				}
				outcome, err := game.Guess(n)
				if err != nil {
					return false
				}
				switch outcome {
				case OutcomeLow:
					if n >= game.secret {
						return false
					}
				case OutcomeHigh:
					if n <= game.secret {
						return false
					}
				case OutcomeCorrect:
					if n != game.secret {
						return false
					}
				}
			}
			return true
		},
		gen.Int64Range(0, 1<<31),
		gen.SliceOf(gen.IntRange(1, 100)),
	))

	// Property 3: Attempts never pass the limit, and a finished game
	// is either won or out of attempts
	properties.Property("attempts bounded by limit", prop.ForAll(
		func(seed int64, guesses []int) bool {
			game, err := New(Config{
				Difficulty: Hard,
				Rand:       rand.New(rand.NewSource(seed)),
			})
			if err != nil {
				return false
			}

			for _, n := range guesses {
				if game.Over() {
					break
				}
				if _, err := game.Guess(n); err != nil {
					return false
				}
			}

			if game.Attempts() > game.Limit() {
				return false
			}
			if game.Over() {
				return game.Won() || game.Attempts() == game.Limit()
			}
			return true
		},
		gen.Int64Range(0, 1<<31),
		gen.SliceOf(gen.IntRange(1, 100)),
	))

	// Property 4: Out-of-range guesses never move the attempt counter
	properties.Property("out of range costs nothing", prop.ForAll(
		func(seed int64, junk []int) bool {
			game, err := New(Config{Rand: rand.New(rand.NewSource(seed))})
			if err != nil {
				return false
			}

			for _, n := range junk {
				if _, err := game.Guess(n); err == nil {
					return false
				}
			}
			return game.Attempts() == 0 && !game.Over()
		},
		gen.Int64Range(0, 1<<31),
		gen.SliceOf(gen.OneGenOf(gen.IntRange(-1000, 0), gen.IntRange(101, 1000))),
	))

	properties.TestingRun(t)
}
