// Package guess implements the number guessing game from chapter two.
//
// The rules live in a pure engine so the plain prompt loop, the bubbletea
// screen, and the tests all drive the same game. A round picks a secret
// in [low, high], hands out higher/lower hints, and ends when the player
// finds the secret or runs out of attempts for the chosen difficulty.
package guess

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Difficulty selects the attempt budget.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

// AttemptLimit returns the attempt budget for a difficulty. The budgets
// are tuned for the course's 1..100 range.
func AttemptLimit(d Difficulty) int {
	switch d {
	case Easy:
		return 12
	case Hard:
		return 5
	default:
		return 8
	}
}

// Outcome classifies a counted guess.
type Outcome int

const (
	OutcomeLow Outcome = iota
	OutcomeHigh
	OutcomeCorrect
)

// String returns the string representation of the Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeLow:
		return "low"
	case OutcomeHigh:
		return "high"
	case OutcomeCorrect:
		return "correct"
	default:
		return "unknown"
	}
}

var (
	// ErrOutOfRange rejects a guess outside [low, high]; it does not
	// consume an attempt.
	ErrOutOfRange = errors.New("guess out of range")
	// ErrGameOver rejects guesses after the game has ended.
	ErrGameOver = errors.New("game is over")
)

// Config sets up a round. Zero Low and High default to 1..100, and a nil
// Rand falls back to a time-seeded source.
type Config struct {
	Low        int
	High       int
	Difficulty Difficulty
	Rand       *rand.Rand
}

// Game tracks one round of the guessing game.
type Game struct {
	low      int
	high     int
	secret   int
	attempts int
	limit    int
	done     bool
	won      bool
}

// New creates a round from cfg.
func New(cfg Config) (*Game, error) {
	if cfg.Low == 0 && cfg.High == 0 {
		cfg.Low, cfg.High = 1, 100
	}
	if cfg.Low >= cfg.High {
		return nil, fmt.Errorf("low %d must be less than high %d", cfg.Low, cfg.High)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Game{
		low:    cfg.Low,
		high:   cfg.High,
		secret: cfg.Low + rng.Intn(cfg.High-cfg.Low+1),
		limit:  AttemptLimit(cfg.Difficulty),
	}, nil
}

// Guess submits a guess. Out-of-range guesses return ErrOutOfRange without
// consuming an attempt; a finished game returns ErrGameOver.
func (g *Game) Guess(n int) (Outcome, error) {
	if g.done {
		return 0, ErrGameOver
	}
	if n < g.low || n > g.high {
		return 0, fmt.Errorf("%w: %d is not between %d and %d", ErrOutOfRange, n, g.low, g.high)
	}

	g.attempts++

	switch {
	case n == g.secret:
		g.done = true
		g.won = true
		return OutcomeCorrect, nil
	case n < g.secret:
		g.finishIfExhausted()
		return OutcomeLow, nil
	default:
		g.finishIfExhausted()
		return OutcomeHigh, nil
	}
}

func (g *Game) finishIfExhausted() {
	if g.attempts >= g.limit {
		g.done = true
	}
}

// Low returns the bottom of the guessing range.
func (g *Game) Low() int { return g.low }

// High returns the top of the guessing range.
func (g *Game) High() int { return g.high }

// Attempts returns the number of counted guesses so far.
func (g *Game) Attempts() int { return g.attempts }

// AttemptsLeft returns the remaining attempt budget.
func (g *Game) AttemptsLeft() int { return g.limit - g.attempts }

// Limit returns the attempt budget for the round.
func (g *Game) Limit() int { return g.limit }

// Over reports whether the round has ended.
func (g *Game) Over() bool { return g.done }

// Won reports whether the round ended with the secret found.
func (g *Game) Won() bool { return g.won }

// Reveal returns the secret once the round is over.
func (g *Game) Reveal() (int, bool) {
	if !g.done {
		return 0, false
	}
	return g.secret, true
}
