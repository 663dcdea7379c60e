// Package fib bundles the chapter 4 loops drill: an iterative Fibonacci
// implementation with an explicit overflow bound instead of a recursive
// one that falls over long before the math does.
package fib

import (
	"errors"
	"fmt"
)

// MaxN is the largest index whose Fibonacci number fits in a uint64.
// F(94) needs 94 bits.
const MaxN = 93

// ErrOutOfRange reports an index below zero or above MaxN.
var ErrOutOfRange = errors.New("index out of range")

// N returns the nth Fibonacci number, with N(0) = 0 and N(1) = 1.
func N(n int) (uint64, error) {
	if n < 0 || n > MaxN {
		return 0, fmt.Errorf("%w: n must be between 0 and %d, got %d", ErrOutOfRange, MaxN, n)
	}
	var a, b uint64 = 0, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return a, nil
}

// Sequence returns the Fibonacci numbers from F(0) through F(n).
func Sequence(n int) ([]uint64, error) {
	if n < 0 || n > MaxN {
		return nil, fmt.Errorf("%w: n must be between 0 and %d, got %d", ErrOutOfRange, MaxN, n)
	}
	seq := make([]uint64, n+1)
	var a, b uint64 = 0, 1
	for i := range seq {
		seq[i] = a
		a, b = b, a+b
	}
	return seq, nil
}
