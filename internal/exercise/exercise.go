// Package exercise defines the runnable exercise surface and its registry.
//
// Exercise implementations live in subpackages and register themselves at
// init time, the way database/sql drivers do; the all subpackage pulls
// every bundled exercise in with blank imports. Commands look exercises up
// by slug and run them against explicit IO streams, which keeps the
// interactive ones drivable from tests.
package exercise

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	apperrors "github.com/amar-at-iitm/primer/internal/errors"
	"github.com/amar-at-iitm/primer/internal/types"
)

// IO bundles the streams an exercise reads and writes.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdIO returns the process standard streams.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Exercise is a runnable program bundled with the course.
type Exercise interface {
	// Info describes the exercise for listings and lookups
	Info() types.ExerciseInfo
	// Run executes the exercise against the given streams
	Run(ctx context.Context, streams IO, args []string) error
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Exercise)
)

// Register makes an exercise available under its slug. It panics on an
// empty slug or a duplicate registration, mirroring database/sql.Register.
func Register(e Exercise) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if e == nil {
		panic("exercise: Register exercise is nil")
	}
	slug := e.Info().Slug
	if slug == "" {
		panic("exercise: Register exercise has empty slug")
	}
	if _, dup := registry[slug]; dup {
		panic("exercise: Register called twice for exercise " + slug)
	}
	registry[slug] = e
}

// Lookup returns the exercise registered under slug.
func Lookup(slug string) (Exercise, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	e, ok := registry[slug]
	if !ok {
		return nil, fmt.Errorf("%q: %w", slug, apperrors.ErrExerciseNotFound)
	}
	return e, nil
}

// All returns every registered exercise ordered by chapter, then slug.
func All() []Exercise {
	registryMu.RLock()
	defer registryMu.RUnlock()

	all := make([]Exercise, 0, len(registry))
	for _, e := range registry {
		all = append(all, e)
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i].Info(), all[j].Info()
		if a.Chapter != b.Chapter {
			return a.Chapter < b.Chapter
		}
		return a.Slug < b.Slug
	})

	return all
}

// Slugs returns the registered slugs in the order All uses.
func Slugs() []string {
	all := All()
	slugs := make([]string, 0, len(all))
	for _, e := range all {
		slugs = append(slugs, e.Info().Slug)
	}
	return slugs
}

// Count returns the number of registered exercises.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// ForChapter returns the exercises belonging to one chapter, in slug order.
func ForChapter(chapter int) []Exercise {
	var matched []Exercise
	for _, e := range All() {
		if e.Info().Chapter == chapter {
			matched = append(matched, e)
		}
	}
	return matched
}

// reset clears the registry. Tests only.
func reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Exercise)
}
