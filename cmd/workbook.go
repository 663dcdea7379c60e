package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/amar-at-iitm/primer/internal/config"
	apperrors "github.com/amar-at-iitm/primer/internal/errors"
	"github.com/amar-at-iitm/primer/internal/exercise"
	"github.com/amar-at-iitm/primer/internal/notes"
	"github.com/amar-at-iitm/primer/internal/registry"
	"github.com/amar-at-iitm/primer/internal/scanner"
	"github.com/amar-at-iitm/primer/internal/types"
)

// discoverLessons scans the configured lesson source into a fresh registry.
// Scan problems for individual files are collected, not fatal; they surface
// through the scanner's collector (doctor reports them).
func discoverLessons(ctx context.Context, cfg *config.Config) (*notes.Source, *registry.LessonRegistry, *scanner.LessonScanner, error) {
	source, err := notes.NewSource(cfg.Notes.Dir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open notes source: %w", err)
	}

	reg := registry.NewLessonRegistry()
	sc := scanner.NewLessonScanner(reg, cfg.Notes.ExcludePatterns)
	if err := sc.ScanFS(ctx, source); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to scan lessons: %w", err)
	}

	return source, reg, sc, nil
}

// resolveLesson looks a lesson up by slug or filename-style reference and
// prints recovery suggestions when it is missing.
func resolveLesson(reg *registry.LessonRegistry, ref string) (*types.LessonInfo, error) {
	lesson, ok := reg.BySlug(ref)
	if ok {
		return lesson, nil
	}

	suggestions := apperrors.LessonNotFoundError(ref, reg.Slugs())
	fmt.Fprint(os.Stderr, apperrors.FormatSuggestions(suggestions))
	return nil, fmt.Errorf("%w: %s", apperrors.ErrLessonNotFound, ref)
}

// runExercise executes a registered exercise on the real terminal streams.
func runExercise(ctx context.Context, slug string, args []string) error {
	ex, err := exercise.Lookup(slug)
	if err != nil {
		suggestions := apperrors.ExerciseNotFoundError(slug, exercise.Slugs())
		fmt.Fprint(os.Stderr, apperrors.FormatSuggestions(suggestions))
		return err
	}

	return ex.Run(ctx, exercise.StdIO(), args)
}

// exerciseInfos returns the registered exercise metadata in course order.
func exerciseInfos() []types.ExerciseInfo {
	all := exercise.All()
	infos := make([]types.ExerciseInfo, 0, len(all))
	for _, ex := range all {
		infos = append(infos, ex.Info())
	}
	return infos
}
