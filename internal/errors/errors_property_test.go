//go:build property

package errors

import (
	"fmt"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestErrorCollectorProperties validates error collection and aggregation properties
func TestErrorCollectorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2468)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: Error collector should handle concurrent error addition safely
	properties.Property("concurrent error addition is thread-safe", prop.ForAll(
		func(goroutineCount int, errorsPerGoroutine int) bool {
			collector := NewErrorCollector()

			var wg sync.WaitGroup
			totalExpectedErrors := goroutineCount * errorsPerGoroutine

			for g := 0; g < goroutineCount; g++ {
				wg.Add(1)
				go func(goroutineID int) {
					defer wg.Done()
					for e := 0; e < errorsPerGoroutine; e++ {
						err := LessonError{
							Slug:     fmt.Sprintf("lesson_%d_%d", goroutineID, e),
							File:     fmt.Sprintf("notes/%02d-%02d.md", goroutineID, e),
							Line:     e + 1,
							Message:  fmt.Sprintf("error from goroutine %d, iteration %d", goroutineID, e),
							Severity: ErrorSeverityError,
						}
						collector.Add(err)
					}
				}(g)
			}

			wg.Wait()

			errors := collector.GetErrors()

			return len(errors) == totalExpectedErrors
		},
		gen.IntRange(1, 10),
		gen.IntRange(1, 20),
	))

	// Property: Clear always leaves the collector empty regardless of prior content
	properties.Property("clear empties the collector", prop.ForAll(
		func(count int) bool {
			collector := NewErrorCollector()
			for i := 0; i < count; i++ {
				collector.Add(LessonError{
					Slug:     fmt.Sprintf("lesson_%d", i),
					File:     fmt.Sprintf("notes/%02d.md", i),
					Message:  "problem",
					Severity: ErrorSeverityWarning,
				})
			}

			collector.Clear()

			return !collector.HasErrors() && len(collector.GetErrors()) == 0
		},
		gen.IntRange(0, 50),
	))

	// Property: severity filtering by slug returns exactly the matching subset
	properties.Property("slug filtering is exact", prop.ForAll(
		func(matching int, other int) bool {
			collector := NewErrorCollector()
			for i := 0; i < matching; i++ {
				collector.Add(LessonError{Slug: "target", File: "notes/target.md", Message: "m"})
			}
			for i := 0; i < other; i++ {
				collector.Add(LessonError{Slug: fmt.Sprintf("other_%d", i), File: "notes/other.md", Message: "o"})
			}

			return len(collector.GetErrorsBySlug("target")) == matching
		},
		gen.IntRange(0, 25),
		gen.IntRange(0, 25),
	))

	properties.TestingRun(t)
}
