package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorSuggestion represents a suggestion for fixing an error
type ErrorSuggestion struct {
	Title       string
	Description string
	Command     string
	Example     string
}

// LessonNotFoundError generates suggestions for lesson not found errors.
// The available slice holds the slugs currently known to the registry.
func LessonNotFoundError(slug string, available []string) []ErrorSuggestion {
	suggestions := []ErrorSuggestion{
		{
			Title:       "List all discovered lessons",
			Description: "See what lessons primer has found",
			Command:     "primer list",
		},
		{
			Title:       "Check the notes directory configuration",
			Description: "Verify your .primer.yml notes dir points at your Markdown files",
			Example:     "notes:\n  dir: \"./notes\"",
		},
	}

	if match := closestMatch(slug, available); match != "" {
		suggestions = append([]ErrorSuggestion{{
			Title:       "Did you mean '" + match + "'?",
			Description: "Similar lesson found",
			Command:     "primer read " + match,
		}}, suggestions...)
	} else if len(available) > 0 {
		sorted := make([]string, len(available))
		copy(sorted, available)
		sort.Strings(sorted)
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Available lessons",
			Description: "These lessons are currently available: " + strings.Join(sorted, ", "),
		})
	}

	return suggestions
}

// ExerciseNotFoundError generates suggestions for exercise not found errors.
func ExerciseNotFoundError(slug string, available []string) []ErrorSuggestion {
	suggestions := []ErrorSuggestion{
		{
			Title:       "List all exercises",
			Description: "See the runnable exercises bundled with primer",
			Command:     "primer run --list",
		},
	}

	if match := closestMatch(slug, available); match != "" {
		suggestions = append([]ErrorSuggestion{{
			Title:       "Did you mean '" + match + "'?",
			Description: "Similar exercise found",
			Command:     "primer run " + match,
		}}, suggestions...)
	}

	return suggestions
}

// closestMatch returns the first candidate that contains, or is contained by,
// the requested name. Good enough for catching typos like "guesing" without
// dragging in an edit-distance dependency.
func closestMatch(name string, candidates []string) string {
	lower := strings.ToLower(name)
	for _, candidate := range candidates {
		cl := strings.ToLower(candidate)
		if strings.Contains(cl, lower) || strings.Contains(lower, cl) {
			return candidate
		}
	}
	return ""
}

// FormatSuggestions renders suggestions as indented terminal text.
func FormatSuggestions(suggestions []ErrorSuggestion) string {
	if len(suggestions) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\nSuggestions:\n")
	for _, s := range suggestions {
		fmt.Fprintf(&sb, "  • %s\n", s.Title)
		if s.Description != "" {
			fmt.Fprintf(&sb, "    %s\n", s.Description)
		}
		if s.Command != "" {
			fmt.Fprintf(&sb, "    $ %s\n", s.Command)
		}
		if s.Example != "" {
			for _, line := range strings.Split(s.Example, "\n") {
				fmt.Fprintf(&sb, "    %s\n", line)
			}
		}
	}
	return sb.String()
}
