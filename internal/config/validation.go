package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/amar-at-iitm/primer/internal/validation"
)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("❌ Validation Errors:\n")
		for _, err := range vr.Errors {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", err.Field, err.Message))
			for _, suggestion := range err.Suggestions {
				builder.WriteString(fmt.Sprintf("    💡 %s\n", suggestion))
			}
		}
		builder.WriteString("\n")
	}

	if len(vr.Warnings) > 0 {
		builder.WriteString("⚠️  Validation Warnings:\n")
		for _, warning := range vr.Warnings {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", warning.Field, warning.Message))
			for _, suggestion := range warning.Suggestions {
				builder.WriteString(fmt.Sprintf("    💡 %s\n", suggestion))
			}
		}
	}

	return builder.String()
}

// ValidateConfigWithDetails performs comprehensive validation with detailed feedback
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	// Validate notes configuration
	validateNotesConfigDetails(&config.Notes, result)

	// Validate render configuration
	validateRenderConfigDetails(&config.Render, result)

	// Validate game configuration
	validateGameConfigDetails(&config.Game, result)

	// Validate log configuration
	validateLogConfigDetails(&config.Log, result)

	// Set overall validity
	result.Valid = !result.HasErrors()

	return result
}

func validateNotesConfigDetails(config *NotesConfig, result *ValidationResult) {
	// Validate notes directory
	if config.Dir == "" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "notes.dir",
			Value:   config.Dir,
			Message: "no notes directory specified - only bundled lessons will be available",
			Suggestions: []string{
				"Set './notes' to scan your own Markdown notes",
				"Run 'primer init' to scaffold a notes directory",
			},
		})
	} else {
		if err := validation.ValidatePath(config.Dir); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "notes.dir",
				Value:   config.Dir,
				Message: err.Error(),
				Suggestions: []string{
					"Use relative paths from the project root",
					"Avoid parent directory references (..)",
				},
			})
		}

		// Check if path exists
		if !pathExists(config.Dir) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "notes.dir",
				Value:   config.Dir,
				Message: "directory does not exist - falling back to bundled lessons",
				Suggestions: []string{
					"Create the directory: mkdir -p " + config.Dir,
					"Run 'primer init' to scaffold it with a starter lesson",
					"Check for typos in the path",
				},
			})
		}
	}

	// Validate exclude patterns
	if len(config.ExcludePatterns) == 0 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "notes.exclude_patterns",
			Value:   config.ExcludePatterns,
			Message: "no exclusion patterns - READMEs and drafts may show up as lessons",
			Suggestions: []string{
				"Add 'README.md' to exclude the notes index",
				"Add '*.draft.md' to exclude unfinished notes",
			},
		})
	}
}

func validateRenderConfigDetails(config *RenderConfig, result *ValidationResult) {
	// Validate style
	if !contains(ValidStyles, config.Style) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "render.style",
			Value:   config.Style,
			Message: fmt.Sprintf("unknown style '%s'", config.Style),
			Suggestions: []string{
				"Available styles: " + strings.Join(ValidStyles, ", "),
				"Use 'auto' to match the terminal background",
				"Use 'notty' when piping output to another program",
			},
		})
	}

	// Validate width
	if config.Width < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "render.width",
			Value:   config.Width,
			Message: "width cannot be negative",
			Suggestions: []string{
				"Use 0 to let the renderer pick a default",
				"Common widths: 80, 100, 120",
			},
		})
	} else if config.Width > 0 && config.Width < 40 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "render.width",
			Value:   config.Width,
			Message: "very narrow widths wrap code blocks awkwardly",
			Suggestions: []string{
				"Use at least 60 columns for readable code blocks",
			},
		})
	}
}

func validateGameConfigDetails(config *GameConfig, result *ValidationResult) {
	// Validate range
	if config.Low >= config.High {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "game",
			Value:   fmt.Sprintf("low=%d high=%d", config.Low, config.High),
			Message: fmt.Sprintf("low %d must be less than high %d", config.Low, config.High),
			Suggestions: []string{
				"The classic game uses low: 1 and high: 100",
				"Swap the values if they are reversed",
			},
		})
	} else if config.High-config.Low < 10 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "game",
			Value:   fmt.Sprintf("low=%d high=%d", config.Low, config.High),
			Message: "a span under 10 makes the game trivial",
			Suggestions: []string{
				"Widen the range for a real challenge",
			},
		})
	}

	// Validate difficulty
	if !contains(ValidDifficulties, config.Difficulty) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "game.difficulty",
			Value:   config.Difficulty,
			Message: fmt.Sprintf("unknown difficulty '%s'", config.Difficulty),
			Suggestions: []string{
				"Available difficulties: " + strings.Join(ValidDifficulties, ", "),
				"Difficulty controls how many attempts you get",
			},
		})
	}
}

func validateLogConfigDetails(config *LogConfig, result *ValidationResult) {
	// Validate level
	validLevels := []string{"debug", "info", "warn", "warning", "error", "fatal"}
	if config.Level != "" && !contains(validLevels, strings.ToLower(config.Level)) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "log.level",
			Value:   config.Level,
			Message: fmt.Sprintf("unknown level '%s' - falling back to info", config.Level),
			Suggestions: []string{
				"Available levels: debug, info, warn, error, fatal",
			},
		})
	}

	// Validate format
	if config.Format != "" && config.Format != "text" && config.Format != "json" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log.format",
			Value:   config.Format,
			Message: fmt.Sprintf("unknown format '%s'", config.Format),
			Suggestions: []string{
				"Use 'text' for human-readable logs",
				"Use 'json' for machine-readable logs",
			},
		})
	}

	// Validate log file directory
	if config.File != "" {
		if err := validation.ValidatePath(config.File); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "log.file",
				Value:   config.File,
				Message: err.Error(),
				Suggestions: []string{
					"Use a relative directory like '.primer/logs'",
					"Avoid parent directory references (..)",
				},
			})
		}
	}
}

// Helper validation functions

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
