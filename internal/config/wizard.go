package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ConfigWizard provides an interactive setup experience for new workbooks
type ConfigWizard struct {
	reader *bufio.Reader
	config *Config
}

// NewConfigWizard creates a new configuration wizard reading from stdin
func NewConfigWizard() *ConfigWizard {
	return NewConfigWizardWithReader(os.Stdin)
}

// NewConfigWizardWithReader creates a wizard reading answers from r
func NewConfigWizardWithReader(r io.Reader) *ConfigWizard {
	return &ConfigWizard{
		reader: bufio.NewReader(r),
		config: &Config{},
	}
}

// Run executes the interactive configuration wizard
func (w *ConfigWizard) Run() (*Config, error) {
	fmt.Println("🧙 Primer Configuration Wizard")
	fmt.Println("==============================")
	fmt.Println("This wizard will help you set up your primer workbook configuration.")
	fmt.Println()

	// Notes configuration
	if err := w.configureNotes(); err != nil {
		return nil, fmt.Errorf("notes configuration failed: %w", err)
	}

	// Render configuration
	if err := w.configureRender(); err != nil {
		return nil, fmt.Errorf("render configuration failed: %w", err)
	}

	// Game configuration
	if err := w.configureGame(); err != nil {
		return nil, fmt.Errorf("game configuration failed: %w", err)
	}

	// Log configuration
	if err := w.configureLog(); err != nil {
		return nil, fmt.Errorf("log configuration failed: %w", err)
	}

	// Validate the final configuration
	if err := validateConfig(w.config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	fmt.Println()
	fmt.Println("✅ Configuration completed successfully!")
	return w.config, nil
}

func (w *ConfigWizard) configureNotes() error {
	fmt.Println("📓 Notes Configuration")
	fmt.Println("----------------------")

	// Notes directory
	dir := w.askString("Notes directory", "./notes")
	w.config.Notes.Dir = dir

	// Exclude patterns
	excludePatterns := []string{}
	defaultExcludes := []string{"README.md", "*.draft.md"}

	fmt.Println("File exclusion patterns:")
	for _, pattern := range defaultExcludes {
		if w.askBool(fmt.Sprintf("Exclude %s", pattern), true) {
			excludePatterns = append(excludePatterns, pattern)
		}
	}

	// Allow custom exclusion patterns
	for {
		if !w.askBool("Add custom exclusion pattern", false) {
			break
		}
		customPattern := w.askString("Custom exclusion pattern", "")
		if customPattern != "" {
			excludePatterns = append(excludePatterns, customPattern)
		}
	}

	w.config.Notes.ExcludePatterns = excludePatterns
	fmt.Println()
	return nil
}

func (w *ConfigWizard) configureRender() error {
	fmt.Println("🖥  Render Configuration")
	fmt.Println("-----------------------")

	// Style
	style := w.askChoice("Markdown style", ValidStyles, "auto")
	w.config.Render.Style = style

	// Width
	width, err := w.askInt("Wrap width (0 for default)", 0, 0, 500)
	if err != nil {
		return err
	}
	w.config.Render.Width = width

	// Raw mode
	w.config.Render.Raw = w.askBool("Print raw Markdown instead of rendering", false)

	fmt.Println()
	return nil
}

func (w *ConfigWizard) configureGame() error {
	fmt.Println("🎲 Guessing Game Configuration")
	fmt.Println("------------------------------")

	low, err := w.askInt("Lowest secret number", 1, -1000000, 1000000)
	if err != nil {
		return err
	}
	w.config.Game.Low = low

	high, err := w.askInt("Highest secret number", 100, low+1, 1000000)
	if err != nil {
		return err
	}
	w.config.Game.High = high

	difficulty := w.askChoice("Difficulty", ValidDifficulties, "normal")
	w.config.Game.Difficulty = difficulty

	fmt.Println()
	return nil
}

func (w *ConfigWizard) configureLog() error {
	fmt.Println("📋 Log Configuration")
	fmt.Println("--------------------")

	level := w.askChoice("Log level", []string{"debug", "info", "warn", "error"}, "info")
	w.config.Log.Level = level

	format := w.askChoice("Log format", []string{"text", "json"}, "text")
	w.config.Log.Format = format

	if w.askBool("Also write logs to a file", false) {
		w.config.Log.File = w.askString("Log directory", ".primer/logs")
	}

	fmt.Println()
	return nil
}

// Helper methods for user interaction

func (w *ConfigWizard) askString(prompt, defaultValue string) string {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Printf("%s: ", prompt)
	}

	input, err := w.reader.ReadString('\n')
	if err != nil {
		return defaultValue
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue
	}

	return input
}

func (w *ConfigWizard) askInt(prompt string, defaultValue, min, max int) (int, error) {
	for {
		fmt.Printf("%s [%d]: ", prompt, defaultValue)

		input, err := w.reader.ReadString('\n')
		if err != nil {
			return defaultValue, nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			return defaultValue, nil
		}

		value, err := strconv.Atoi(input)
		if err != nil {
			fmt.Printf("❌ Invalid number. Please enter a number between %d and %d.\n", min, max)
			continue
		}

		if value < min || value > max {
			fmt.Printf("❌ Number out of range. Please enter a number between %d and %d.\n", min, max)
			continue
		}

		return value, nil
	}
}

func (w *ConfigWizard) askBool(prompt string, defaultValue bool) bool {
	defaultStr := "n"
	if defaultValue {
		defaultStr = "y"
	}

	fmt.Printf("%s [%s]: ", prompt, defaultStr)

	input, err := w.reader.ReadString('\n')
	if err != nil {
		return defaultValue
	}

	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return defaultValue
	}

	return input == "y" || input == "yes" || input == "true"
}

func (w *ConfigWizard) askChoice(prompt string, choices []string, defaultValue string) string {
	for {
		fmt.Printf("%s [%s] (options: %s): ", prompt, defaultValue, strings.Join(choices, ", "))

		input, err := w.reader.ReadString('\n')
		if err != nil {
			return defaultValue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			return defaultValue
		}

		// Check if input is valid choice
		for _, choice := range choices {
			if strings.EqualFold(input, choice) {
				return choice
			}
		}

		fmt.Printf("❌ Invalid choice. Please select from: %s\n", strings.Join(choices, ", "))
	}
}

// WriteConfigFile writes the configuration to a YAML file
func (w *ConfigWizard) WriteConfigFile(filename string) error {
	// Check if file already exists
	if _, err := os.Stat(filename); err == nil {
		overwrite := w.askBool(fmt.Sprintf("Configuration file %s already exists. Overwrite", filename), false)
		if !overwrite {
			return fmt.Errorf("configuration file already exists")
		}
	}

	// Generate YAML content
	content := w.generateYAMLConfig()

	// Write to file
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("✅ Configuration saved to %s\n", filename)
	return nil
}

func (w *ConfigWizard) generateYAMLConfig() string {
	var builder strings.Builder

	builder.WriteString("# Primer configuration file\n")
	builder.WriteString("# Generated by the primer configuration wizard\n\n")

	// Notes configuration
	builder.WriteString("notes:\n")
	builder.WriteString(fmt.Sprintf("  dir: \"%s\"\n", w.config.Notes.Dir))
	if len(w.config.Notes.ExcludePatterns) > 0 {
		builder.WriteString("  exclude_patterns:\n")
		for _, pattern := range w.config.Notes.ExcludePatterns {
			builder.WriteString(fmt.Sprintf("    - \"%s\"\n", pattern))
		}
	}
	builder.WriteString("\n")

	// Render configuration
	builder.WriteString("render:\n")
	builder.WriteString(fmt.Sprintf("  style: %s\n", w.config.Render.Style))
	builder.WriteString(fmt.Sprintf("  width: %d\n", w.config.Render.Width))
	builder.WriteString(fmt.Sprintf("  raw: %t\n", w.config.Render.Raw))
	builder.WriteString("\n")

	// Game configuration
	builder.WriteString("game:\n")
	builder.WriteString(fmt.Sprintf("  low: %d\n", w.config.Game.Low))
	builder.WriteString(fmt.Sprintf("  high: %d\n", w.config.Game.High))
	builder.WriteString(fmt.Sprintf("  difficulty: %s\n", w.config.Game.Difficulty))
	builder.WriteString("\n")

	// Log configuration
	builder.WriteString("log:\n")
	builder.WriteString(fmt.Sprintf("  level: %s\n", w.config.Log.Level))
	builder.WriteString(fmt.Sprintf("  format: %s\n", w.config.Log.Format))
	if w.config.Log.File != "" {
		builder.WriteString(fmt.Sprintf("  file: \"%s\"\n", w.config.Log.File))
	}

	return builder.String()
}
