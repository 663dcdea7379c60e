package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/amar-at-iitm/primer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage primer configuration",
	Long: `Manage primer configuration files and settings.

This command provides subcommands for:
- Creating new configuration through an interactive wizard
- Validating existing configuration files
- Showing current configuration values

Examples:
  primer config wizard                 # Run interactive configuration wizard
  primer config validate               # Validate current configuration
  primer config show                   # Show current configuration
  primer config validate --file .primer.yml  # Validate specific config file`,
}

var configWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Run interactive configuration wizard",
	Long: `Run an interactive configuration wizard to set up your workbook.

The wizard will guide you through all configuration options including:
- Where your own lesson notes live and which files to skip
- Terminal rendering (style, width, raw mode)
- The guessing game range and difficulty
- Logging level, format, and optional log files

Examples:
  primer config wizard                 # Run wizard and save to .primer.yml
  primer config wizard --output config.yml  # Save to custom file`,
	RunE: runConfigWizard,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a primer configuration file for correctness.

This command checks for:
- Valid styles, difficulties, and log formats
- A sensible guessing game range
- Notes and log paths that are safe and likely to exist

Examples:
  primer config validate               # Validate .primer.yml in current directory
  primer config validate --file config.yml  # Validate specific file
  primer config validate --strict      # Treat warnings as errors`,
	RunE: runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the current primer configuration including all resolved values.

This shows the final configuration after:
- Loading from configuration file
- Applying environment variable overrides
- Setting default values

Examples:
  primer config show                   # Show as YAML
  primer config show --format json     # Show as JSON`,
	RunE: runConfigShow,
}

var (
	configOutput string
	configFile   string
	configFormat string
	configStrict bool
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configWizardCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)

	configWizardCmd.Flags().
		StringVarP(&configOutput, "output", "o", ".primer.yml", "Output configuration file")

	configValidateCmd.Flags().
		StringVarP(&configFile, "file", "f", "", "Configuration file to validate (default: .primer.yml)")
	configValidateCmd.Flags().BoolVar(&configStrict, "strict", false, "Treat warnings as errors")

	configShowCmd.Flags().StringVar(&configFormat, "format", "yaml", "Output format (yaml, json)")
}

func runConfigWizard(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configOutput); err == nil {
		fmt.Printf("⚠️  Configuration file %s already exists.\n", configOutput)
		fmt.Print("Do you want to overwrite it? (y/N): ")

		var response string
		if _, err := fmt.Scanln(&response); err != nil {
			fmt.Printf("Failed to read input: %v\n", err)

			return err
		}

		if response != "y" && response != "Y" && response != "yes" && response != "Yes" {
			fmt.Println("Configuration wizard cancelled.")

			return nil
		}
	}

	wizard := config.NewConfigWizard()

	cfg, err := wizard.Run()
	if err != nil {
		return fmt.Errorf("configuration wizard failed: %w", err)
	}

	validation := config.ValidateConfigWithDetails(cfg)
	if validation.HasErrors() {
		fmt.Println("\n❌ Configuration validation failed:")
		fmt.Print(validation.String())

		return errors.New("generated configuration is invalid")
	}

	if validation.HasWarnings() {
		fmt.Println("\n⚠️  Configuration warnings:")
		fmt.Print(validation.String())
		fmt.Print("Continue anyway? (y/N): ")

		var response string
		if _, err := fmt.Scanln(&response); err != nil {
			fmt.Printf("Failed to read input: %v\n", err)

			return err
		}

		if response != "y" && response != "Y" && response != "yes" && response != "Yes" {
			fmt.Println("Configuration wizard cancelled.")

			return nil
		}
	}

	if err := wizard.WriteConfigFile(configOutput); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("\n🎉 Configuration wizard completed successfully!\n")
	fmt.Printf("Configuration saved to: %s\n", configOutput)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Review the configuration file\n")
	fmt.Printf("  2. Run 'primer list' to see the course\n")
	fmt.Printf("  3. Run 'primer play' when you need a break\n")

	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	targetFile := configFile
	if targetFile == "" {
		for _, candidate := range []string{".primer.yml", ".primer.yaml"} {
			if _, err := os.Stat(candidate); err == nil {
				targetFile = candidate
				break
			}
		}
		if targetFile == "" {
			return errors.New("no configuration file found. Use --file to specify a config file " +
				"or run 'primer config wizard' to create one")
		}
	}

	if _, err := os.Stat(targetFile); os.IsNotExist(err) {
		return fmt.Errorf("configuration file %s does not exist", targetFile)
	}

	fmt.Printf("🔍 Validating configuration file: %s\n", targetFile)
	fmt.Println("=====================================")

	v := viper.New()
	v.SetConfigFile(targetFile)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	// Validate what the program would actually run with, not the raw file.
	// An omitted notes.dir defaults to ./notes; an explicit "" stays empty.
	if !v.IsSet("notes.dir") && cfg.Notes.Dir == "" {
		cfg.Notes.Dir = "./notes"
	}
	applyFileDefaults(&cfg)

	validation := config.ValidateConfigWithDetails(&cfg)

	if validation.Valid && !validation.HasWarnings() {
		fmt.Println("✅ Configuration is valid!")
		fmt.Println("No errors or warnings found.")

		return nil
	}

	if validation.HasErrors() {
		fmt.Print(validation.String())

		return fmt.Errorf("configuration validation failed with %d errors", len(validation.Errors))
	}

	if validation.HasWarnings() {
		fmt.Print(validation.String())

		if configStrict {
			return fmt.Errorf(
				"configuration validation failed in strict mode with %d warnings",
				len(validation.Warnings),
			)
		}

		fmt.Println("✅ Configuration is valid with warnings.")
		fmt.Printf(
			"Found %d warnings. Use --strict to treat warnings as errors.\n",
			len(validation.Warnings),
		)
	}

	return nil
}

// applyFileDefaults fills the defaults config.Load would apply at runtime,
// so validation of a sparse file does not flag fields the program defaults.
func applyFileDefaults(cfg *config.Config) {
	if len(cfg.Notes.ExcludePatterns) == 0 {
		cfg.Notes.ExcludePatterns = []string{"README.md", "*.draft.md"}
	}
	if cfg.Render.Style == "" {
		cfg.Render.Style = "auto"
	}
	if cfg.Game.Low == 0 && cfg.Game.High == 0 {
		cfg.Game.Low = 1
		cfg.Game.High = 100
	}
	if cfg.Game.Difficulty == "" {
		cfg.Game.Difficulty = "normal"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	switch configFormat {
	case "yaml", "yml":
		return showConfigYAML(cfg)
	case "json":
		return showConfigJSON(cfg)
	default:
		return fmt.Errorf("unsupported format: %s (supported: yaml, json)", configFormat)
	}
}

func showConfigYAML(cfg *config.Config) error {
	fmt.Println("# Current primer configuration")
	fmt.Println("# Resolved from all sources (file, env vars, defaults)")
	fmt.Println()

	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(cfg)
}

func showConfigJSON(cfg *config.Config) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
