// Package cmd provides the command-line interface for primer with
// configuration management supporting multiple configuration sources.
//
// # Available Commands
//
//   - list: List lessons and exercises with metadata
//   - read: Render a lesson in the terminal
//   - try: Run the Go snippets embedded in a lesson
//   - run: Run a bundled exercise
//   - play: Play the guessing game
//   - watch: Re-render a lesson as its file changes
//   - interactive: Browse the workbook in a full-screen menu
//   - init: Scaffold a notes directory and configuration
//   - doctor: Diagnose the workbook setup
//   - config: Create, validate, and show configuration
//   - version: Show version information
//
// # Configuration System
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --log-level, etc.) - highest priority
//	2. PRIMER_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (PRIMER_RENDER_STYLE, etc.)
//	4. Configuration files (.primer.yml) - lowest priority
//
// # Environment Variables
//
//	PRIMER_CONFIG_FILE: Path to custom configuration file
//	PRIMER_NOTES_DIR: Override the notes directory
//	PRIMER_RENDER_STYLE: Override the rendering style
//	PRIMER_GAME_DIFFICULTY: Override the guessing game difficulty
//	And so on following the PRIMER_<SECTION>_<OPTION> pattern
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amar-at-iitm/primer/internal/config"
	_ "github.com/amar-at-iitm/primer/internal/exercise/all"
	"github.com/amar-at-iitm/primer/internal/logging"
)

var (
	cfgFile string
	noColor bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "primer",
	Short: "A terminal workbook for an introductory Go course",
	Long: `Primer is a terminal workbook for an introductory Go course. The chapter
notes are bundled into the binary, rendered as styled Markdown, and the
course's practice programs ship as runnable exercises.

Key Features:
  • Bundled chapter notes, overridable by a local notes directory
  • Styled Markdown rendering in the terminal
  • Runnable exercises: drills, demos, and the guessing game
  • In-process evaluation of lesson code snippets
  • Live re-rendering while you edit your own notes
  • Full-screen browser over lessons and exercises

Quick Start:
  primer list                     List lessons and exercises
  primer read hello               Read the first chapter
  primer run fib 42               Run an exercise
  primer play                     Play the guessing game
  primer try hello                Run a lesson's code snippets
  primer interactive              Browse the workbook full screen

Command Aliases (for faster typing):
  list (l), read (r), interactive (m)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .primer.yml, can also use PRIMER_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig initializes the configuration system with support for multiple
// config sources.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. PRIMER_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .primer.yml in current directory
//
// A .env file in the current directory is loaded first, so course setups can
// keep PRIMER_ variables next to their notes.
func initConfig() {
	// Missing .env files are the normal case, not an error
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("PRIMER_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".primer")
	}

	// Enable automatic environment variable binding with PRIMER_ prefix
	// Examples: PRIMER_NOTES_DIR, PRIMER_RENDER_STYLE, PRIMER_GAME_HIGH
	viper.SetEnvPrefix("PRIMER")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or malformed config file degrades to defaults without failing
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if noColor {
		cfg.Render.Style = "notty"
	}
	return cfg, nil
}

// newLogger builds the logger the way the configuration asks for it.
func newLogger(cfg *config.Config) logging.Logger {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Log.Level)
	logCfg.Format = cfg.Log.Format

	if cfg.Log.File != "" {
		if fileLogger, err := logging.NewFileLogger(logCfg, cfg.Log.File); err == nil {
			return fileLogger
		}
		// Fall through to stderr when the log directory is unusable
	}
	return logging.NewLogger(logCfg)
}

// signalContext returns a context cancelled by SIGINT or SIGTERM, so
// interactive exercises and watchers unwind instead of dying mid-write.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
