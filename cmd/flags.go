package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/amar-at-iitm/primer/internal/config"
)

// StandardFlags provides consistent flag definitions across commands
type StandardFlags struct {
	// Output flags
	OutputFormat string `flag:"output,o" desc:"Output format (table|json|yaml)" default:"table"`
	Verbose      bool   `flag:"verbose,v" desc:"Enable verbose output" default:"false"`
	Quiet        bool   `flag:"quiet,q" desc:"Suppress output" default:"false"`

	// Render flags
	Style string `flag:"style" desc:"Markdown style (auto|dark|light|notty)" default:""`
	Width int    `flag:"width" desc:"Wrap width, 0 keeps the configured value" default:"0"`
	Raw   bool   `flag:"raw" desc:"Print Markdown source without rendering" default:"false"`
}

// AddStandardFlags adds standard flag groups to a command
func AddStandardFlags(cmd *cobra.Command, flagGroups ...string) *StandardFlags {
	flags := &StandardFlags{}

	for _, group := range flagGroups {
		switch group {
		case "output":
			addOutputFlags(cmd, flags)
		case "render":
			addRenderFlags(cmd, flags)
		}
	}

	return flags
}

func addOutputFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", "table", "Output format (table|json|yaml)")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress output")
}

func addRenderFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVar(&flags.Style, "style", "", "Markdown style (auto|dark|light|notty)")
	cmd.Flags().IntVar(&flags.Width, "width", 0, "Wrap width, 0 keeps the configured value")
	cmd.Flags().BoolVar(&flags.Raw, "raw", false, "Print Markdown source without rendering")
}

// ValidateFlags validates flag combinations and values
func (f *StandardFlags) ValidateFlags() error {
	validFormats := []string{"table", "json", "yaml"}
	if f.OutputFormat != "" {
		if err := ValidateChoice(f.OutputFormat, validFormats); err != nil {
			return fmt.Errorf("invalid output format: %w", err)
		}
	}

	if f.Style != "" {
		if err := ValidateChoice(f.Style, config.ValidStyles); err != nil {
			return fmt.Errorf("invalid style: %w", err)
		}
	}

	if f.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", f.Width)
	}

	// Quiet and verbose are mutually exclusive
	if f.Quiet && f.Verbose {
		return fmt.Errorf("cannot specify both --quiet and --verbose")
	}

	return nil
}

// ApplyRender merges render flag overrides onto the configured rendering.
func (f *StandardFlags) ApplyRender(render *config.RenderConfig) {
	if f.Style != "" {
		render.Style = f.Style
	}
	if f.Width > 0 {
		render.Width = f.Width
	}
	if f.Raw {
		render.Raw = true
	}
}

// ValidateChoice checks a value against a closed set, suggesting the
// nearest valid spelling on a miss.
func ValidateChoice(value string, valid []string) error {
	for _, v := range valid {
		if value == v {
			return nil
		}
	}

	lower := strings.ToLower(value)
	for _, v := range valid {
		if strings.HasPrefix(v, lower) || strings.HasPrefix(lower, v) {
			return fmt.Errorf("%q is not valid, did you mean %q? (valid: %s)",
				value, v, strings.Join(valid, ", "))
		}
	}

	return fmt.Errorf("%q is not one of: %s", value, strings.Join(valid, ", "))
}

// AddFlagValidation adds validation for a specific flag
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:       flag.Value,
		validator:   validator,
		originalSet: flag.Value.Set,
	}
}

type validatingValue struct {
	pflag.Value
	validator   func(string) error
	originalSet func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.originalSet(val)
}
