package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amar-at-iitm/primer/internal/renderer"
)

var readCmd = &cobra.Command{
	Use:     "read <lesson>",
	Aliases: []string{"r"},
	Short:   "Render a lesson to the terminal",
	Long: `Render a lesson's Markdown to the terminal as styled text.

The lesson is addressed by its slug ("hello") or by its file name
("01-hello" works too). Your configured notes directory is layered over
the bundled course, so a local file with the same name wins.

Examples:
  primer read hello               # Render the first chapter
  primer read errors --raw        # Print the Markdown source
  primer read structs --width 100 # Wrap at 100 columns
  primer read loops --style notty # Force plain output`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

var readFlags *StandardFlags

func init() {
	rootCmd.AddCommand(readCmd)

	readFlags = AddStandardFlags(readCmd, "render")
	readCmd.Flags().BoolVar(&readFlags.Verbose, "verbose", false, "Report which layer served the lesson")

	AddFlagValidation(readCmd, "style", func(style string) error {
		if style == "" {
			return nil
		}
		return ValidateChoice(style, []string{"auto", "dark", "light", "notty"})
	})
}

func runRead(cmd *cobra.Command, args []string) error {
	if err := readFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	readFlags.ApplyRender(&cfg.Render)

	ctx := context.Background()
	source, reg, _, err := discoverLessons(ctx, cfg)
	if err != nil {
		return err
	}

	lesson, err := resolveLesson(reg, args[0])
	if err != nil {
		return err
	}

	if readFlags.Verbose {
		fmt.Fprintf(os.Stderr, "source: %s (%s)\n", source.Origin(lesson.FilePath), lesson.FilePath)
	}

	if readFlags.Raw {
		content, err := source.ReadLesson(lesson)
		if err != nil {
			return fmt.Errorf("failed to read lesson %s: %w", lesson.Slug, err)
		}
		_, err = os.Stdout.Write(content)
		return err
	}

	rend, err := renderer.NewLessonRenderer(source, &cfg.Render)
	if err != nil {
		return fmt.Errorf("failed to build renderer: %w", err)
	}

	styles := renderer.DefaultStyles()
	fmt.Println(styles.LessonHeader(lesson.Chapter, lesson.Title))

	rendered, err := rend.RenderLesson(lesson)
	if err != nil {
		return fmt.Errorf("failed to render lesson %s: %w", lesson.Slug, err)
	}
	fmt.Print(rendered)

	return nil
}
