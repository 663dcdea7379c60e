package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/amar-at-iitm/primer/internal/types"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List discovered lessons and bundled exercises",
	Long: `List the lessons primer has discovered and the exercises bundled with it.
Lessons come from the built-in course plus your configured notes directory;
exercises are compiled into the binary.

Examples:
  primer list                     # Lessons and exercises in table format
  primer list -o json             # Output as JSON
  primer list -o yaml             # Output as YAML
  primer list --lessons           # Lessons only
  primer list --exercises -q      # Exercise slugs, one per line`,
	RunE: runList,
}

var (
	listFlags         *StandardFlags
	listLessonsOnly   bool
	listExercisesOnly bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listFlags = AddStandardFlags(listCmd, "output")

	listCmd.Flags().BoolVar(&listLessonsOnly, "lessons", false, "List lessons only")
	listCmd.Flags().BoolVar(&listExercisesOnly, "exercises", false, "List exercises only")

	AddFlagValidation(listCmd, "output", func(format string) error {
		return ValidateChoice(format, []string{"table", "json", "yaml"})
	})
}

func runList(cmd *cobra.Command, args []string) error {
	if err := listFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if listLessonsOnly && listExercisesOnly {
		return fmt.Errorf("cannot specify both --lessons and --exercises")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	_, reg, sc, err := discoverLessons(ctx, cfg)
	if err != nil {
		return err
	}

	lessons := reg.Sorted()
	exercises := exerciseInfos()
	if listLessonsOnly {
		exercises = nil
	}
	if listExercisesOnly {
		lessons = nil
	}

	if listFlags.Verbose && sc.Errors().HasErrors() {
		fmt.Fprint(os.Stderr, sc.Errors().Summary())
	}

	if listFlags.Quiet {
		return outputListSlugs(os.Stdout, lessons, exercises)
	}

	switch strings.ToLower(listFlags.OutputFormat) {
	case "json":
		return outputListJSON(os.Stdout, lessons, exercises)
	case "yaml":
		return outputListYAML(os.Stdout, lessons, exercises)
	case "table":
		return outputListTable(os.Stdout, lessons, exercises, listFlags.Verbose)
	default:
		return fmt.Errorf("unsupported format: %s", listFlags.OutputFormat)
	}
}

func outputListSlugs(w io.Writer, lessons []*types.LessonInfo, exercises []types.ExerciseInfo) error {
	for _, lesson := range lessons {
		fmt.Fprintln(w, lesson.Slug)
	}
	for _, ex := range exercises {
		fmt.Fprintln(w, ex.Slug)
	}
	return nil
}

// listDocument is the serializable shape shared by JSON and YAML output.
func listDocument(lessons []*types.LessonInfo, exercises []types.ExerciseInfo) map[string]interface{} {
	lessonItems := make([]map[string]interface{}, len(lessons))
	for i, lesson := range lessons {
		lessonItems[i] = map[string]interface{}{
			"slug":     lesson.Slug,
			"title":    lesson.Title,
			"chapter":  lesson.Chapter,
			"summary":  lesson.Summary,
			"file":     lesson.FilePath,
			"snippets": len(lesson.Snippets),
		}
	}

	exerciseItems := make([]map[string]interface{}, len(exercises))
	for i, ex := range exercises {
		exerciseItems[i] = map[string]interface{}{
			"slug":    ex.Slug,
			"title":   ex.Title,
			"chapter": ex.Chapter,
			"kind":    string(ex.Kind),
			"summary": ex.Summary,
		}
	}

	return map[string]interface{}{
		"lessons":   lessonItems,
		"exercises": exerciseItems,
	}
}

func outputListJSON(w io.Writer, lessons []*types.LessonInfo, exercises []types.ExerciseInfo) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(listDocument(lessons, exercises))
}

func outputListYAML(w io.Writer, lessons []*types.LessonInfo, exercises []types.ExerciseInfo) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(listDocument(lessons, exercises))
}

func outputListTable(w io.Writer, lessons []*types.LessonInfo, exercises []types.ExerciseInfo, verbose bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	if len(lessons) > 0 {
		header := "CHAPTER\tLESSON\tTITLE\tSNIPPETS"
		if verbose {
			header += "\tSUMMARY"
		}
		fmt.Fprintln(tw, header)

		for _, lesson := range lessons {
			row := fmt.Sprintf("%d\t%s\t%s\t%d", lesson.Chapter, lesson.Slug, lesson.Title, len(lesson.Snippets))
			if verbose {
				row += "\t" + lesson.Summary
			}
			fmt.Fprintln(tw, row)
		}
	} else {
		fmt.Fprintln(tw, "No lessons found.")
	}

	if len(exercises) > 0 {
		fmt.Fprintln(tw, "")
		header := "CHAPTER\tEXERCISE\tTITLE\tKIND"
		if verbose {
			header += "\tSUMMARY"
		}
		fmt.Fprintln(tw, header)

		for _, ex := range exercises {
			row := fmt.Sprintf("%d\t%s\t%s\t%s", ex.Chapter, ex.Slug, ex.Title, ex.Kind)
			if verbose {
				row += "\t" + ex.Summary
			}
			fmt.Fprintln(tw, row)
		}
	}

	return nil
}
