package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/amar-at-iitm/primer/internal/errors"
	"github.com/amar-at-iitm/primer/internal/playground"
	"github.com/amar-at-iitm/primer/internal/renderer"
	"github.com/amar-at-iitm/primer/internal/types"
)

var tryCmd = &cobra.Command{
	Use:   "try <lesson> [index]",
	Short: "Run a lesson's code snippets in-process",
	Long: `Evaluate the fenced Go snippets of a lesson without writing any files.
Snippets run in an embedded interpreter with captured output, a closed
stdin, and a per-run timeout; imports outside the safe stdlib set are
rejected.

Without an index every Go snippet in the lesson runs in order. The index
numbers are the ones primer try --list shows.

Examples:
  primer try hello                # Run every Go snippet in the lesson
  primer try errors 2             # Run just snippet 2
  primer try hello --list         # Show the lesson's snippets
  primer try loops --timeout 10s  # Allow slow snippets more time`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTry,
}

var (
	tryList    bool
	tryTimeout time.Duration
	tryVerbose bool
)

func init() {
	rootCmd.AddCommand(tryCmd)

	tryCmd.Flags().BoolVar(&tryList, "list", false, "List the lesson's snippets instead of running them")
	tryCmd.Flags().DurationVar(&tryTimeout, "timeout", playground.DefaultTimeout, "Per-snippet run timeout")
	tryCmd.Flags().BoolVarP(&tryVerbose, "verbose", "v", false, "Show run ids and durations")
}

func runTry(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	_, reg, _, err := discoverLessons(ctx, cfg)
	if err != nil {
		return err
	}

	lesson, err := resolveLesson(reg, args[0])
	if err != nil {
		return err
	}

	if tryList {
		return outputSnippetTable(lesson)
	}

	var snippets []types.SnippetInfo
	if len(args) == 2 {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("snippet index must be a number, got %q", args[1])
		}
		snippet, err := pickSnippet(lesson, index)
		if err != nil {
			return err
		}
		snippets = []types.SnippetInfo{snippet}
	} else {
		snippets = runnableSnippets(lesson)
		if len(snippets) == 0 {
			fmt.Printf("Lesson %s has no Go snippets to run.\n", lesson.Slug)
			return nil
		}
	}

	styles := renderer.DefaultStyles()
	runner := playground.NewRunner(tryTimeout)
	failed := 0

	for _, snippet := range snippets {
		fmt.Println(styles.Subtitle.Render(fmt.Sprintf("── snippet %d (line %d) ──", snippet.Index, snippet.Line)))

		result, err := runner.Eval(ctx, snippet)
		if result != nil {
			if result.Stdout != "" {
				fmt.Print(result.Stdout)
				if !strings.HasSuffix(result.Stdout, "\n") {
					fmt.Println()
				}
			}
			if result.Stderr != "" {
				fmt.Fprint(os.Stderr, result.Stderr)
			}
			if tryVerbose {
				fmt.Println(styles.Muted.Render(fmt.Sprintf("run %s finished in %s", result.RunID, result.Duration.Round(time.Millisecond))))
			}
		}
		if err != nil {
			failed++
			fmt.Println(styles.Error.Render(err.Error()))
		}

		fmt.Println()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d snippet(s) failed", failed, len(snippets))
	}
	return nil
}

// pickSnippet finds the snippet carrying the shown index.
func pickSnippet(lesson *types.LessonInfo, index int) (types.SnippetInfo, error) {
	for _, snippet := range lesson.Snippets {
		if snippet.Index == index {
			return snippet, nil
		}
	}
	return types.SnippetInfo{}, fmt.Errorf("%w: lesson %s has no snippet %d (try primer try %s --list)",
		apperrors.ErrSnippetNotFound, lesson.Slug, index, lesson.Slug)
}

// runnableSnippets filters a lesson's snippets down to the Go ones.
func runnableSnippets(lesson *types.LessonInfo) []types.SnippetInfo {
	var runnable []types.SnippetInfo
	for _, snippet := range lesson.Snippets {
		if snippet.Lang == "go" {
			runnable = append(runnable, snippet)
		}
	}
	return runnable
}

func outputSnippetTable(lesson *types.LessonInfo) error {
	if len(lesson.Snippets) == 0 {
		fmt.Printf("Lesson %s has no snippets.\n", lesson.Slug)
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "INDEX\tLANG\tLINE\tPREVIEW")
	for _, snippet := range lesson.Snippets {
		lang := snippet.Lang
		if lang == "" {
			lang = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", snippet.Index, lang, snippet.Line, snippetPreview(snippet.Source))
	}

	return nil
}

// snippetPreview returns the snippet's first interesting line, shortened
// to keep the table narrow.
func snippetPreview(source string) string {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "package main" {
			continue
		}
		if len(trimmed) > 48 {
			return trimmed[:45] + "..."
		}
		return trimmed
	}
	return ""
}
