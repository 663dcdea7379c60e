package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amar-at-iitm/primer/internal/renderer"
	"github.com/amar-at-iitm/primer/internal/types"
	"github.com/amar-at-iitm/primer/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch [lesson]",
	Aliases: []string{"w"},
	Short:   "Re-render notes as they change on disk",
	Long: `Watch the configured notes directory and rescan lessons when Markdown
files change. Naming a lesson keeps it rendered on screen: every save
re-renders it, which makes editing notes side by side with a terminal
pleasant.

Only the notes directory is watched; the lessons bundled into the binary
cannot change.

Examples:
  primer watch                    # Report lesson changes as they happen
  primer watch my-notes           # Keep one lesson rendered while editing
  primer watch --debounce 1s      # Calm down a noisy editor`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var (
	watchDebounce time.Duration
	watchVerbose  bool
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "Delay before a burst of changes is handled")
	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Report every changed file")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Notes.Dir == "" {
		return fmt.Errorf("watch needs a notes directory; set notes.dir in .primer.yml or run primer init")
	}

	ctx, cancel := signalContext()
	defer cancel()

	source, reg, sc, err := discoverLessons(ctx, cfg)
	if err != nil {
		return err
	}
	if !source.HasDisk() {
		return fmt.Errorf("notes directory %s does not exist; run primer init to scaffold it", cfg.Notes.Dir)
	}

	rend, err := renderer.NewLessonRenderer(source, &cfg.Render)
	if err != nil {
		return fmt.Errorf("failed to build renderer: %w", err)
	}
	styles := renderer.DefaultStyles()

	// The watched lesson, when one was asked for
	var target *types.LessonInfo
	if len(args) == 1 {
		target, err = resolveLesson(reg, args[0])
		if err != nil {
			return err
		}
		if err := renderToScreen(rend, styles, target); err != nil {
			return err
		}
	}

	fileWatcher, err := watcher.NewFileWatcher(watchDebounce)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fileWatcher.Stop()

	fileWatcher.AddFilter(watcher.MarkdownFilter)
	fileWatcher.AddFilter(watcher.NoHiddenFilter)
	fileWatcher.AddFilter(watcher.ExcludeFilter(cfg.Notes.ExcludePatterns))

	fileWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		if watchVerbose {
			for _, event := range events {
				fmt.Printf("%s: %s\n", event.Type, event.Path)
			}
		} else if target == nil {
			fmt.Printf("%d file(s) changed\n", len(events))
		}

		// Rescan the whole source; the registry diffing keeps unchanged
		// lessons quiet
		if err := sc.ScanFS(ctx, source); err != nil {
			fmt.Fprintf(os.Stderr, "rescan failed: %v\n", err)
			return nil
		}

		if target != nil {
			refreshed, ok := reg.BySlug(target.Slug)
			if !ok {
				fmt.Fprintf(os.Stderr, "lesson %s disappeared, still watching\n", target.Slug)
				return nil
			}
			target = refreshed
			if err := renderToScreen(rend, styles, target); err != nil {
				fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
			}
		}

		return nil
	})

	if err := fileWatcher.AddRecursive(cfg.Notes.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.Notes.Dir, err)
	}

	if err := fileWatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	fmt.Printf("Watching %s (%d lessons). Press Ctrl+C to stop.\n", cfg.Notes.Dir, reg.Count())

	<-ctx.Done()
	fmt.Println("\nStopping.")

	return nil
}

// renderToScreen clears the terminal and renders one lesson.
func renderToScreen(rend *renderer.LessonRenderer, styles renderer.Styles, lesson *types.LessonInfo) error {
	// ANSI clear-and-home keeps the lesson pinned to the top of the screen
	fmt.Print("\033[2J\033[H")
	fmt.Println(styles.LessonHeader(lesson.Chapter, lesson.Title))

	rendered, err := rend.RenderLesson(lesson)
	if err != nil {
		return err
	}
	fmt.Print(rendered)
	fmt.Println(styles.Footer.Render(fmt.Sprintf("updated %s · ctrl+c stops", time.Now().Format("15:04:05"))))

	return nil
}
