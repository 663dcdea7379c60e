package cmd

import (
	"bufio"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/amar-at-iitm/primer/internal/renderer"
	"github.com/amar-at-iitm/primer/internal/tui"
)

// interactiveCmd is the full-screen browser over lessons and exercises.
var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"menu", "m"},
	Short:   "Browse the workbook full screen",
	Long: `Open a full-screen menu over every lesson and exercise. Lessons open
in a scrollable rendered view; choosing an exercise leaves the menu,
runs it on the plain terminal, and returns to the menu afterwards.

Keys: enter opens, / filters, esc goes back, q quits.`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	source, reg, _, err := discoverLessons(ctx, cfg)
	if err != nil {
		return err
	}

	rend, err := renderer.NewLessonRenderer(source, &cfg.Render)
	if err != nil {
		return fmt.Errorf("failed to build renderer: %w", err)
	}
	styles := renderer.DefaultStyles()

	// Exercises cannot run inside the alt screen, so the menu quits with a
	// selection, the exercise runs on the plain terminal, and the menu
	// reopens afterwards.
	for {
		menu := tui.NewMenuModel(reg.Sorted(), exerciseInfos(), rend, styles)

		final, err := tea.NewProgram(menu, tea.WithAltScreen()).Run()
		if err != nil {
			return fmt.Errorf("menu ui failed: %w", err)
		}

		finishedMenu, ok := final.(tui.MenuModel)
		if !ok {
			return nil
		}
		selected := finishedMenu.SelectedExercise()
		if selected == nil {
			return nil
		}

		fmt.Println(styles.Title.Render(selected.Title))
		if err := runExercise(ctx, selected.Slug, nil); err != nil {
			fmt.Fprintln(os.Stderr, styles.Error.Render(fmt.Sprintf("exercise failed: %v", err)))
		}

		fmt.Print(styles.Muted.Render("press enter to return to the menu "))
		if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err != nil {
			return nil
		}
	}
}
