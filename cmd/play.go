package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/amar-at-iitm/primer/internal/exercise/guess"
	"github.com/amar-at-iitm/primer/internal/renderer"
	"github.com/amar-at-iitm/primer/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [exercise]",
	Short: "Play the guessing game",
	Long: `Play the course's number guessing game. On a terminal this opens the
full-screen game; --plain (or a non-terminal) falls back to the prompt
loop. Bounds and attempt budget come from the game section of your
configuration.

Naming a different interactive exercise runs that one instead:

Examples:
  primer play                     # Guessing game, full screen
  primer play --plain             # Guessing game, plain prompts
  primer play roster              # The department roster REPL`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

var playPlain bool

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().BoolVar(&playPlain, "plain", false, "Use the plain prompt loop instead of the full-screen game")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slug := "guess"
	if len(args) > 0 {
		slug = args[0]
	}

	ctx, cancel := signalContext()
	defer cancel()

	fullScreen := slug == "guess" && !playPlain && isatty.IsTerminal(os.Stdout.Fd())
	if !fullScreen {
		return runExercise(ctx, slug, nil)
	}

	game, err := guess.New(guess.Config{
		Low:        cfg.Game.Low,
		High:       cfg.Game.High,
		Difficulty: guess.Difficulty(cfg.Game.Difficulty),
	})
	if err != nil {
		return fmt.Errorf("failed to set up game: %w", err)
	}

	session := uuid.NewString()
	logger := newLogger(cfg).WithComponent("play")
	logger.Debug(ctx, "round started",
		"session", session,
		"low", cfg.Game.Low,
		"high", cfg.Game.High,
		"difficulty", cfg.Game.Difficulty)

	model := tui.NewGameModel(game, renderer.DefaultStyles())
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("game ui failed: %w", err)
	}

	logger.Info(ctx, "round finished",
		"session", session,
		"over", game.Over(),
		"won", game.Won(),
		"attempts", game.Attempts())

	switch {
	case game.Won():
		fmt.Printf("You won in %d attempts.\n", game.Attempts())
	case game.Over():
		if secret, ok := game.Reveal(); ok {
			fmt.Printf("Out of attempts. The number was %d.\n", secret)
		}
	default:
		fmt.Println("Left early. The number stays secret.")
	}

	return nil
}
