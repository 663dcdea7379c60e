package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <exercise> [args...]",
	Short: "Run a bundled exercise",
	Long: `Run one of the exercises bundled with the course. Drills take their
input as arguments, interactive exercises read from the terminal, and
demos narrate what they are doing.

Examples:
  primer run fib 42               # Fibonacci drill
  primer run tempconv 100C        # Temperature conversion
  primer run numstats 4 8 15 16   # Statistics over integers
  primer run roster               # Interactive department roster
  primer run --list               # Show every exercise`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

var runShowList bool

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runShowList, "list", false, "List the bundled exercises")
}

func runRun(cmd *cobra.Command, args []string) error {
	if runShowList || len(args) == 0 {
		if err := outputExerciseTable(); err != nil {
			return err
		}
		if runShowList {
			return nil
		}
		return fmt.Errorf("name an exercise to run, e.g. primer run fib 42")
	}

	ctx, cancel := signalContext()
	defer cancel()

	return runExercise(ctx, args[0], args[1:])
}

func outputExerciseTable() error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "EXERCISE\tCHAPTER\tKIND\tSUMMARY")
	for _, info := range exerciseInfos() {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", info.Slug, info.Chapter, info.Kind, info.Summary)
	}

	return nil
}
