package roster

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/amar-at-iitm/primer/internal/exercise"
	"github.com/amar-at-iitm/primer/internal/types"
)

func init() {
	exercise.Register(Runner{})
}

// Runner exposes the roster REPL through the exercise registry.
type Runner struct{}

func (Runner) Info() types.ExerciseInfo {
	return types.ExerciseInfo{
		Slug:    "roster",
		Title:   "Department Roster",
		Chapter: 8,
		Kind:    types.KindInteractive,
		Summary: "Keep a tiny in-memory roster through add/list/depts commands",
		Usage:   "primer run roster",
	}
}

func (Runner) Run(ctx context.Context, streams exercise.IO, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("roster takes no arguments, got %q", strings.Join(args, " "))
	}

	r := New()
	fmt.Fprintln(streams.Out, "Department roster. Commands: add <name> to <dept> | list [dept] | depts | quit")

	scanner := bufio.NewScanner(streams.In)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(streams.Out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			fmt.Fprintln(streams.Out, "\nBye.")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch strings.ToLower(cmd) {
		case "add":
			runAdd(r, streams, rest)
		case "list":
			runList(r, streams, strings.TrimSpace(rest))
		case "depts":
			runDepts(r, streams)
		case "quit", "q", "exit":
			fmt.Fprintln(streams.Out, "Bye.")
			return nil
		default:
			fmt.Fprintf(streams.Out, "Unknown command %q. Commands: add, list, depts, quit.\n", cmd)
		}
	}
}

// runAdd parses "add <name> to <dept>". The split happens on the LAST
// " to " so names like "Ada to-the-max Lovelace" still work.
func runAdd(r *Roster, streams exercise.IO, rest string) {
	idx := strings.LastIndex(rest, " to ")
	if idx < 0 {
		fmt.Fprintln(streams.Out, "Usage: add <name> to <dept>")
		return
	}

	name := strings.TrimSpace(rest[:idx])
	dept := strings.TrimSpace(rest[idx+len(" to "):])
	if name == "" || dept == "" {
		fmt.Fprintln(streams.Out, "Usage: add <name> to <dept>")
		return
	}

	if r.Add(name, dept) {
		fmt.Fprintf(streams.Out, "Added %s to %s.\n", name, dept)
	} else {
		fmt.Fprintf(streams.Out, "%s is already in %s.\n", name, dept)
	}
}

func runList(r *Roster, streams exercise.IO, dept string) {
	if dept != "" {
		names, ok := r.List(dept)
		if !ok {
			fmt.Fprintf(streams.Out, "No such department: %s.\n", dept)
			return
		}
		for _, name := range names {
			fmt.Fprintf(streams.Out, "  %s\n", name)
		}
		return
	}

	if r.Size() == 0 {
		fmt.Fprintln(streams.Out, "The roster is empty.")
		return
	}
	for _, d := range r.Depts() {
		fmt.Fprintf(streams.Out, "%s\n", d)
		names, _ := r.List(d)
		for _, name := range names {
			fmt.Fprintf(streams.Out, "  %s\n", name)
		}
	}
}

func runDepts(r *Roster, streams exercise.IO) {
	depts := r.Depts()
	if len(depts) == 0 {
		fmt.Fprintln(streams.Out, "No departments yet.")
		return
	}
	fmt.Fprintf(streams.Out, "Departments: %s.\n", strings.Join(depts, ", "))
}
