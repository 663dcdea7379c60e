package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init [dir]",
	Aliases: []string{"i"},
	Short:   "Set up a notes workspace",
	Long: `Set up a workspace for your own course notes: a .primer.yml
configuration and a notes directory seeded with one sample chapter.
If no directory is given, the current directory is used.

Your notes are ordinary Markdown files with a small front matter block;
anything you drop into the notes directory shows up in primer list and
renders like the bundled chapters.

Examples:
  primer init                     # Set up the current directory
  primer init my-course           # Set up a new directory
  primer init --force             # Overwrite an existing setup`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
}

const defaultConfigYAML = `# primer configuration
# Values here are overridden by PRIMER_ environment variables and flags.

notes:
  dir: "./notes" # your own notes, layered over the bundled course
  exclude_patterns:
    - "README.md"
    - "*.draft.md"

render:
  style: "auto" # auto, dark, light, or notty
  width: 0      # 0 wraps at the renderer default

game:
  low: 1
  high: 100
  difficulty: "normal" # easy, normal, or hard

log:
  level: "info"
  format: "text"
`

const sampleNoteName = "10-field-notes.md"

const sampleNote = `---
slug: field-notes
title: Field Notes
chapter: 10
summary: Your own notes, rendered like any bundled chapter.
exercises: []
---

# Field Notes

This file lives in your notes directory. Everything you write here shows
up in ` + "`primer list`" + ` and renders with ` + "`primer read field-notes`" + `.
Files whose names match the bundled chapters replace them, so you can
annotate the course itself.

## Snippets run too

Fenced Go blocks are extracted and ` + "`primer try field-notes`" + ` runs them:

` + "```go\n" + `package main

import "fmt"

func main() {
	fmt.Println("edit me, then run: primer try field-notes")
}
` + "```\n" + `
Keep ` + "`primer watch field-notes`" + ` running in a terminal while you edit
and every save re-renders this page.
`

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) == 1 {
		targetDir = args[0]
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", targetDir, err)
		}
	}

	configPath := filepath.Join(targetDir, ".primer.yml")
	notesDir := filepath.Join(targetDir, "notes")
	samplePath := filepath.Join(notesDir, sampleNoteName)

	if !initForce {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	fmt.Printf("created %s\n", configPath)

	if err := os.MkdirAll(notesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", notesDir, err)
	}

	if _, err := os.Stat(samplePath); err == nil && !initForce {
		fmt.Printf("kept existing %s\n", samplePath)
	} else {
		if err := os.WriteFile(samplePath, []byte(sampleNote), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", samplePath, err)
		}
		fmt.Printf("created %s\n", samplePath)
	}

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  primer list                 # see the course plus your notes")
	fmt.Println("  primer read field-notes     # render the sample note")
	fmt.Println("  primer watch field-notes    # re-render it as you edit")

	return nil
}
