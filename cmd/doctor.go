package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/amar-at-iitm/primer/internal/exercise"
	"github.com/amar-at-iitm/primer/internal/notes"
	"github.com/amar-at-iitm/primer/internal/registry"
	"github.com/amar-at-iitm/primer/internal/renderer"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the workbook setup",
	Long: `Check that primer's pieces are healthy: the configuration parses, the
bundled lessons are intact, the notes directory is usable, the terminal
can render styled output, and the exercise registry is sane.

Examples:
  primer doctor                   # Full diagnosis
  primer doctor --verbose         # Include informational results
  primer doctor --format json     # Output as JSON for tooling`,
	RunE: runDoctor,
}

var (
	doctorVerbose bool
	doctorFormat  string
)

// DiagnosticResult represents the result of a diagnostic check
type DiagnosticResult struct {
	Name       string                 `json:"name" yaml:"name"`
	Category   string                 `json:"category" yaml:"category"`
	Status     string                 `json:"status" yaml:"status"` // "ok", "warning", "error", "info"
	Message    string                 `json:"message" yaml:"message"`
	Suggestion string                 `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// DoctorReport represents the complete diagnostic report
type DoctorReport struct {
	Timestamp   time.Time          `json:"timestamp" yaml:"timestamp"`
	Environment map[string]string  `json:"environment" yaml:"environment"`
	Results     []DiagnosticResult `json:"results" yaml:"results"`
	Summary     ReportSummary      `json:"summary" yaml:"summary"`
}

// ReportSummary provides an overview of diagnostic results
type ReportSummary struct {
	Total    int `json:"total" yaml:"total"`
	OK       int `json:"ok" yaml:"ok"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Errors   int `json:"errors" yaml:"errors"`
	Info     int `json:"info" yaml:"info"`
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVarP(&doctorVerbose, "verbose", "v", false, "Show informational results too")
	doctorCmd.Flags().StringVarP(&doctorFormat, "format", "f", "table", "Output format (table|json|yaml)")
}

type diagnosticCheck func(ctx context.Context) DiagnosticResult

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Println("primer doctor")
	fmt.Println("=============")
	fmt.Println()

	report := &DoctorReport{
		Timestamp:   time.Now(),
		Environment: gatherEnvironmentInfo(),
	}

	checks := []diagnosticCheck{
		checkConfiguration,
		checkBundledLessons,
		checkNotesDirectory,
		checkLessonScan,
		checkCrossrefs,
		checkRenderer,
		checkExerciseRegistry,
	}

	for _, check := range checks {
		result := check(ctx)
		report.Results = append(report.Results, result)

		if !doctorVerbose && result.Status == "info" {
			continue
		}
		displayResult(result)
	}

	report.Summary = calculateSummary(report.Results)

	fmt.Println()
	displaySummary(report.Summary)

	if doctorFormat != "table" {
		fmt.Println()
		if err := outputReport(report, doctorFormat); err != nil {
			return fmt.Errorf("failed to output report: %w", err)
		}
	}

	return nil
}

func gatherEnvironmentInfo() map[string]string {
	env := map[string]string{
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"go_version": runtime.Version(),
		"term":       os.Getenv("TERM"),
	}
	if wd, err := os.Getwd(); err == nil {
		env["working_dir"] = wd
	}
	return env
}

func checkConfiguration(ctx context.Context) DiagnosticResult {
	result := DiagnosticResult{
		Name:     "Configuration",
		Category: "config",
		Status:   "ok",
	}

	cfg, err := loadConfig()
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("configuration does not parse: %v", err)
		result.Suggestion = "Fix the reported value in .primer.yml, or run primer config validate for details"
		return result
	}

	result.Message = "configuration parses and validates"
	result.Details = map[string]interface{}{
		"notes_dir":  cfg.Notes.Dir,
		"style":      cfg.Render.Style,
		"difficulty": cfg.Game.Difficulty,
	}
	return result
}

func checkBundledLessons(ctx context.Context) DiagnosticResult {
	result := DiagnosticResult{
		Name:     "Bundled lessons",
		Category: "content",
		Status:   "ok",
	}

	count, err := notes.VerifyEmbedded()
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("bundled lessons are damaged: %v", err)
		result.Suggestion = "Reinstall primer; the bundled course ships inside the binary"
		return result
	}

	result.Message = fmt.Sprintf("%d bundled lessons readable", count)
	return result
}

func checkNotesDirectory(ctx context.Context) DiagnosticResult {
	result := DiagnosticResult{
		Name:     "Notes directory",
		Category: "content",
	}

	cfg, err := loadConfig()
	if err != nil {
		result.Status = "info"
		result.Message = "skipped, configuration does not parse"
		return result
	}

	if cfg.Notes.Dir == "" {
		result.Status = "info"
		result.Message = "no notes directory configured, bundled lessons only"
		result.Suggestion = "Run primer init to start your own notes"
		return result
	}

	info, err := os.Stat(cfg.Notes.Dir)
	switch {
	case os.IsNotExist(err):
		result.Status = "warning"
		result.Message = fmt.Sprintf("notes directory %s does not exist yet", cfg.Notes.Dir)
		result.Suggestion = "Run primer init to scaffold it, or point notes.dir somewhere else"
	case err != nil:
		result.Status = "error"
		result.Message = fmt.Sprintf("notes directory %s is unreadable: %v", cfg.Notes.Dir, err)
	case !info.IsDir():
		result.Status = "error"
		result.Message = fmt.Sprintf("notes path %s is not a directory", cfg.Notes.Dir)
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("notes directory %s is readable", cfg.Notes.Dir)
	}
	return result
}

func checkLessonScan(ctx context.Context) DiagnosticResult {
	result := DiagnosticResult{
		Name:     "Lesson scan",
		Category: "content",
		Status:   "ok",
	}

	cfg, err := loadConfig()
	if err != nil {
		result.Status = "info"
		result.Message = "skipped, configuration does not parse"
		return result
	}

	_, reg, sc, err := discoverLessons(ctx, cfg)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("lesson scan failed: %v", err)
		return result
	}

	result.Message = fmt.Sprintf("%d lessons discovered", reg.Count())
	if sc.Errors().HasErrors() {
		result.Status = "warning"
		problems := sc.Errors().GetAllErrors()
		result.Message = fmt.Sprintf("%d lessons discovered, %d files had problems", reg.Count(), len(problems))
		result.Suggestion = "Run primer list -v to see the per-file reports"
	}
	return result
}

func checkCrossrefs(ctx context.Context) DiagnosticResult {
	result := DiagnosticResult{
		Name:     "Lesson cross-references",
		Category: "content",
		Status:   "ok",
	}

	cfg, err := loadConfig()
	if err != nil {
		result.Status = "info"
		result.Message = "skipped, configuration does not parse"
		return result
	}

	source, reg, _, err := discoverLessons(ctx, cfg)
	if err != nil {
		result.Status = "info"
		result.Message = "skipped, lesson scan failed"
		return result
	}

	analyzer := registry.NewCrossrefAnalyzer(reg, source)
	if err := analyzer.UpdateAll(); err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("cross-reference analysis failed: %v", err)
		return result
	}

	dangling := analyzer.Dangling()
	if len(dangling) > 0 {
		result.Status = "warning"
		result.Message = fmt.Sprintf("%d lessons link to Markdown files that do not exist", len(dangling))
		details := make(map[string]interface{}, len(dangling))
		for slug, targets := range dangling {
			details[slug] = targets
		}
		result.Details = details
		result.Suggestion = "Fix or remove the dangling links"
		return result
	}

	result.Message = "all lesson links resolve"
	return result
}

func checkRenderer(ctx context.Context) DiagnosticResult {
	result := DiagnosticResult{
		Name:     "Renderer",
		Category: "terminal",
		Status:   "ok",
	}

	style := "auto"
	if cfg, err := loadConfig(); err == nil {
		style = cfg.Render.Style
	}
	resolved := renderer.ResolveStyle(style)

	result.Details = map[string]interface{}{
		"configured": style,
		"resolved":   resolved,
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		result.Status = "info"
		result.Message = "stdout is not a terminal, output falls back to plain text"
		return result
	}

	result.Message = fmt.Sprintf("terminal detected, rendering with the %s style", resolved)
	return result
}

func checkExerciseRegistry(ctx context.Context) DiagnosticResult {
	result := DiagnosticResult{
		Name:     "Exercise registry",
		Category: "exercises",
		Status:   "ok",
	}

	infos := exerciseInfos()
	if len(infos) == 0 {
		result.Status = "error"
		result.Message = "no exercises registered"
		result.Suggestion = "This build is broken; the bundled exercises register at startup"
		return result
	}

	for _, info := range infos {
		if info.Title == "" || info.Chapter <= 0 {
			result.Status = "warning"
			result.Message = fmt.Sprintf("exercise %s has incomplete metadata", info.Slug)
			return result
		}
	}

	result.Message = fmt.Sprintf("%d exercises registered (%s...)", exercise.Count(), infos[0].Slug)
	return result
}

func displayResult(result DiagnosticResult) {
	icon := map[string]string{
		"ok":      "✅",
		"warning": "⚠️ ",
		"error":   "❌",
		"info":    "ℹ️ ",
	}[result.Status]

	fmt.Printf("%s %s: %s\n", icon, result.Name, result.Message)
	if result.Suggestion != "" {
		fmt.Printf("   → %s\n", result.Suggestion)
	}
}

func calculateSummary(results []DiagnosticResult) ReportSummary {
	summary := ReportSummary{Total: len(results)}
	for _, result := range results {
		switch result.Status {
		case "ok":
			summary.OK++
		case "warning":
			summary.Warnings++
		case "error":
			summary.Errors++
		case "info":
			summary.Info++
		}
	}
	return summary
}

func displaySummary(summary ReportSummary) {
	fmt.Printf("%d checks: %d ok, %d warnings, %d errors, %d info\n",
		summary.Total, summary.OK, summary.Warnings, summary.Errors, summary.Info)

	switch {
	case summary.Errors > 0:
		fmt.Println("Something is broken; fix the ❌ items first.")
	case summary.Warnings > 0:
		fmt.Println("Usable, with warnings worth a look.")
	default:
		fmt.Println("Everything looks healthy.")
	}
}

func outputReport(report *DoctorReport, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		defer encoder.Close()
		return encoder.Encode(report)
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json, yaml)", format)
	}
}
