// Package renderer turns lesson Markdown into styled terminal output.
//
// Rendering goes through a glamour TermRenderer configured from the render
// section of the config: a color style (auto, dark, light, or notty), a
// word-wrap width, and a raw switch that bypasses glamour entirely. Style
// resolution collapses to notty when stdout is not a terminal, so piping
// `primer read` into a file never emits ANSI escapes. A render that fails
// inside glamour degrades to the plain Markdown source instead of taking
// the command down. The package also holds the lipgloss chrome (headers,
// status lines, dividers) shared between the commands and the TUI.
package renderer

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/amar-at-iitm/primer/internal/config"
	"github.com/amar-at-iitm/primer/internal/notes"
	"github.com/amar-at-iitm/primer/internal/types"
)

// defaultWrapWidth is used when no width is configured and the terminal
// size cannot be determined.
const defaultWrapWidth = 80

// LessonRenderer renders lesson Markdown for the terminal
type LessonRenderer struct {
	source *notes.Source
	style  string
	width  int
	raw    bool
	tr     *glamour.TermRenderer
}

// NewLessonRenderer creates a renderer reading lessons from source. A nil
// cfg uses auto style at the detected terminal width.
func NewLessonRenderer(source *notes.Source, cfg *config.RenderConfig) (*LessonRenderer, error) {
	style, width, raw := "auto", 0, false
	if cfg != nil {
		style = cfg.Style
		width = cfg.Width
		raw = cfg.Raw
	}

	r := &LessonRenderer{
		source: source,
		style:  ResolveStyle(style),
		width:  ResolveWidth(width),
		raw:    raw,
	}

	if r.raw {
		return r, nil
	}

	tr, err := glamour.NewTermRenderer(
		styleOption(r.style),
		glamour.WithWordWrap(r.width),
	)
	if err != nil {
		return nil, fmt.Errorf("building markdown renderer: %w", err)
	}
	r.tr = tr

	return r, nil
}

// ResolveStyle maps a configured style to the concrete glamour style.
// Any style collapses to notty when stdout is not a terminal.
func ResolveStyle(style string) string {
	if style == "" {
		style = "auto"
	}
	if !isTerminal(os.Stdout) {
		return "notty"
	}
	return style
}

// ResolveWidth returns the configured width, falling back to the terminal
// width and then to the default wrap width.
func ResolveWidth(width int) int {
	if width > 0 {
		return width
	}
	if isTerminal(os.Stdout) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultWrapWidth
}

// styleOption picks the glamour option for a resolved style name.
func styleOption(style string) glamour.TermRendererOption {
	if style == "auto" {
		return glamour.WithAutoStyle()
	}
	return glamour.WithStylePath(style)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Style returns the resolved glamour style name.
func (r *LessonRenderer) Style() string {
	return r.style
}

// Width returns the resolved word-wrap width.
func (r *LessonRenderer) Width() int {
	return r.width
}

// Raw reports whether rendering is bypassed.
func (r *LessonRenderer) Raw() bool {
	return r.raw
}

// RenderLesson reads a lesson from the source and renders it.
func (r *LessonRenderer) RenderLesson(lesson *types.LessonInfo) (string, error) {
	if lesson == nil {
		return "", fmt.Errorf("cannot render nil lesson")
	}

	content, err := r.source.ReadLesson(lesson)
	if err != nil {
		return "", fmt.Errorf("reading lesson %s: %w", lesson.Slug, err)
	}

	return r.RenderBytes(content), nil
}

// RenderBytes renders raw Markdown content, returning the plain source
// when raw mode is set or rendering fails.
func (r *LessonRenderer) RenderBytes(content []byte) string {
	if r.raw || r.tr == nil {
		return string(content)
	}
	return r.safeRender(string(content))
}

// RenderSnippet renders a single code snippet as a fenced block.
func (r *LessonRenderer) RenderSnippet(snippet types.SnippetInfo) string {
	var sb strings.Builder
	sb.WriteString("```")
	sb.WriteString(snippet.Lang)
	sb.WriteString("\n")
	sb.WriteString(snippet.Source)
	if !strings.HasSuffix(snippet.Source, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("```\n")
	return r.RenderBytes([]byte(sb.String()))
}

// safeRender renders markdown with panic recovery, degrading to the
// plain source on any failure.
func (r *LessonRenderer) safeRender(content string) (result string) {
	defer func() {
		if rec := recover(); rec != nil {
			result = content
		}
	}()

	rendered, err := r.tr.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
