// Package tui holds the bubbletea screens behind primer interactive
// and primer play. The menu browses lessons and exercises; the game
// screen fronts the guessing-game engine. Exercises themselves run
// outside the program loop, so the caller launches whatever the menu
// reports as selected once the screen closes.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amar-at-iitm/primer/internal/renderer"
	"github.com/amar-at-iitm/primer/internal/types"
)

type menuMode int

const (
	modeBrowse menuMode = iota
	modeLesson
)

// lessonItem adapts a lesson for bubbles/list.
type lessonItem struct {
	lesson *types.LessonInfo
}

func (i lessonItem) Title() string {
	return fmt.Sprintf("ch %d · %s", i.lesson.Chapter, i.lesson.Title)
}
func (i lessonItem) Description() string { return i.lesson.Summary }
func (i lessonItem) FilterValue() string {
	return i.lesson.Slug + " " + i.lesson.Title + " " + i.lesson.Summary
}

// exerciseItem adapts exercise metadata for bubbles/list.
type exerciseItem struct {
	info types.ExerciseInfo
}

func (i exerciseItem) Title() string {
	return fmt.Sprintf("ch %d · %s (%s)", i.info.Chapter, i.info.Title, i.info.Kind)
}
func (i exerciseItem) Description() string { return i.info.Summary }
func (i exerciseItem) FilterValue() string {
	return i.info.Slug + " " + i.info.Title + " " + i.info.Summary
}

// MenuModel is the workbook browser: a filterable list of lessons and
// exercises, with lessons opening into a scrollable rendered view.
type MenuModel struct {
	list     list.Model
	viewport viewport.Model
	renderer *renderer.LessonRenderer
	styles   renderer.Styles

	mode    menuMode
	width   int
	height  int
	current *types.LessonInfo

	// selected is the exercise the user chose to launch; the program
	// quits and the caller runs it on the real terminal.
	selected *types.ExerciseInfo
}

// NewMenuModel builds the browser over already-discovered lessons and
// registered exercise metadata.
func NewMenuModel(lessons []*types.LessonInfo, exercises []types.ExerciseInfo, rend *renderer.LessonRenderer, styles renderer.Styles) MenuModel {
	items := make([]list.Item, 0, len(lessons)+len(exercises))
	for _, lesson := range lessons {
		items = append(items, lessonItem{lesson: lesson})
	}
	for _, info := range exercises {
		items = append(items, exerciseItem{info: info})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "primer workbook"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = styles.Title

	return MenuModel{
		list:     l,
		viewport: viewport.New(0, 0),
		renderer: rend,
		styles:   styles,
	}
}

// SelectedExercise reports the exercise chosen for launch, nil when the
// user just quit.
func (m MenuModel) SelectedExercise() *types.ExerciseInfo { return m.selected }

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 3
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode == modeLesson {
			return m.updateLesson(msg)
		}
		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While a filter is being typed, every key belongs to the list
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		switch item := m.list.SelectedItem().(type) {
		case lessonItem:
			return m.openLesson(item.lesson), nil
		case exerciseItem:
			info := item.info
			m.selected = &info
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) updateLesson(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.mode = modeBrowse
		m.current = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m MenuModel) openLesson(lesson *types.LessonInfo) MenuModel {
	content, err := m.renderer.RenderLesson(lesson)
	if err != nil {
		content = m.styles.Error.Render(fmt.Sprintf("could not read %s: %v", lesson.Slug, err))
	}

	m.current = lesson
	m.mode = modeLesson
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
	return m
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.mode == modeLesson {
		var b strings.Builder
		if m.current != nil {
			b.WriteString(m.styles.LessonHeader(m.current.Chapter, m.current.Title))
		}
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Footer.Render("↑/↓ scroll · esc back · ctrl+c quit"))
		return b.String()
	}

	return m.list.View() + "\n" + m.styles.Footer.Render("enter open · / filter · q quit")
}
