package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amar-at-iitm/primer/internal/exercise/guess"
	"github.com/amar-at-iitm/primer/internal/renderer"
)

// hintEntry is one counted guess and its verdict.
type hintEntry struct {
	guess   int
	outcome guess.Outcome
}

// GameModel is the guessing-game screen. All rules live in the engine;
// this model only collects input and paints verdicts.
type GameModel struct {
	game   *guess.Game
	input  textinput.Model
	styles renderer.Styles

	history  []hintEntry
	inputErr string
	width    int
	done     bool
}

// NewGameModel wraps a running game in the TUI front end.
func NewGameModel(g *guess.Game, styles renderer.Styles) GameModel {
	ti := textinput.New()
	ti.Placeholder = "?"
	ti.CharLimit = 6
	ti.Width = 8
	ti.Focus()

	return GameModel{game: g, input: ti, styles: styles}
}

// Init implements tea.Model.
func (m GameModel) Init() tea.Cmd { return textinput.Blink }

// Update implements tea.Model.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.done {
				return m, tea.Quit
			}
			return m.submit(), nil
		}
		if m.done {
			if msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m GameModel) submit() GameModel {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		return m
	}
	m.input.SetValue("")

	n, err := strconv.Atoi(raw)
	if err != nil {
		m.inputErr = "whole numbers only"
		return m
	}

	outcome, err := m.game.Guess(n)
	if err != nil {
		if errors.Is(err, guess.ErrOutOfRange) {
			m.inputErr = fmt.Sprintf("stay between %d and %d", m.game.Low(), m.game.High())
		}
		return m
	}

	m.inputErr = ""
	m.history = append(m.history, hintEntry{guess: n, outcome: outcome})
	if m.game.Over() {
		m.done = true
		m.input.Blur()
	}
	return m
}

// View implements tea.Model.
func (m GameModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Guess the Number"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("between %d and %d", m.game.Low(), m.game.High())))
	b.WriteString("\n\n")

	for _, h := range m.history {
		b.WriteString(m.verdict(h))
		b.WriteString("\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	if m.done {
		if m.game.Won() {
			b.WriteString(m.styles.Success.Render(fmt.Sprintf("Correct! Found in %d attempts.", m.game.Attempts())))
		} else {
			secret, _ := m.game.Reveal()
			b.WriteString(m.styles.Error.Render(fmt.Sprintf("Out of attempts. It was %d.", secret)))
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Footer.Render("enter leave"))
		return b.String()
	}

	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d attempts left", m.game.AttemptsLeft())))
	b.WriteString("\n")
	b.WriteString(m.styles.Prompt.Render("guess: "))
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.inputErr != "" {
		b.WriteString(m.styles.Error.Render(m.inputErr))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Footer.Render("enter guess · esc quit"))
	return b.String()
}

func (m GameModel) verdict(h hintEntry) string {
	switch h.outcome {
	case guess.OutcomeLow:
		return m.styles.Info.Render(fmt.Sprintf("%3d · too low, go higher", h.guess))
	case guess.OutcomeHigh:
		return m.styles.Warning.Render(fmt.Sprintf("%3d · too high, go lower", h.guess))
	default:
		return m.styles.Success.Render(fmt.Sprintf("%3d · correct", h.guess))
	}
}
