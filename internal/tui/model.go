// Package tui is the picker's terminal interface: a query line over a list
// of ranked emoji.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/subins2000/quemoji/internal/picker"
)

const glyphColumn = 3

// Options customise the picker view.
type Options struct {
	Prompt      string
	Placeholder string
}

// Outcome says how the picker closed.
type Outcome int

const (
	// Aborted means the program stopped without a key decision.
	Aborted Outcome = iota
	// Confirmed means the user pressed Enter.
	Confirmed
	// Cancelled means the user pressed Esc or Ctrl+C.
	Cancelled
)

var (
	topStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	codeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	emptyStyle = lipgloss.NewStyle().Faint(true)
	helpStyle  = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

// Model is the bubbletea model of the picker.
type Model struct {
	engine  *picker.Engine
	input   textinput.Model
	outcome Outcome
}

// New returns a picker model driving engine.
func New(engine *picker.Engine, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = opts.Prompt
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	return Model{engine: engine, input: ti}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.outcome = Confirmed
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.engine.Cancel()
			m.outcome = Cancelled
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if w := msg.Width - lipgloss.Width(m.input.Prompt) - 1; w > 0 {
			m.input.Width = w
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.engine.Update(value)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	results := m.engine.Results()
	if len(results) == 0 && m.input.Value() != "" {
		b.WriteString(emptyStyle.Render("no matches"))
		b.WriteString("\n")
	}
	for i, res := range results {
		code := strings.TrimPrefix(res.Label, res.Glyph+" ")
		line := runewidth.FillRight(res.Glyph, glyphColumn) + code
		if i == 0 {
			line = topStyle.Render(line)
		} else {
			line = codeStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter: insert  esc: cancel"))
	return b.String()
}

// Outcome reports how the picker closed.
func (m Model) Outcome() Outcome {
	return m.outcome
}

// Run shows the picker on the alternate screen until the user confirms or
// cancels. The screen is restored before Run returns, so the caller may
// inject text afterwards.
func Run(ctx context.Context, engine *picker.Engine, opts Options, progOpts ...tea.ProgramOption) (Outcome, error) {
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, progOpts...)
	final, err := tea.NewProgram(New(engine, opts), progOpts...).Run()
	if err != nil {
		return Aborted, fmt.Errorf("picker ui: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return Aborted, nil
	}
	return m.Outcome(), nil
}
