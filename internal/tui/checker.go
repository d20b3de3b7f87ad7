package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/pgiban/internal/tui/components"
	"github.com/vvka-141/pgiban/internal/validator"
)

// MaxHistory is the number of submitted entries the checker keeps.
const MaxHistory = 10

// placeholder is shown in the empty field, in the electronic format the
// validator accepts.
const placeholder = "DE89370400440532013000"

// HistoryEntry is one submitted input and its verdict.
type HistoryEntry struct {
	Input  string
	Valid  bool
	Reason string
}

// Checker is an interactive IBAN checker. Every keystroke re-validates the
// input; Enter moves the current verdict into the history.
type Checker struct {
	validator *validator.Validator
	field     components.TextField
	keys      KeyMap
	history   []HistoryEntry
	quitting  bool
}

// NewChecker creates a checker backed by v.
func NewChecker(v *validator.Validator) Checker {
	field := components.NewTextField("IBAN", placeholder).
		WithHint("Type or paste an IBAN").
		WithOKText("valid").
		WithValidator(func(s string) error {
			return explain(v.Check(s))
		})

	return Checker{
		validator: v,
		field:     field,
		keys:      DefaultKeyMap(),
	}
}

// explain strips the input from a validation error; the field already shows it.
func explain(err error) error {
	var verr *validator.Error
	if errors.As(err, &verr) {
		return errors.New(verr.Explanation())
	}
	return err
}

// Init implements tea.Model.
func (c Checker) Init() tea.Cmd {
	return c.field.Init()
}

// Update implements tea.Model.
func (c Checker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, c.keys.Quit):
			c.quitting = true
			return c, tea.Quit
		case key.Matches(msg, c.keys.Clear):
			c.history = nil
			return c, nil
		case key.Matches(msg, c.keys.Submit):
			c.submit()
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.field, cmd = c.field.Update(msg)
	return c, cmd
}

func (c *Checker) submit() {
	input := c.field.Value()
	if input == "" {
		return
	}

	entry := HistoryEntry{Input: input, Valid: true}
	if err := c.field.Error(); err != nil {
		entry.Valid = false
		entry.Reason = err.Error()
	}

	c.history = append([]HistoryEntry{entry}, c.history...)
	if len(c.history) > MaxHistory {
		c.history = c.history[:MaxHistory]
	}
	c.field.SetValue("")
}

// History returns the submitted entries, newest first.
func (c Checker) History() []HistoryEntry {
	return c.history
}

// View implements tea.Model.
func (c Checker) View() string {
	if c.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("pgiban checker"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d countries known", c.validator.Registry().Len())))
	b.WriteString("\n\n")
	b.WriteString(c.field.View())
	b.WriteString("\n")

	if len(c.history) > 0 {
		lines := make([]string, 0, len(c.history))
		for _, h := range c.history {
			lines = append(lines, renderEntry(h))
		}
		b.WriteString("\n")
		b.WriteString(BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render(c.keys.HelpText()))
	b.WriteString("\n")
	return b.String()
}

func renderEntry(h HistoryEntry) string {
	if h.Valid {
		return SuccessStyle.Render(SymbolCheck) + " " + h.Input
	}
	return ErrorStyle.Render(SymbolCross) + " " + h.Input + " " + MutedStyle.Render(h.Reason)
}

// RunChecker runs the checker until the user quits.
func RunChecker(v *validator.Validator, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(NewChecker(v), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("checker: %w", err)
	}
	return nil
}
