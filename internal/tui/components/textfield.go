// Package components contains reusable Bubble Tea widgets.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextField is a labeled text input that re-validates its value on every
// change and shows the outcome under the input.
type TextField struct {
	label     string
	hint      string
	okText    string
	input     textinput.Model
	validator func(string) error
	err       error
	styles    textFieldStyles
}

type textFieldStyles struct {
	Label lipgloss.Style
	Input lipgloss.Style
	Hint  lipgloss.Style
	OK    lipgloss.Style
	Error lipgloss.Style
}

func defaultTextFieldStyles() textFieldStyles {
	return textFieldStyles{
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Input: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Hint:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		OK:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// NewTextField creates a focused text field.
func NewTextField(label, placeholder string) TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	return TextField{
		label:  label,
		okText: "ok",
		input:  ti,
		styles: defaultTextFieldStyles(),
	}
}

// WithValidator sets the function run on every change.
func (t TextField) WithValidator(fn func(string) error) TextField {
	t.validator = fn
	return t
}

// WithHint sets the text shown while the field is empty.
func (t TextField) WithHint(hint string) TextField {
	t.hint = hint
	return t
}

// WithOKText sets the text shown when the value passes validation.
func (t TextField) WithOKText(text string) TextField {
	t.okText = text
	return t
}

// Init implements tea.Model.
func (t TextField) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (t TextField) Update(msg tea.Msg) (TextField, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	t.revalidate()
	return t, cmd
}

func (t *TextField) revalidate() {
	t.err = nil
	if t.validator != nil && t.input.Value() != "" {
		t.err = t.validator(t.input.Value())
	}
}

// View implements tea.Model.
func (t TextField) View() string {
	var b strings.Builder

	b.WriteString(t.styles.Label.Render(t.label))
	b.WriteString("\n")
	b.WriteString(t.styles.Input.Render(t.input.View()))
	b.WriteString("\n")

	switch {
	case t.input.Value() == "":
		b.WriteString(t.styles.Hint.Render(t.hint))
	case t.err != nil:
		b.WriteString(t.styles.Error.Render("✗ " + t.err.Error()))
	default:
		b.WriteString(t.styles.OK.Render("✓ " + t.okText))
	}
	return b.String()
}

// Value returns the current value.
func (t TextField) Value() string {
	return t.input.Value()
}

// SetValue replaces the value and re-validates it.
func (t *TextField) SetValue(v string) {
	t.input.SetValue(v)
	t.revalidate()
}

// Error returns the outcome of the last validation; nil for an empty field.
func (t TextField) Error() error {
	return t.err
}
