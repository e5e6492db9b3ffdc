package components

import (

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

// InputMode restricts which characters a TextInput accepts.
type InputMode int

const (
	InputText    InputMode = iota
	InputInteger           // digits only
	InputAmount            // digits and one decimal point
	InputHex               // "#" and hex digits
)

// TextInput wraps bubbles/textinput with kubeprep styling.
type TextInput struct {
	Model     textinput.Model
	Label     string
	Mode      InputMode
	MaxWidth  int
	submitted bool
	valid     bool
}

// NewTextInput creates a new styled text input. It starts blurred; call
// Focus to activate it.
func NewTextInput(label, placeholder string, mode InputMode, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
		ti.SetWidth(maxWidth)
	}

	return TextInput{
		Model:    ti,
		Label:    label,
		Mode:     mode,
		MaxWidth: maxWidth,
	}
}

// Focus activates the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur deactivates the input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages, dropping characters the mode does not allow.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && !t.accepts(key[0]) {
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) accepts(ch byte) bool {
	isDigit := ch >= '0' && ch <= '9'
	switch t.Mode {
	case InputInteger:
		return isDigit
	case InputAmount:
		return isDigit || ch == '.'
	case InputHex:
		return isDigit || ch == '#' || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
	}
	return true
}

// View renders the label and the input.
func (t TextInput) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Model.Focused() {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	view := t.Model.View()
	if t.Label != "" {
		view = labelStyle.Render(t.Label) + " " + view
	}
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// Submit marks the input as submitted with a validation result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}

// ClearSubmit removes the validation marker.
func (t *TextInput) ClearSubmit() {
	t.submitted = false
}
