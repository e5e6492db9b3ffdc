package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

// Button fires OnPress on Enter while active. With a Confirm prompt the
// first Enter only arms it and a second Enter fires; any other key disarms.
type Button struct {
	Label   string
	Confirm string
	Active  bool
	OnPress func() tea.Cmd

	armed bool
}

// NewButton creates an inactive button.
func NewButton(label string, onPress func() tea.Cmd) Button {
	return Button{Label: label, OnPress: onPress}
}

// WithConfirm returns b requiring a second press, showing prompt in between.
func (b Button) WithConfirm(prompt string) Button {
	b.Confirm = prompt
	return b
}

// SetActive focuses or blurs the button. Blurring disarms it.
func (b *Button) SetActive(active bool) {
	b.Active = active
	if !active {
		b.armed = false
	}
}

// Armed reports whether the next Enter fires.
func (b Button) Armed() bool {
	return b.armed
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !b.Active || !ok {
		return b, nil
	}
	if kmsg.String() != "enter" {
		b.armed = false
		return b, nil
	}
	if b.Confirm != "" && !b.armed {
		b.armed = true
		return b, nil
	}
	b.armed = false
	if b.OnPress == nil {
		return b, nil
	}
	return b, b.OnPress()
}

// View renders the button, or the confirmation prompt while armed.
func (b Button) View() string {
	if b.armed {
		return theme.ButtonActive.Background(theme.Error).Render("  ! " + b.Confirm + " ")
	}
	label := "  ▸ " + b.Label + " "
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
