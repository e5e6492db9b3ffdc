package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/goldenkube/kubeprep/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that are currently editing text,
// so global shortcuts stay out of the way.
type InputCapturer interface {
	CapturingInput() bool
}

// ToastMsg asks the app to show a short notification.
type ToastMsg struct {
	Text string
}

// Toast returns a command that shows text as a notification.
func Toast(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	return func() tea.Msg { return ToastMsg{Text: text} }
}

// SettingsChangedMsg tells the app that appearance settings changed and
// timers or the palette may need refreshing.
type SettingsChangedMsg struct{}

// SettingsChanged returns a command emitting SettingsChangedMsg.
func SettingsChanged() tea.Cmd {
	return func() tea.Msg { return SettingsChangedMsg{} }
}
