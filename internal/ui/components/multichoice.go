package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

// NoChoice marks a ChoiceList with nothing chosen yet.
const NoChoice = -1

// ChoiceList is a lettered multiple-choice selector. It only tracks the
// cursor; the owner decides what a choice means.
type ChoiceList struct {
	Options []string
	Cursor  int

	// Chosen is the recorded answer, or NoChoice.
	Chosen int
	// Correct is highlighted when Reveal is set.
	Correct int
	Reveal  bool

	// Render formats option text, e.g. inline markdown. Nil means plain.
	Render func(string) string
}

// NewChoiceList creates a ChoiceList with the cursor on the chosen option,
// or on the first one.
func NewChoiceList(options []string, chosen, correct int) ChoiceList {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	}
	return ChoiceList{
		Options: options,
		Cursor:  cursor,
		Chosen:  chosen,
		Correct: correct,
	}
}

// ChoiceLabel returns "A", "B", ... for index i.
func ChoiceLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// Update moves the cursor and reports the option picked with Enter, a
// number key or a letter key, or NoChoice when the key picked nothing. The
// pick is returned directly so the owner applies it to the question that
// was on screen when the key arrived.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, int) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, NoChoice
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, NoChoice
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
		return c, NoChoice
	case "enter", "space":
		return c, c.Cursor
	}

	if len(key) == 1 {
		idx := -1
		switch ch := key[0]; {
		case ch >= '1' && ch <= '9':
			idx = int(ch - '1')
		case ch >= 'a' && ch <= 'z' && ch != 'j' && ch != 'k':
			idx = int(ch - 'a')
		}
		if idx >= 0 && idx < len(c.Options) {
			c.Cursor = idx
			return c, idx
		}
	}
	return c, NoChoice
}

// View renders the options.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		text := opt
		if c.Render != nil {
			text = c.Render(opt)
		}
		marker := " "
		if i == c.Chosen {
			marker = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, ChoiceLabel(i), text)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case c.Reveal && i == c.Correct:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case c.Reveal && i == c.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		case c.Reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Cursor:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
