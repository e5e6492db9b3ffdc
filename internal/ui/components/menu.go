package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu. Key, when set, activates the item
// directly.
type MenuItem struct {
	Label  string
	Key    string
	Action func() tea.Cmd
}

// Menu is a vertical list with a wrapping cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first item selected.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Labels returns the item labels in order.
func (m Menu) Labels() []string {
	out := make([]string, len(m.Items))
	for i, it := range m.Items {
		out[i] = it.Label
	}
	return out
}

// Update moves the cursor with up/down (or k/j), activates the selection
// with Enter and runs an item whose Key was pressed.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
	case "down", "j":
		m.Selected = (m.Selected + 1) % len(m.Items)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		for i, it := range m.Items {
			if it.Key != "" && strings.EqualFold(it.Key, key) {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}
