package components

import (
	"charm.land/lipgloss/v2"

	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

// ContentWidth is the inner width shared by the boxes inside a cabinet
// frame of frameWidth columns.
func ContentWidth(frameWidth int) int {
	// border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 70 {
		w = 70
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CabinetFrame wraps content in a double border filling width x height,
// centred both ways.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card draws a rounded box with a bold heading above content.
func Card(heading, content string) string {
	if heading != "" {
		content = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(heading) + "\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Render(content)
}

// ArcadeButton renders a bordered menu button of the given width.
func ArcadeButton(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
}
