package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/goldenkube/kubeprep/internal/screens/welcome"
	"github.com/goldenkube/kubeprep/internal/ui/components"
	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

const titleCompact = "K · U · B · E · P · R · E · P"

// renderTitle returns the banner or the compact fallback.
func renderTitle(cw int, compact bool) string {
	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(titleCompact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(cw))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(d dashboard, cw int, compact bool) string {
	themeStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	attemptStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	name := d.theme
	if name == "" {
		name = "-"
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			themeStyle.Render("◐"+name),
			attemptStyle.Render(fmt.Sprintf("✎%d", d.attempts)),
			bestText(d, true, bestStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			themeStyle.Render("◐ "+strings.ToUpper(name)),
			attemptStyle.Render(fmt.Sprintf("✎ %d ATTEMPTS", d.attempts)),
			bestText(d, false, bestStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func bestText(d dashboard, compact bool, active, dim lipgloss.Style) string {
	if !d.hasBest {
		if compact {
			return dim.Render("★-")
		}
		return dim.Render("★ NO SCORE YET")
	}
	if compact {
		return active.Render(fmt.Sprintf("★%d%%", d.best))
	}
	return active.Render(fmt.Sprintf("★ BEST %d%%", d.best))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	buttons := make([]string, len(items))
	for i, label := range items {
		buttons[i] = components.ArcadeButton(label, i == selected, buttonWidth)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(r Readiness, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(r))
}
