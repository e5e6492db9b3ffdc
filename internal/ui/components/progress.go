package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

// ProgressBar is a horizontal bar for exam progress and section scores.
type ProgressBar struct {
	Label       string
	Ratio       float64
	ShowPercent bool
	Width       int

	// Mark draws a tick at this ratio, typically the pass mark, and colours
	// the fill by whether Ratio reaches it. Zero draws no tick.
	Mark float64
}

// View renders the bar in Width columns.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("%5d%%", int(clampRatio(p.Ratio)*100+0.5))
	}

	barWidth := max(p.Width-lipgloss.Width(b.String())-len(suffix), 4)
	filled := int(float64(barWidth) * clampRatio(p.Ratio))
	mark := -1
	if p.Mark > 0 {
		mark = min(int(float64(barWidth)*clampRatio(p.Mark)), barWidth-1)
	}

	fill := lipgloss.NewStyle().Background(p.fillColor())
	track := lipgloss.NewStyle().Background(theme.Border)
	for i := 0; i < barWidth; i++ {
		cell := " "
		if i == mark {
			cell = "│"
		}
		style := track
		if i < filled {
			style = fill
		}
		if i == mark {
			style = style.Foreground(theme.Text)
		}
		b.WriteString(style.Render(cell))
	}

	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return b.String()
}

func (p ProgressBar) fillColor() color.Color {
	switch {
	case p.Mark <= 0:
		return theme.Secondary
	case p.Ratio >= p.Mark:
		return theme.Success
	default:
		return theme.Error
	}
}

func clampRatio(r float64) float64 {
	return min(max(r, 0), 1)
}
