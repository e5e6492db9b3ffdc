package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

// Readiness is how the last exam attempt went, shown by the helm mascot.
type Readiness int

const (
	ReadinessUnknown Readiness = iota // no attempts yet
	ReadinessPassed
	ReadinessFailed
)

type badge struct {
	eyes, mouth, foot string
	caption           string
	color             func() color.Color
}

var badges = map[Readiness]badge{
	ReadinessUnknown: {"◉ ◉", " ▽ ", "", "TAKE A DEMO EXAM", func() color.Color { return theme.Primary }},
	ReadinessPassed:  {"★ ★", " ▿ ", "  ╚═╝", "EXAM READY", func() color.Color { return theme.Success }},
	ReadinessFailed:  {"◉ ◉", " △ ", "", "KEEP PRACTISING", func() color.Color { return theme.Accent }},
}

// readinessFor derives the mascot mood from the dashboard.
func readinessFor(d dashboard) Readiness {
	switch {
	case d.attempts == 0:
		return ReadinessUnknown
	case d.passed:
		return ReadinessPassed
	default:
		return ReadinessFailed
	}
}

// RenderMascot draws the helm mascot with its caption underneath.
func RenderMascot(r Readiness) string {
	b, ok := badges[r]
	if !ok {
		b = badges[ReadinessUnknown]
	}
	bottom := "└─────┘"
	if b.foot != "" {
		bottom = "└─╥═╥─┘\n" + b.foot
	}
	art := "┌─────┐\n│ " + b.eyes + " │\n│ " + b.mouth + " │\n│  ⎈  │\n" + bottom

	fg := b.color()
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(fg).Render(art),
		lipgloss.NewStyle().Foreground(fg).Bold(true).Render(b.caption),
	)
}
