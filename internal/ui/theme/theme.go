package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is the full set of colours the UI renders with.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
}

// DarkPalette mirrors the documentation site's "slate" scheme.
var DarkPalette = Palette{
	Primary:   lipgloss.Color("#818CF8"), // Indigo
	Secondary: lipgloss.Color("#14B8A6"), // Teal
	Accent:    lipgloss.Color("#F97316"), // Orange
	Success:   lipgloss.Color("#22C55E"),
	Error:     lipgloss.Color("#F43F5E"),
	Text:      lipgloss.Color("#F8FAFC"),
	TextDim:   lipgloss.Color("#94A3B8"),
	BgDark:    lipgloss.Color("#0F172A"),
	BgCard:    lipgloss.Color("#1E293B"),
	Border:    lipgloss.Color("#334155"),
}

// LightPalette mirrors the "default" scheme.
var LightPalette = Palette{
	Primary:   lipgloss.Color("#3F51B5"),
	Secondary: lipgloss.Color("#0D9488"),
	Accent:    lipgloss.Color("#EA580C"),
	Success:   lipgloss.Color("#15803D"),
	Error:     lipgloss.Color("#BE123C"),
	Text:      lipgloss.Color("#0F172A"),
	TextDim:   lipgloss.Color("#64748B"),
	BgDark:    lipgloss.Color("#FFFFFF"),
	BgCard:    lipgloss.Color("#F1F5F9"),
	Border:    lipgloss.Color("#CBD5E1"),
}

// variantPrimary holds the primary colour per variant, dark then light.
var variantPrimary = map[string][2]string{
	"blue":   {"#60A5FA", "#2563EB"},
	"green":  {"#4ADE80", "#16A34A"},
	"purple": {"#A78BFA", "#7C3AED"},
}

// Build composes a palette from the light/dark choice, a variant name and
// optional "#rrggbb" overrides. Empty overrides are ignored.
func Build(dark bool, variant, primary, accent string) Palette {
	p := LightPalette
	if dark {
		p = DarkPalette
	}
	if v, ok := variantPrimary[variant]; ok {
		if dark {
			p.Primary = lipgloss.Color(v[0])
		} else {
			p.Primary = lipgloss.Color(v[1])
		}
	}
	if primary != "" {
		p.Primary = lipgloss.Color(primary)
	}
	if accent != "" {
		p.Accent = lipgloss.Color(accent)
	}
	return p
}

// Color palette. Reassigned by Apply.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
)

// Typography
var (
	Title lipgloss.Style
	Hint  lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

// Components
var (
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

var current Palette

func init() {
	Apply(DarkPalette)
}

// Current returns the applied palette.
func Current() Palette {
	return current
}

// Apply makes p the active palette and rebuilds every style. It must only
// be called from the Bubble Tea update loop or before the program starts.
func Apply(p Palette) {
	current = p

	Primary = p.Primary
	Secondary = p.Secondary
	Accent = p.Accent
	Success = p.Success
	Error = p.Error
	Text = p.Text
	TextDim = p.TextDim
	BgDark = p.BgDark
	BgCard = p.BgCard
	Border = p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(BgDark).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
