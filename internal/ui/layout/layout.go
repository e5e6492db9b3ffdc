// Package layout draws the frame shared by every screen: a header bar with
// the breadcrumb and theme status, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24
)

const brand = "kubeprep"

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height))
}

// Chrome is everything drawn around a screen's body.
type Chrome struct {
	Title  string
	Status string
	Hints  []KeyHint
	Toast  string
}

// Render draws the chrome at width x height and fills the space between
// header and footer with body, which is told how much room it has.
func (c Chrome) Render(width, height int, body func(width, height int) string) string {
	header := RenderHeader(c.Title, c.Status, width)
	footer := RenderFooter(c.Hints, width)
	if c.Toast != "" {
		footer = RenderToast(c.Toast, width) + "\n" + footer
	}
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return RenderFrame(header, body(width, bodyHeight), footer, width, height)
}

// bar wraps one line of content in the card-coloured rounded bar used for
// both header and footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader puts the brand on the left, title in the middle and status
// on the right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + brand)
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-4, 0)
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	gapL := max((inner-mw)/2-lw, 1)
	gapR := max(inner-lw-gapL-mw-rw, 1)

	return bar(left+strings.Repeat(" ", gapL)+mid+strings.Repeat(" ", gapR)+right, width)
}

// RenderFooter lists the hints in order, dropping the ones that no longer
// fit on the line.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	room := max(width-4, 0)
	line := " "
	for _, h := range hints {
		part := "  " + key.Render(h.Key) + " " + desc.Render(h.Description)
		if lipgloss.Width(line+part) > room {
			break
		}
		line += part
	}
	return bar(line, width)
}

// RenderToast right-aligns a one-line notification.
func RenderToast(msg string, width int) string {
	if msg == "" {
		return ""
	}
	pill := lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(theme.Accent).
		Bold(true).
		Padding(0, 1).
		Render(msg)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, pill)
}

// RenderFrame stacks header, content and footer, padding content to the
// height left over.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
