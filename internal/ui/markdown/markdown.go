// Package markdown renders the small markdown subset used in question banks
// (emphasis, code, links, lists, code blocks) as styled terminal text.
package markdown

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

var md = goldmark.New()

// Render renders src as blocks separated by blank lines.
func Render(src string) string {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	var blocks []string
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if s := block(c, source); s != "" {
			blocks = append(blocks, s)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// Inline renders src on a single line. Block structure is flattened.
func Inline(src string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(Render(src), "\n", " ")), " ")
}

func block(n ast.Node, src []byte) string {
	switch n := n.(type) {
	case *ast.Heading:
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(inlines(n, src))

	case *ast.List:
		num := n.Start
		if num == 0 {
			num = 1
		}
		var lines []string
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			bullet := "•"
			if n.IsOrdered() {
				bullet = fmt.Sprintf("%d.", num)
				num++
			}
			var parts []string
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				parts = append(parts, block(c, src))
			}
			body := strings.ReplaceAll(strings.Join(parts, "\n"), "\n", "\n    ")
			lines = append(lines, "  "+bullet+" "+body)
		}
		return strings.Join(lines, "\n")

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var b strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(src))
		}
		return lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(theme.Border).
			PaddingLeft(1).
			Render(strings.TrimRight(b.String(), "\n"))

	case *ast.Blockquote:
		var parts []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			parts = append(parts, block(c, src))
		}
		return lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("│ " + strings.ReplaceAll(strings.Join(parts, "\n"), "\n", "\n│ "))

	case *ast.ThematicBreak:
		return lipgloss.NewStyle().Foreground(theme.Border).Render("───")

	case *ast.HTMLBlock:
		return ""
	}
	return inlines(n, src)
}

func inlines(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		b.WriteString(inline(c, src))
	}
	return b.String()
}

func inline(n ast.Node, src []byte) string {
	switch n := n.(type) {
	case *ast.Text:
		s := string(n.Segment.Value(src))
		switch {
		case n.HardLineBreak():
			s += "\n"
		case n.SoftLineBreak():
			s += " "
		}
		return s

	case *ast.String:
		return string(n.Value)

	case *ast.CodeSpan:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render(plain(n, src))

	case *ast.Emphasis:
		style := lipgloss.NewStyle().Italic(true)
		if n.Level >= 2 {
			style = lipgloss.NewStyle().Bold(true)
		}
		return style.Render(inlines(n, src))

	case *ast.Link:
		return lipgloss.NewStyle().Foreground(theme.Primary).Underline(true).Render(inlines(n, src))

	case *ast.AutoLink:
		return lipgloss.NewStyle().Foreground(theme.Primary).Underline(true).Render(string(n.Label(src)))

	case *ast.RawHTML:
		return ""
	}
	return inlines(n, src)
}

// plain concatenates the raw text below n.
func plain(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			continue
		}
		b.WriteString(plain(c, src))
	}
	return b.String()
}
