// Package calculator is the certification cost calculator screen.
package calculator

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/goldenkube/kubeprep/internal/costcalc"
	"github.com/goldenkube/kubeprep/internal/router"
	"github.com/goldenkube/kubeprep/internal/screen"
	"github.com/goldenkube/kubeprep/internal/ui/components"
	"github.com/goldenkube/kubeprep/internal/ui/layout"
	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

const (
	inputRetakes = iota
	inputTraining
	inputAdditional
	inputCount
)

// CalculatorScreen lets the user pick certifications and extra costs and
// shows the running total.
type CalculatorScreen struct {
	exams    []costcalc.Exam
	checked  map[string]bool
	inputs   [inputCount]components.TextInput
	cursor   int
	estimate costcalc.Estimate
}

var _ screen.Screen = (*CalculatorScreen)(nil)
var _ screen.KeyHintProvider = (*CalculatorScreen)(nil)
var _ screen.InputCapturer = (*CalculatorScreen)(nil)

// New creates the calculator with the given certifications preselected.
func New(preselected ...string) *CalculatorScreen {
	s := &CalculatorScreen{
		exams:   costcalc.Catalogue(),
		checked: make(map[string]bool),
	}
	for _, code := range preselected {
		if e, ok := costcalc.Lookup(code); ok {
			s.checked[e.Code] = true
		}
	}
	s.inputs[inputRetakes] = components.NewTextInput("Retakes per exam (max 3)", "0", components.InputInteger, 4)
	s.inputs[inputTraining] = components.NewTextInput("Training costs ($)      ", "0.00", components.InputAmount, 10)
	s.inputs[inputAdditional] = components.NewTextInput("Additional costs ($)    ", "0.00", components.InputAmount, 10)
	s.recalculate()
	return s
}

func (s *CalculatorScreen) Init() tea.Cmd { return nil }

func (s *CalculatorScreen) Title() string { return "Cost Calculator" }

func (s *CalculatorScreen) rows() int { return len(s.exams) + inputCount }

// input returns the index of the focused input, or -1 on a certification row.
func (s *CalculatorScreen) input() int {
	if s.cursor >= len(s.exams) {
		return s.cursor - len(s.exams)
	}
	return -1
}

// CapturingInput reports whether a text field has focus.
func (s *CalculatorScreen) CapturingInput() bool {
	return s.input() >= 0
}

func (s *CalculatorScreen) KeyHints() []layout.KeyHint {
	if s.CapturingInput() {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "0-9", Description: "Amount"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space", Description: "Toggle"},
		{Key: "C", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CalculatorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if i := s.input(); i >= 0 {
			var cmd tea.Cmd
			s.inputs[i], cmd = s.inputs[i].Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "shift+tab":
		return s, s.move(-1)
	case "down", "tab":
		return s, s.move(1)
	}

	if i := s.input(); i >= 0 {
		if kmsg.String() == "enter" {
			return s, s.move(1)
		}
		var cmd tea.Cmd
		s.inputs[i], cmd = s.inputs[i].Update(msg)
		s.recalculate()
		return s, cmd
	}

	switch kmsg.String() {
	case "k":
		return s, s.move(-1)
	case "j":
		return s, s.move(1)
	case "space", "enter", "x":
		code := s.exams[s.cursor].Code
		s.checked[code] = !s.checked[code]
		s.recalculate()
	case "c":
		s.reset()
	}
	return s, nil
}

func (s *CalculatorScreen) move(delta int) tea.Cmd {
	next := s.cursor + delta
	if next < 0 || next >= s.rows() {
		return nil
	}
	if i := s.input(); i >= 0 {
		s.inputs[i].Blur()
	}
	s.cursor = next
	if i := s.input(); i >= 0 {
		return s.inputs[i].Focus()
	}
	return nil
}

func (s *CalculatorScreen) reset() {
	s.checked = make(map[string]bool)
	for i := range s.inputs {
		s.inputs[i].SetValue("")
	}
	s.recalculate()
}

func (s *CalculatorScreen) selection() costcalc.Selection {
	var sel costcalc.Selection
	for _, e := range s.exams {
		if s.checked[e.Code] {
			sel.Certs = append(sel.Certs, e.Code)
		}
	}
	sel.Retakes = costcalc.ParseCount(s.inputs[inputRetakes].Value())
	sel.Training = costcalc.ParseAmount(s.inputs[inputTraining].Value())
	sel.Additional = costcalc.ParseAmount(s.inputs[inputAdditional].Value())
	return sel
}

func (s *CalculatorScreen) recalculate() {
	s.estimate = costcalc.Calculate(s.selection())
}

func (s *CalculatorScreen) View(width, height int) string {
	var left []string
	left = append(left, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("CERTIFICATIONS"))
	for i, e := range s.exams {
		box := "[ ]"
		if s.checked[e.Code] {
			box = lipgloss.NewStyle().Foreground(theme.Success).Render("[x]")
		}
		line := fmt.Sprintf("%-5s %-44s %s", e.Code, e.Name, costcalc.FormatUSD(e.Price))
		prefix := "  "
		style := theme.Unselected
		if i == s.cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		left = append(left, prefix+box+" "+style.Render(line))
	}
	left = append(left, "")
	for i := range s.inputs {
		prefix := "  "
		if s.input() == i {
			prefix = "▸ "
		}
		left = append(left, prefix+s.inputs[i].View())
	}

	form := strings.Join(left, "\n")
	total := renderTotals(s.estimate, s.selection().Retakes)

	var body string
	if width >= lipgloss.Width(form)+lipgloss.Width(total)+6 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, form, "    ", total)
	} else {
		body = form + "\n\n" + total
	}
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func renderTotals(est costcalc.Estimate, retakes int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Text)
	row := func(name string, v float64) string {
		return label.Render(fmt.Sprintf("%-12s", name)) + value.Render(fmt.Sprintf("%12s", costcalc.FormatUSD(v)))
	}

	lines := []string{
		row("Exams", est.Exams),
		row("Training", est.Training),
		row("Additional", est.Additional),
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", 24)),
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(
			fmt.Sprintf("%-12s%12s", "TOTAL", costcalc.FormatUSD(est.Total))),
	}
	if retakes > costcalc.MaxRetakes {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Accent).Render(
			fmt.Sprintf("Retakes capped at %d", costcalc.MaxRetakes)))
	}

	return components.Card("ESTIMATE", strings.Join(lines, "\n"))
}
