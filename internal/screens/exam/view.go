package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/goldenkube/kubeprep/internal/analytics"
	quiz "github.com/goldenkube/kubeprep/internal/exam"
	"github.com/goldenkube/kubeprep/internal/ui/components"
	"github.com/goldenkube/kubeprep/internal/ui/markdown"
	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.loading || s.state.Questions == nil {
		return renderLoading(width)
	}
	if s.leaving {
		return renderConfirm(width, "Leave the exam?", "Your answers will be lost.", "[Y] Yes, leave", "[N] No, keep going")
	}
	if s.state.ConfirmingSubmit {
		n := s.state.UnansweredCount()
		return renderConfirm(width,
			fmt.Sprintf("%d question%s unanswered", n, plural(n)),
			"Unanswered questions count as incorrect.",
			"[Y] Submit anyway", "[N] Keep answering")
	}

	switch s.state.View {
	case quiz.ViewStart:
		return s.renderStart(width)
	case quiz.ViewQuestion:
		return s.renderQuestion(width)
	case quiz.ViewList:
		return s.renderList(width, height)
	case quiz.ViewResults:
		return s.renderResults(width)
	case quiz.ViewReview:
		return s.renderReview(width, height)
	}
	return ""
}

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

func textWidth(width int) int {
	return max(20, min(width-8, 76))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// builtinTitles names the certification behind each built-in bank.
var builtinTitles = map[string]string{
	"cgoa": "Certified GitOps Associate",
}

// startTitle names the exam for a question source. Banks loaded from a file
// or URL get the neutral title.
func startTitle(source string) string {
	if name, ok := strings.CutPrefix(source, quiz.BuiltinPrefix); ok {
		if cert, ok := builtinTitles[name]; ok {
			return cert + " · Demo Exam"
		}
	}
	return "Demo Exam"
}

func (s *Screen) renderStart(width int) string {
	qs := s.state.Questions
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(width).Inherit(theme.Title).Render(startTitle(s.source)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("%d questions   %d topic areas   ~%d minutes   pass mark %d%%",
		len(qs), len(quiz.UniqueSections(qs)), quiz.EstimatedMinutes(len(qs)), quiz.PassThreshold)
	b.WriteString(centered(width).Foreground(theme.TextDim).Render(stats))
	b.WriteString("\n\n")

	var badges []string
	for _, sec := range quiz.UniqueSections(qs) {
		badges = append(badges, lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1).
			Render(sec))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(textWidth(width)).Align(lipgloss.Center).Render(strings.Join(badges, " "))))
	b.WriteString("\n\n")

	descriptions := []string{
		"Practice: see the explanation right after each answer",
		"Exam: answers are scored when you submit",
	}
	var opts []string
	for i, m := range modes {
		label := fmt.Sprintf("%-10s %s", strings.ToUpper(string(m)), descriptions[i])
		if i == s.modeCursor {
			opts = append(opts, theme.Selected.Render("▸ "+label))
		} else {
			opts = append(opts, theme.Unselected.Render("  "+label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(opts, "\n")))
	return b.String()
}

func (s *Screen) renderQuestion(width int) string {
	st := s.state
	q := st.CurrentQuestion()

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + q.Section)
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  answered %d", st.Current+1, len(st.Questions), len(st.Questions)-st.UnansweredCount()))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(components.ProgressBar{Ratio: st.Progress(), Width: max(width-4, 4)}.View())
	b.WriteString("\n\n")

	tw := textWidth(width)
	question := lipgloss.NewStyle().Width(tw).Foreground(theme.Text).Bold(true).Render(markdown.Render(q.Text))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, question))
	b.WriteString("\n\n")

	choices := lipgloss.NewStyle().Width(tw).Render(s.choices.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, choices))

	if st.ShowExplanation && st.CurrentAnswer() != quiz.Unanswered {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderExplanation(q, st.CurrentAnswer(), tw)))
	}
	return b.String()
}

func renderExplanation(q quiz.Question, answer, tw int) string {
	var verdict string
	if q.IsCorrect(answer) {
		verdict = theme.Correct.Render("✓ Correct")
	} else {
		verdict = theme.Incorrect.Render("✗ Incorrect") +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(
				fmt.Sprintf("  correct answer: %s) %s", components.ChoiceLabel(q.Correct), markdown.Inline(q.CorrectChoice())))
	}
	body := verdict
	if q.Explanation != "" {
		body += "\n\n" + markdown.Render(q.Explanation)
	}
	return lipgloss.NewStyle().
		Width(tw).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Text).
		Padding(0, 1).
		Render(body)
}

func (s *Screen) renderList(width, height int) string {
	st := s.state
	var lines []string
	for _, g := range quiz.GroupBySection(st.Questions) {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(g.Section))
		for _, i := range g.Indexes {
			mark := lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
			if st.Answers[i] != quiz.Unanswered {
				mark = lipgloss.NewStyle().Foreground(theme.Success).Render("●")
			}
			text := fmt.Sprintf("%2d. %s", i+1, truncate(markdown.Inline(st.Questions[i].Text), textWidth(width)-10))
			prefix := "  "
			style := theme.Unselected
			if i == s.listCursor {
				prefix = "▸ "
				style = theme.Selected
			}
			if i == st.Current {
				text += lipgloss.NewStyle().Foreground(theme.Accent).Render("  (current)")
			}
			lines = append(lines, prefix+mark+" "+style.Render(text))
		}
		lines = append(lines, "")
	}

	summary := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%d of %d answered", len(st.Questions)-st.UnansweredCount(), len(st.Questions)))
	lines = append(lines, summary)

	block := strings.Join(window(lines, s.listLine(), height-1), "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(textWidth(width)).Render(block))
}

// listLine returns the rendered line index of the list cursor.
func (s *Screen) listLine() int {
	line := 0
	for _, g := range quiz.GroupBySection(s.state.Questions) {
		line++
		for _, i := range g.Indexes {
			if i == s.listCursor {
				return line
			}
			line++
		}
		line++
	}
	return 0
}

// window returns at most n lines of lines keeping focus visible.
func window(lines []string, focus, n int) []string {
	if n <= 0 || len(lines) <= n {
		return lines
	}
	start := focus - n/2
	if start < 0 {
		start = 0
	}
	if start+n > len(lines) {
		start = len(lines) - n
	}
	return lines[start : start+n]
}

func truncate(s string, n int) string {
	if n <= 1 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r) + "…"
}

func (s *Screen) renderResults(width int) string {
	st := s.state
	score := st.Score()

	var b strings.Builder
	b.WriteString("\n")

	status := theme.Correct.Render("PASSED")
	if !score.Passed() {
		status = theme.Incorrect.Render("NOT PASSED")
	}
	b.WriteString(centered(width).Render(
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("%d%%", score.Percentage)) + "  " + status))
	b.WriteString("\n\n")

	counts := fmt.Sprintf("%s correct   %s incorrect   %s unanswered   %d min",
		theme.Correct.Render(fmt.Sprint(score.Correct)),
		theme.Incorrect.Render(fmt.Sprint(score.Incorrect)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(fmt.Sprint(score.Unanswered)),
		st.TimeTaken())
	b.WriteString(centered(width).Foreground(theme.Text).Render(counts))
	b.WriteString("\n\n")

	tw := textWidth(width)
	var rows []string
	for _, sec := range quiz.ScoreBySection(st.Questions, st.Answers) {
		label := fmt.Sprintf("%-22s %d/%d", truncate(sec.Section, 22), sec.Correct, sec.Total)
		bar := components.ProgressBar{
			Label:       label,
			Ratio:       float64(sec.Percentage) / 100,
			ShowPercent: true,
			Width:       tw,
			Mark:        float64(quiz.PassThreshold) / 100,
		}
		rows = append(rows, bar.View())
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))

	if s.attempt != nil {
		b.WriteString("\n\n")
		b.WriteString(centered(width).Foreground(theme.TextDim).Italic(true).Render(attemptNote(*s.attempt)))
	}
	return b.String()
}

func attemptNote(a analytics.Attempt) string {
	return fmt.Sprintf("Saved to your history (%s mode, %s)", a.Mode, a.EndedAt.Local().Format("Jan 02 15:04"))
}

func (s *Screen) renderReview(width, height int) string {
	st := s.state

	var tabs []string
	for i, f := range quiz.ReviewFilters {
		label := fmt.Sprintf("%d %s", i+1, f)
		if f == st.ReviewFilter {
			tabs = append(tabs, theme.ButtonActive.Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 2).Render(label))
		}
	}

	var b strings.Builder
	b.WriteString(centered(width).Render(strings.Join(tabs, " ")))
	b.WriteString("\n\n")

	items := st.ReviewItems()
	if len(items) == 0 {
		b.WriteString(centered(width).Foreground(theme.TextDim).Italic(true).Render("No questions match this filter."))
		return b.String()
	}

	tw := textWidth(width)
	var cards []string
	for _, it := range items[min(s.reviewScroll, len(items)-1):] {
		cards = append(cards, renderReviewItem(it, tw))
	}
	body := strings.Join(cards, "\n")
	if lines := strings.Split(body, "\n"); height > 3 && len(lines) > height-3 {
		body = strings.Join(lines[:height-3], "\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
	return b.String()
}

func renderReviewItem(it quiz.ReviewItem, tw int) string {
	var badge string
	switch it.Status {
	case quiz.StatusCorrect:
		badge = theme.Correct.Render("✓ correct")
	case quiz.StatusIncorrect:
		badge = theme.Incorrect.Render("✗ incorrect")
	default:
		badge = lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render("○ unanswered")
	}

	q := it.Question
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("Q%d · %s", it.Index+1, q.Section)))
	b.WriteString("  " + badge + "\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(markdown.Render(q.Text)))
	b.WriteString("\n")

	if it.Answer != quiz.Unanswered && it.Status == quiz.StatusIncorrect {
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Your answer: %s) ", components.ChoiceLabel(it.Answer))) +
			markdown.Inline(q.Choices[it.Answer]) + "\n")
	}
	b.WriteString(theme.Correct.Render(fmt.Sprintf("Correct answer: %s) ", components.ChoiceLabel(q.Correct))) +
		markdown.Inline(q.CorrectChoice()))
	if q.Explanation != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(markdown.Render(q.Explanation)))
	}

	return lipgloss.NewStyle().
		Width(tw).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(b.String())
}

func renderConfirm(width int, title, detail, yes, no string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render(detail))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.Success).Render(yes))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Primary).Render(no))
	return b.String()
}

func renderLoading(width int) string {
	return centered(width).Foreground(theme.TextDim).Render("\n\n\n  Loading questions...")
}

func renderError(width int, errMsg string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width).Foreground(theme.Error).Bold(true).Render("Could not load the exam questions"))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render(truncate(errMsg, textWidth(width))))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.Text).Render("Press R to reload or Esc to go back."))
	return b.String()
}
