package history

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/goldenkube/kubeprep/internal/analytics"
	"github.com/goldenkube/kubeprep/internal/router"
	"github.com/goldenkube/kubeprep/internal/screen"
	"github.com/goldenkube/kubeprep/internal/ui/components"
	"github.com/goldenkube/kubeprep/internal/ui/layout"
	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

type historyLoadedMsg struct {
	Attempts []analytics.Attempt
	Stats    analytics.Stats
	Err      error
}

// HistoryScreen displays past exam attempts and theme usage statistics.
type HistoryScreen struct {
	tracker  *analytics.Tracker
	attempts []analytics.Attempt
	stats    analytics.Stats
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(tracker *analytics.Tracker) *HistoryScreen {
	return &HistoryScreen{
		tracker:  tracker,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	tracker := s.tracker
	return func() tea.Msg {
		ctx := context.Background()

		stats, err := tracker.Stats(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		attempts, err := tracker.Attempts(ctx)
		if err != nil {
			return historyLoadedMsg{Stats: stats, Err: err}
		}
		// Newest first.
		sort.SliceStable(attempts, func(i, j int) bool {
			return attempts[i].EndedAt.After(attempts[j].EndedAt)
		})
		return historyLoadedMsg{Attempts: attempts, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderStats(s.stats)))
	b.WriteString("\n\n")

	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, heading.Render("EXAM ATTEMPTS")))
	b.WriteString("\n")

	if len(s.attempts) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("No attempts yet. Take the demo exam!")))
		return b.String()
	}

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		status := "fail"
		if a.Passed {
			status = "pass"
		}
		line := fmt.Sprintf("%s%s  %-8s  %3d%%  %s  %d min",
			prefix, a.EndedAt.Local().Format("Jan 02, 2006 15:04"), a.Mode, a.Percentage, status, a.Minutes)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %d correct · %d incorrect · %d unanswered of %d",
				a.Correct, a.Incorrect, a.Unanswered, a.Total)
			color := theme.Error
			if a.Passed {
				color = theme.Success
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(color).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderStats(st analytics.Stats) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	row := func(name, v string) string {
		return label.Render(fmt.Sprintf("%-18s", name)) + value.Render(v)
	}
	rows := []string{
		row("Sessions", fmt.Sprint(st.TotalSessions)),
		row("Average session", formatDuration(st.AverageSessionDuration)),
		row("Most used theme", st.MostUsedTheme),
		row("Changes/session", fmt.Sprintf("%.1f", st.ThemeChangeFrequency)),
		row("System light/dark", fmt.Sprintf("%d/%d", st.SystemPreferenceUsage.Light, st.SystemPreferenceUsage.Dark)),
	}

	names := make([]string, 0, len(st.ThemeUsage))
	for name := range st.ThemeUsage {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rows = append(rows, row("  "+name, fmt.Sprint(st.ThemeUsage[name])))
	}

	return components.Card("THEME STATS", strings.Join(rows, "\n"))
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return d.Round(time.Second).String()
}
