package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/goldenkube/kubeprep/internal/analytics"
	"github.com/goldenkube/kubeprep/internal/appearance"
	quiz "github.com/goldenkube/kubeprep/internal/exam"
	"github.com/goldenkube/kubeprep/internal/router"
	"github.com/goldenkube/kubeprep/internal/screen"
	"github.com/goldenkube/kubeprep/internal/screens/calculator"
	examscreen "github.com/goldenkube/kubeprep/internal/screens/exam"
	"github.com/goldenkube/kubeprep/internal/screens/history"
	"github.com/goldenkube/kubeprep/internal/screens/themepanel"
	pref "github.com/goldenkube/kubeprep/internal/theme"
	"github.com/goldenkube/kubeprep/internal/ui/components"
	"github.com/goldenkube/kubeprep/internal/ui/layout"
)

// Deps are the services the home screen hands to the screens it opens.
type Deps struct {
	Loader     *quiz.Loader
	Source     string
	Tracker    *analytics.Tracker
	Themes     *pref.Service
	Appearance *appearance.Manager
	Log        *log.Logger
}

// dashboard is the data shown in the stats bar.
type dashboard struct {
	theme    string
	attempts int
	best     int
	hasBest  bool
	passed   bool
}

type dashboardMsg dashboard

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps      Deps
	menu      components.Menu
	stats     dashboard
	readiness Readiness
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	push := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}

	items := []components.MenuItem{
		{Label: "DEMO EXAM", Key: "e", Action: func() tea.Cmd {
			return push(examscreen.New(deps.Loader, deps.Source, deps.Tracker, deps.Log))
		}},
		{Label: "COST CALCULATOR", Key: "c", Action: func() tea.Cmd {
			return push(calculator.New())
		}},
		{Label: "APPEARANCE", Key: "a", Action: func() tea.Cmd {
			return push(themepanel.New(deps.Themes, deps.Appearance))
		}},
		{Label: "HISTORY", Key: "h", Action: func() tea.Cmd {
			return push(history.New(deps.Tracker))
		}},
		{Label: "QUIT", Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

// KeyHints implements screen.KeyHintProvider.
func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "E C A H", Description: "Jump"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.refresh()
}

// refresh reloads the stats bar from the tracker.
func (h *HomeScreen) refresh() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		d := dashboard{theme: deps.Themes.Current().Label()}
		attempts, err := deps.Tracker.Attempts(context.Background())
		if err != nil {
			deps.Log.Warn("load exam attempts", "err", err)
			return dashboardMsg(d)
		}
		d.attempts = len(attempts)
		if best, ok := analytics.BestAttempt(attempts); ok {
			d.best = best.Percentage
			d.hasBest = true
		}
		if n := len(attempts); n > 0 {
			d.passed = attempts[n-1].Passed
		}
		return dashboardMsg(d)
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		h.stats = dashboard(msg)
		h.readiness = readinessFor(h.stats)
		return h, nil
	case router.PoppedMsg:
		return h, h.refresh()
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || width < 100

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.readiness, cw))
	}

	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	if termHeight < 26 {
		sections = append(sections, renderArcadeMenuCompact(h.menu.Labels(), h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Labels(), h.menu.Selected, cw))
	}

	content := strings.Join(sections, "\n\n")

	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
