package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/goldenkube/kubeprep/internal/router"
	"github.com/goldenkube/kubeprep/internal/screen"
	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

const (
	frameInterval = 120 * time.Millisecond
	stepFrames    = 3  // frames each boot step stays pending
	holdFrames    = 20 // frames the finished splash stays up before moving on
)

// bootSteps are printed one after another, kubectl style.
var bootSteps = []string{
	"loading question bank",
	"restoring theme",
	"reading exam history",
	"warming up the cluster",
}

var wheelFrames = []string{"◐", "◓", "◑", "◒"}

type frameMsg struct{}

// WelcomeScreen plays a short boot log, shows the banner and then hands over
// to the next screen, either on a key press or once the hold time runs out.
type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.done {
			return w, nil
		}
		w.frame++
		if w.frame >= lastFrame() {
			return w, w.finish()
		}
		return w, nextFrame()

	case tea.KeyPressMsg:
		return w, w.finish()
	}
	return w, nil
}

// bootFrames is the frame at which every boot step has completed.
func bootFrames() int { return len(bootSteps) * stepFrames }

func lastFrame() int { return bootFrames() + holdFrames }

func (w *WelcomeScreen) booted() bool { return w.frame >= bootFrames() }

// finish replaces the splash with the next screen. Later calls are no-ops.
func (w *WelcomeScreen) finish() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	s := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}

func (w *WelcomeScreen) View(width, height int) string {
	parts := []string{w.bootLog()}
	if w.booted() {
		parts = append(parts,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("Cloud native certification prep, in your terminal"),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(parts, "\n"))
}

// bootLog renders the finished steps with a tick and the running one with
// a turning wheel.
func (w *WelcomeScreen) bootLog() string {
	ok := lipgloss.NewStyle().Foreground(theme.Success)
	busy := lipgloss.NewStyle().Foreground(theme.Accent)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	prompt := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	lines := []string{prompt.Render("$ kubeprep start")}
	for i, step := range bootSteps {
		start := i * stepFrames
		switch {
		case w.frame >= start+stepFrames:
			lines = append(lines, ok.Render("✓")+" "+step)
		case w.frame >= start:
			lines = append(lines, busy.Render(wheelFrames[w.frame%len(wheelFrames)])+" "+dim.Render(step+"…"))
		}
	}
	return lipgloss.NewStyle().Width(34).Render(strings.Join(lines, "\n"))
}
