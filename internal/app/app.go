package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/goldenkube/kubeprep/internal/analytics"
	"github.com/goldenkube/kubeprep/internal/appearance"
	quiz "github.com/goldenkube/kubeprep/internal/exam"
	"github.com/goldenkube/kubeprep/internal/router"
	"github.com/goldenkube/kubeprep/internal/screen"
	examscreen "github.com/goldenkube/kubeprep/internal/screens/exam"
	"github.com/goldenkube/kubeprep/internal/screens/home"
	"github.com/goldenkube/kubeprep/internal/screens/welcome"
	pref "github.com/goldenkube/kubeprep/internal/theme"
	"github.com/goldenkube/kubeprep/internal/ui/layout"
	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

const (
	// toastDuration is how long a notification stays on screen.
	toastDuration = 3 * time.Second

	// backgroundTimeout bounds the wait for the terminal's background colour.
	backgroundTimeout = 500 * time.Millisecond
)

// Options holds the services the TUI runs with.
type Options struct {
	Loader     *quiz.Loader
	Source     string
	Themes     *pref.Service
	Appearance *appearance.Manager
	Tracker    *analytics.Tracker
	Log        *log.Logger

	// ExamMode opens the exam directly in the given mode, skipping the
	// splash screen.
	ExamMode quiz.Mode
}

type (
	backgroundTimeoutMsg struct{}
	timeCheckMsg         time.Time
	autoSwitchMsg        struct{ gen int }
	toastExpiredMsg      struct{ gen int }
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
	now    func() time.Time

	themeReady bool
	palette    string

	toast    string
	toastGen int
	autoGen  int
}

// newAppModel creates the model with the splash screen leading to home, or
// the exam on top of home when ExamMode is set.
func newAppModel(opts Options) AppModel {
	deps := home.Deps{
		Loader:     opts.Loader,
		Source:     opts.Source,
		Tracker:    opts.Tracker,
		Themes:     opts.Themes,
		Appearance: opts.Appearance,
		Log:        opts.Log,
	}

	var initial screen.Screen
	if opts.ExamMode != "" {
		initial = home.New(deps)
	} else {
		initial = welcome.New(func() screen.Screen { return home.New(deps) })
	}

	m := AppModel{
		opts:   opts,
		router: router.New(initial),
		now:    time.Now,
	}
	m.refreshPalette()
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.RequestBackgroundColor,
		tea.Tick(backgroundTimeout, func(time.Time) tea.Msg { return backgroundTimeoutMsg{} }),
		m.router.Active().Init(),
	}
	if m.opts.ExamMode != "" {
		exam := examscreen.New(m.opts.Loader, m.opts.Source, m.opts.Tracker, m.opts.Log).StartIn(m.opts.ExamMode)
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: exam} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.refreshPalette()
	return m, cmd
}

func (m AppModel) update(msg tea.Msg) (AppModel, tea.Cmd) {
	ctx := context.Background()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.BackgroundColorMsg:
		if !m.themeReady {
			return m.startTheme(msg.IsDark())
		}
		m.opts.Themes.HandleSystemChange(ctx, msg.IsDark())
		return m, nil

	case backgroundTimeoutMsg:
		if !m.themeReady {
			m.opts.Log.Debug("no background colour reported, assuming dark")
			return m.startTheme(true)
		}
		return m, nil

	case timeCheckMsg:
		var cmd tea.Cmd
		if text, switched := m.opts.Appearance.CheckTime(ctx, time.Time(msg)); switched {
			cmd = m.showToast(text)
		}
		return m, tea.Batch(cmd, timeCheck())

	case autoSwitchMsg:
		if msg.gen != m.autoGen || !m.opts.Appearance.Settings().AutoSwitch {
			return m, nil
		}
		v := m.opts.Appearance.CycleVariant(ctx)
		m.opts.Log.Debug("auto-switched variant", "variant", v)
		return m, m.autoSwitch()

	case toastExpiredMsg:
		if msg.gen == m.toastGen {
			m.toast = ""
		}
		return m, nil

	case screen.ToastMsg:
		return m, m.showToast(msg.Text)

	case screen.SettingsChangedMsg:
		m.autoGen++
		return m, m.autoSwitch()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			return m, m.toggleTheme()
		case "T":
			if c, ok := m.router.Active().(screen.InputCapturer); !ok || !c.CapturingInput() {
				return m, m.toggleTheme()
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m *AppModel) toggleTheme() tea.Cmd {
	name := m.opts.Themes.Toggle(context.Background())
	return m.showToast("Switched to " + name.Label() + " mode")
}

// startTheme applies the stored or system theme and opens the analytics
// session, then starts the appearance timers.
func (m AppModel) startTheme(systemDark bool) (AppModel, tea.Cmd) {
	ctx := context.Background()
	m.themeReady = true

	initial := m.opts.Themes.Init(ctx, systemDark)
	if _, err := m.opts.Tracker.StartSession(ctx, systemDark, initial); err != nil {
		m.opts.Log.Warn("start analytics session", "err", err)
	}
	m.opts.Log.Info("theme initialised", "theme", initial, "system_dark", systemDark)

	var toast tea.Cmd
	if text, switched := m.opts.Appearance.CheckTime(ctx, m.now()); switched {
		toast = m.showToast(text)
	}
	m.autoGen++
	return m, tea.Batch(toast, timeCheck(), m.autoSwitch())
}

func timeCheck() tea.Cmd {
	return tea.Tick(appearance.TimeCheckInterval, func(t time.Time) tea.Msg { return timeCheckMsg(t) })
}

// autoSwitch schedules the next variant change for the current generation.
func (m AppModel) autoSwitch() tea.Cmd {
	if !m.opts.Appearance.Settings().AutoSwitch {
		return nil
	}
	gen := m.autoGen
	return tea.Tick(appearance.AutoSwitchInterval, func(time.Time) tea.Msg { return autoSwitchMsg{gen: gen} })
}

func (m *AppModel) showToast(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	m.toast = text
	m.toastGen++
	gen := m.toastGen
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{gen: gen} })
}

// refreshPalette rebuilds the UI styles when the theme, variant or custom
// colours changed.
func (m *AppModel) refreshPalette() {
	dark := true
	if m.themeReady {
		dark = m.opts.Themes.Current().IsDark()
	}
	set := m.opts.Appearance.Settings()
	primary := set.Colors[appearance.RolePrimary]
	accent := set.Colors[appearance.RoleAccent]

	sig := fmt.Sprintf("%t|%s|%s|%s", dark, set.Variant, primary, accent)
	if sig == m.palette {
		return
	}
	m.palette = sig
	theme.Apply(theme.Build(dark, string(set.Variant), primary, accent))
}

// status is the header's right-hand text.
func (m AppModel) status() string {
	if !m.themeReady {
		return ""
	}
	set := m.opts.Appearance.Settings()
	s := "◐ " + m.opts.Themes.Current().Label()
	if set.Variant != appearance.VariantDefault {
		s += " · " + string(set.Variant)
	}
	if set.TimeBased {
		s += " · auto"
	}
	return s + "  "
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame: header, active screen, toast and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	hints = append(hints,
		layout.KeyHint{Key: "Ctrl+T", Description: "Theme"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)

	chrome := layout.Chrome{
		Title:  m.router.Breadcrumb(" › "),
		Status: m.status(),
		Hints:  hints,
		Toast:  m.toast,
	}
	return chrome.Render(m.width, m.height, m.router.View)
}

// Run starts the Bubble Tea program and closes the analytics session when
// it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()

	if endErr := opts.Tracker.EndSession(context.Background()); endErr != nil {
		opts.Log.Warn("end analytics session", "err", endErr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
