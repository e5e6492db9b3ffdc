// Package themepanel is the advanced theme settings screen.
package themepanel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/goldenkube/kubeprep/internal/appearance"
	"github.com/goldenkube/kubeprep/internal/router"
	"github.com/goldenkube/kubeprep/internal/screen"
	pref "github.com/goldenkube/kubeprep/internal/theme"
	"github.com/goldenkube/kubeprep/internal/ui/components"
	"github.com/goldenkube/kubeprep/internal/ui/layout"
	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

const (
	rowTheme = iota
	rowFollowSystem
	rowVariant
	rowTimeBased
	rowAutoSwitch
	rowPrimary
	rowAccent
	rowReset
	rowCount
)

// PanelScreen edits the theme and appearance settings.
type PanelScreen struct {
	themes   *pref.Service
	settings *appearance.Manager
	now      func() time.Time

	cursor int
	colors map[appearance.Role]*components.TextInput
	reset  components.Button
	errMsg string
}

var _ screen.Screen = (*PanelScreen)(nil)
var _ screen.KeyHintProvider = (*PanelScreen)(nil)
var _ screen.InputCapturer = (*PanelScreen)(nil)

// New creates the panel.
func New(themes *pref.Service, settings *appearance.Manager) *PanelScreen {
	s := &PanelScreen{
		themes:   themes,
		settings: settings,
		now:      time.Now,
		colors:   make(map[appearance.Role]*components.TextInput),
	}
	current := settings.Settings().Colors
	for _, role := range appearance.Roles {
		in := components.NewTextInput("", "#rrggbb", components.InputHex, 7)
		in.SetValue(current[role])
		s.colors[role] = &in
	}
	s.reset = components.NewButton("Reset to Default", s.resetAll).WithConfirm("Press Enter again to reset everything")
	return s
}

func (s *PanelScreen) Init() tea.Cmd { return nil }

func (s *PanelScreen) Title() string { return "Appearance" }

// role returns the colour role edited on the cursor row, if any.
func (s *PanelScreen) role() (appearance.Role, bool) {
	switch s.cursor {
	case rowPrimary:
		return appearance.RolePrimary, true
	case rowAccent:
		return appearance.RoleAccent, true
	}
	return "", false
}

// CapturingInput reports whether a colour field has focus.
func (s *PanelScreen) CapturingInput() bool {
	_, ok := s.role()
	return ok
}

func (s *PanelScreen) KeyHints() []layout.KeyHint {
	if s.CapturingInput() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply colour"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Change"},
		{Key: "←→", Description: "Variant"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PanelScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if role, ok := s.role(); ok {
			var cmd tea.Cmd
			*s.colors[role], cmd = s.colors[role].Update(msg)
			return s, cmd
		}
		return s, nil
	}

	key := kmsg.String()
	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "shift+tab":
		return s, s.move(-1)
	case "down", "tab":
		return s, s.move(1)
	}

	if role, ok := s.role(); ok {
		if key == "enter" {
			return s, s.applyColor(role)
		}
		var cmd tea.Cmd
		*s.colors[role], cmd = s.colors[role].Update(msg)
		s.colors[role].ClearSubmit()
		s.errMsg = ""
		return s, cmd
	}

	if s.cursor == rowReset {
		var cmd tea.Cmd
		s.reset, cmd = s.reset.Update(msg)
		return s, cmd
	}

	switch key {
	case "k":
		return s, s.move(-1)
	case "j":
		return s, s.move(1)
	case "enter", "space":
		return s, s.activate(1)
	case "right", "l":
		if s.cursor == rowVariant {
			return s, s.activate(1)
		}
	case "left", "h":
		if s.cursor == rowVariant {
			return s, s.activate(-1)
		}
	}
	return s, nil
}

func (s *PanelScreen) move(delta int) tea.Cmd {
	next := s.cursor + delta
	if next < 0 || next >= rowCount {
		return nil
	}
	if role, ok := s.role(); ok {
		s.colors[role].Blur()
	}
	s.cursor = next
	s.reset.SetActive(s.cursor == rowReset)
	if role, ok := s.role(); ok {
		return s.colors[role].Focus()
	}
	return nil
}

// activate changes the setting on the cursor row. dir only matters for the
// variant row.
func (s *PanelScreen) activate(dir int) tea.Cmd {
	ctx := context.Background()
	switch s.cursor {
	case rowTheme:
		name := s.themes.Toggle(ctx)
		return screen.Toast("Switched to " + name.Label() + " mode")
	case rowFollowSystem:
		if s.themes.ToggleSystemPreference(ctx) {
			return tea.Batch(screen.Toast("Following the system theme"), screen.SettingsChanged())
		}
		return tea.Batch(screen.Toast("Stopped following the system theme"), screen.SettingsChanged())
	case rowVariant:
		v := s.settings.Settings().Variant
		if dir < 0 {
			v = previous(v)
		} else {
			v = v.Next()
		}
		s.settings.SetVariant(ctx, v)
		return screen.SettingsChanged()
	case rowTimeBased:
		msg := s.settings.ToggleTimeBased(ctx, s.now())
		return tea.Batch(screen.Toast(msg), screen.SettingsChanged())
	case rowAutoSwitch:
		msg := s.settings.SetAutoSwitch(ctx, !s.settings.Settings().AutoSwitch)
		return tea.Batch(screen.Toast(msg), screen.SettingsChanged())
	}
	return nil
}

func previous(v appearance.Variant) appearance.Variant {
	for i, known := range appearance.Variants {
		if known == v {
			return appearance.Variants[(i+len(appearance.Variants)-1)%len(appearance.Variants)]
		}
	}
	return appearance.VariantDefault
}

func (s *PanelScreen) applyColor(role appearance.Role) tea.Cmd {
	in := s.colors[role]
	err := s.settings.SetCustomColor(context.Background(), role, in.Value())
	in.Submit(err == nil)
	if err != nil {
		if errors.Is(err, appearance.ErrInvalidColor) {
			s.errMsg = "Colours must look like #1a2b3c"
		} else {
			s.errMsg = err.Error()
		}
		return nil
	}
	s.errMsg = ""
	in.SetValue(s.settings.Settings().Colors[role])
	return screen.SettingsChanged()
}

func (s *PanelScreen) resetAll() tea.Cmd {
	msg := s.settings.Reset(context.Background())
	for _, in := range s.colors {
		in.SetValue("")
		in.ClearSubmit()
	}
	s.errMsg = ""
	return tea.Batch(screen.Toast(msg), screen.SettingsChanged())
}

func (s *PanelScreen) View(width, height int) string {
	set := s.settings.Settings()
	ctx := context.Background()

	on := func(b bool) string {
		if b {
			return lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("● on")
		}
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("○ off")
	}

	var variants []string
	for _, v := range appearance.Variants {
		if v == set.Variant {
			variants = append(variants, theme.Selected.Render("["+string(v)+"]"))
		} else {
			variants = append(variants, lipgloss.NewStyle().Foreground(theme.TextDim).Render(string(v)))
		}
	}

	values := [rowCount]string{
		rowTheme:        lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.themes.Current().Label()),
		rowFollowSystem: on(s.themes.FollowsSystem(ctx)),
		rowVariant:      strings.Join(variants, " "),
		rowTimeBased:    on(set.TimeBased),
		rowAutoSwitch:   on(set.AutoSwitch),
		rowPrimary:      s.colors[appearance.RolePrimary].View() + swatch(set.Colors[appearance.RolePrimary]),
		rowAccent:       s.colors[appearance.RoleAccent].View() + swatch(set.Colors[appearance.RoleAccent]),
	}
	labels := [rowCount]string{
		rowTheme:        "Theme",
		rowFollowSystem: "Follow system",
		rowVariant:      "Variant",
		rowTimeBased:    "Time-based switching",
		rowAutoSwitch:   "Auto-variant switching",
		rowPrimary:      "Primary colour",
		rowAccent:       "Accent colour",
	}
	help := [rowCount]string{
		rowTimeBased:  "Dark from 18:00 to 06:00, light otherwise",
		rowAutoSwitch: fmt.Sprintf("Cycle variants every %s", appearance.AutoSwitchInterval),
	}

	var lines []string
	for i := 0; i < rowCount; i++ {
		if i == rowReset {
			lines = append(lines, "", s.reset.View())
			continue
		}
		prefix := "  "
		style := theme.Unselected
		if i == s.cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		lines = append(lines, prefix+style.Render(fmt.Sprintf("%-24s", labels[i]))+values[i])
		if help[i] != "" {
			lines = append(lines, "    "+theme.Hint.Render(help[i]))
		}
	}
	if s.errMsg != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func swatch(hex string) string {
	if hex == "" {
		return ""
	}
	return " " + lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■■")
}
