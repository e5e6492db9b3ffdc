package themepanel

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenkube/kubeprep/internal/appearance"
	"github.com/goldenkube/kubeprep/internal/logging"
	"github.com/goldenkube/kubeprep/internal/router"
	"github.com/goldenkube/kubeprep/internal/screen"
	"github.com/goldenkube/kubeprep/internal/store"
	pref "github.com/goldenkube/kubeprep/internal/theme"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newPanel(t *testing.T) (*PanelScreen, *pref.Service, *appearance.Manager) {
	t.Helper()
	kv := store.NewMemoryKV()
	themes := pref.NewService(kv, logging.Discard())
	themes.Init(context.Background(), false)
	mgr := appearance.NewManager(kv, themes, logging.Discard())
	mgr.Load(context.Background())
	s := New(themes, mgr)
	s.now = func() time.Time { return time.Date(2026, 5, 1, 21, 0, 0, 0, time.UTC) }
	return s, themes, mgr
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func toasts(msgs []tea.Msg) []string {
	var out []string
	for _, m := range msgs {
		if t, ok := m.(screen.ToastMsg); ok {
			out = append(out, t.Text)
		}
	}
	return out
}

func moveTo(s *PanelScreen, row int) {
	for s.cursor < row {
		s.Update(specialKey(tea.KeyDown))
	}
}

func TestToggleTheme(t *testing.T) {
	s, themes, _ := newPanel(t)
	require.Equal(t, pref.Light, themes.Current())

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, pref.Dark, themes.Current())
	assert.Equal(t, []string{"Switched to dark mode"}, toasts(collect(cmd)))
}

func TestVariantCycling(t *testing.T) {
	s, _, mgr := newPanel(t)
	moveTo(s, rowVariant)

	s.Update(specialKey(tea.KeyRight))
	assert.Equal(t, appearance.VariantBlue, mgr.Settings().Variant)

	s.Update(specialKey(tea.KeyLeft))
	s.Update(specialKey(tea.KeyLeft))
	assert.Equal(t, appearance.VariantPurple, mgr.Settings().Variant, "left wraps around")
}

func TestTimeBasedAppliesEveningTheme(t *testing.T) {
	s, themes, mgr := newPanel(t)
	moveTo(s, rowTimeBased)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	msgs := collect(cmd)
	assert.True(t, mgr.Settings().TimeBased)
	assert.Equal(t, pref.Dark, themes.Current())
	assert.Equal(t,
		[]string{"Time-based theme switching enabled. Auto-switched to dark mode (evening)"},
		toasts(msgs))
	assert.Contains(t, msgs, tea.Msg(screen.SettingsChangedMsg{}))
}

func TestCustomColor(t *testing.T) {
	s, _, mgr := newPanel(t)
	moveTo(s, rowPrimary)
	require.True(t, s.CapturingInput())

	for _, r := range "#ZZ12" {
		s.Update(keyPress(r))
	}
	assert.Equal(t, "#12", s.colors[appearance.RolePrimary].Value(), "non-hex runes are dropped")

	s.Update(specialKey(tea.KeyEnter))
	assert.Contains(t, s.View(100, 40), "#1a2b3c")
	assert.Empty(t, mgr.Settings().Colors)

	s.colors[appearance.RolePrimary].SetValue("#AABBCC")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "#aabbcc", mgr.Settings().Colors[appearance.RolePrimary])
	assert.Contains(t, collect(cmd), tea.Msg(screen.SettingsChangedMsg{}))
}

func TestResetButton(t *testing.T) {
	s, _, mgr := newPanel(t)
	ctx := context.Background()
	mgr.SetVariant(ctx, appearance.VariantGreen)
	mgr.SetAutoSwitch(ctx, true)
	require.NoError(t, mgr.SetCustomColor(ctx, appearance.RoleAccent, "#112233"))

	moveTo(s, rowReset)
	require.True(t, s.reset.Active)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd, "first Enter only arms the button")
	assert.True(t, s.reset.Armed())
	assert.Equal(t, appearance.VariantGreen, mgr.Settings().Variant)
	assert.Contains(t, s.View(100, 40), "Press Enter again")

	// Moving away disarms.
	s.Update(specialKey(tea.KeyUp))
	s.Update(specialKey(tea.KeyDown))
	require.False(t, s.reset.Armed())

	s.Update(specialKey(tea.KeyEnter))
	_, cmd = s.Update(specialKey(tea.KeyEnter))

	set := mgr.Settings()
	assert.Equal(t, appearance.VariantDefault, set.Variant)
	assert.False(t, set.AutoSwitch)
	assert.Empty(t, set.Colors)
	assert.Equal(t, []string{"Theme reset to default"}, toasts(collect(cmd)))
}

func TestFollowSystem(t *testing.T) {
	s, themes, _ := newPanel(t)
	themes.Set(context.Background(), pref.Dark, pref.TriggerManual)
	moveTo(s, rowFollowSystem)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.True(t, themes.FollowsSystem(context.Background()))
	assert.Equal(t, pref.Light, themes.Current(), "system is light")
	assert.Equal(t, []string{"Following the system theme"}, toasts(collect(cmd)))
	assert.True(t, strings.Contains(s.View(100, 40), "● on"))
}

func TestEscPops(t *testing.T) {
	s, _, _ := newPanel(t)
	moveTo(s, rowAccent)
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
