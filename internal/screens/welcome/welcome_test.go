package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/goldenkube/kubeprep/internal/router"
	"github.com/goldenkube/kubeprep/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newSplash() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

// advance feeds n frames and returns the last command.
func advance(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(frameMsg{})
	}
	return cmd
}

func isReplace(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(router.ReplaceScreenMsg)
	return ok
}

func TestBootLogReveal(t *testing.T) {
	w, _ := newSplash()

	view := w.View(100, 30)
	if !strings.Contains(view, "loading question bank") {
		t.Error("first step should be running at once")
	}
	if strings.Contains(view, "restoring theme") {
		t.Error("later steps should not show yet")
	}

	advance(w, stepFrames)
	view = w.View(100, 30)
	if n := strings.Count(view, "✓"); n != 1 {
		t.Errorf("ticked steps = %d, want 1", n)
	}
	if strings.Contains(view, "certification prep") {
		t.Error("banner should wait for the boot log")
	}

	advance(w, bootFrames()-stepFrames)
	view = w.View(100, 30)
	if n := strings.Count(view, "✓"); n != len(bootSteps) {
		t.Errorf("ticked steps = %d, want %d", n, len(bootSteps))
	}
	if strings.Contains(view, "…") {
		t.Error("no step should still be running")
	}
	if !strings.Contains(view, "certification prep") || !strings.Contains(view, "press any key") {
		t.Error("banner and hint should show once booted")
	}
}

func TestKeyPressSkips(t *testing.T) {
	w, calls := newSplash()
	advance(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if !isReplace(cmd) {
		t.Fatal("a key press should replace the splash")
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second key press should do nothing")
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestAutoContinue(t *testing.T) {
	w, calls := newSplash()

	advance(w, lastFrame()-1)
	if *calls != 0 || w.done {
		t.Fatal("splash left before the hold time ran out")
	}
	if cmd := advance(w, 1); !isReplace(cmd) {
		t.Fatal("splash should move on by itself")
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestFramesStopAfterTransition(t *testing.T) {
	w, _ := newSplash()
	w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if cmd := advance(w, 1); cmd != nil {
		t.Error("no further frames expected once the home screen is shown")
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newSplash()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}

func TestCompactBannerOnNarrowTerminal(t *testing.T) {
	if !strings.Contains(RenderBanner(40), "K U B E P R E P") {
		t.Error("narrow terminals should get the compact banner")
	}
	if strings.Contains(RenderBanner(100), "K U B E P R E P") {
		t.Error("wide terminals should get the block banner")
	}
}
