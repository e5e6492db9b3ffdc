package router

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/goldenkube/kubeprep/internal/screen"
)

type (
	// PushScreenMsg opens Screen on top of the current one.
	PushScreenMsg struct{ Screen screen.Screen }

	// ReplaceScreenMsg swaps the current screen for Screen.
	ReplaceScreenMsg struct{ Screen screen.Screen }

	// PopScreenMsg closes the current screen.
	PopScreenMsg struct{}

	// PopToRootMsg closes every screen above the bottom one.
	PopToRootMsg struct{}

	// PoppedMsg tells a screen it is active again after the ones above it
	// were closed.
	PoppedMsg struct{}
)

// Router keeps the screens as a stack. The bottom screen is never removed.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

func (r *Router) Pop() tea.Cmd { return r.truncate(len(r.stack) - 1) }

func (r *Router) PopToRoot() tea.Cmd { return r.truncate(1) }

// truncate shrinks the stack to n screens (at least one) and notifies the
// uncovered screen. Nothing happens when the stack is already that small.
func (r *Router) truncate(n int) tea.Cmd {
	n = max(n, 1)
	if len(r.stack) <= n {
		return nil
	}
	clear(r.stack[n:])
	r.stack = r.stack[:n]
	return func() tea.Msg { return PoppedMsg{} }
}

func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		r.stack = append(r.stack, s)
	} else {
		r.stack[len(r.stack)-1] = s
	}
	return s.Init()
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Breadcrumb joins the titles of the open screens, bottom first, skipping
// untitled ones.
func (r *Router) Breadcrumb(sep string) string {
	titles := make([]string, 0, len(r.stack))
	for _, s := range r.stack {
		if t := s.Title(); t != "" {
			titles = append(titles, t)
		}
	}
	return strings.Join(titles, sep)
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}
