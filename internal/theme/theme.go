// Package theme persists the light/dark choice and follows the terminal's
// background when the user has not picked a theme explicitly.
package theme

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/goldenkube/kubeprep/internal/store"
)

// Name identifies a colour scheme. The values match the documentation
// site's scheme names so stored preferences stay interchangeable.
type Name string

const (
	Light Name = "default"
	Dark  Name = "slate"
)

// Storage keys.
const (
	KeyPreference       = "theme-preference"
	KeySystemPreference = "system-preference"
)

// Valid reports whether n is a known theme.
func (n Name) Valid() bool {
	return n == Light || n == Dark
}

// IsDark reports whether n is the dark theme.
func (n Name) IsDark() bool { return n == Dark }

// Opposite returns the other theme.
func (n Name) Opposite() Name {
	if n == Dark {
		return Light
	}
	return Dark
}

// Label is the human name of the theme.
func (n Name) Label() string {
	if n == Dark {
		return "dark"
	}
	return "light"
}

// ForDark maps a dark/light flag to a theme.
func ForDark(dark bool) Name {
	if dark {
		return Dark
	}
	return Light
}

// Parse accepts both the scheme names and "light"/"dark".
func Parse(s string) (Name, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default", "light":
		return Light, true
	case "slate", "dark":
		return Dark, true
	}
	return "", false
}

// Trigger says what caused a theme change.
type Trigger string

const (
	TriggerManual       Trigger = "manual"
	TriggerSystem       Trigger = "system"
	TriggerProgrammatic Trigger = "programmatic"
)

// Change describes an applied theme change.
type Change struct {
	From       Name
	To         Name
	Trigger    Trigger
	SystemDark bool
}

// Listener is notified after every applied change.
type Listener func(Change)

// Service owns the current theme. Storage failures are logged and the
// in-memory state keeps working.
type Service struct {
	kv  store.KV
	log *log.Logger

	mu         sync.Mutex
	current    Name
	systemDark bool
	listeners  []Listener
}

// NewService creates a theme service on kv. Call Init before use.
func NewService(kv store.KV, logger *log.Logger) *Service {
	return &Service{kv: kv, log: logger, current: Light}
}

// Subscribe registers l for future changes.
func (s *Service) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Init applies the saved theme, or the system theme when nothing valid is
// saved. In the latter case the service starts following the system.
func (s *Service) Init(ctx context.Context, systemDark bool) Name {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.systemDark = systemDark
	if saved, ok := s.saved(ctx); ok {
		s.current = saved
		return s.current
	}
	s.current = ForDark(systemDark)
	s.setFollow(ctx, true)
	return s.current
}

// Current returns the applied theme.
func (s *Service) Current() Name {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SystemDark returns the last known system preference.
func (s *Service) SystemDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.systemDark
}

// FollowsSystem reports whether the system-preference flag is set.
func (s *Service) FollowsSystem(ctx context.Context) bool {
	v, err := store.GetBool(ctx, s.kv, KeySystemPreference)
	if err != nil {
		s.log.Warn("read system preference", "err", err)
		return false
	}
	return v
}

// Set applies an explicit choice, saves it and stops following the
// system. Unknown themes are ignored.
func (s *Service) Set(ctx context.Context, name Name, trigger Trigger) bool {
	if !name.Valid() {
		return false
	}
	s.mu.Lock()
	change, changed := s.apply(ctx, name, trigger)
	s.setFollow(ctx, false)
	s.mu.Unlock()

	if changed {
		s.notify(change)
	}
	return true
}

// Toggle flips between light and dark as a manual choice.
func (s *Service) Toggle(ctx context.Context) Name {
	next := s.Current().Opposite()
	s.Set(ctx, next, TriggerManual)
	return next
}

// ToggleSystemPreference flips the follow-system flag. Turning it on
// applies the system theme immediately. Returns the new flag.
func (s *Service) ToggleSystemPreference(ctx context.Context) bool {
	follow := !s.FollowsSystem(ctx)

	s.mu.Lock()
	s.setFollow(ctx, follow)
	var (
		change  Change
		changed bool
	)
	if follow {
		change, changed = s.apply(ctx, ForDark(s.systemDark), TriggerSystem)
	}
	s.mu.Unlock()

	if changed {
		s.notify(change)
	}
	return follow
}

// HandleSystemChange records a new system preference and applies it when
// the service follows the system.
func (s *Service) HandleSystemChange(ctx context.Context, dark bool) {
	follow := s.FollowsSystem(ctx)

	s.mu.Lock()
	s.systemDark = dark
	var (
		change  Change
		changed bool
	)
	if follow {
		change, changed = s.apply(ctx, ForDark(dark), TriggerSystem)
	}
	s.mu.Unlock()

	if changed {
		s.notify(change)
	}
}

// apply sets and saves name. Caller holds mu.
func (s *Service) apply(ctx context.Context, name Name, trigger Trigger) (Change, bool) {
	change := Change{From: s.current, To: name, Trigger: trigger, SystemDark: s.systemDark}
	s.current = name
	if err := s.kv.Set(ctx, KeyPreference, string(name)); err != nil {
		s.log.Warn("save theme preference", "theme", name, "err", err)
	}
	return change, change.From != change.To
}

func (s *Service) setFollow(ctx context.Context, follow bool) {
	if err := store.SetBool(ctx, s.kv, KeySystemPreference, follow); err != nil {
		s.log.Warn("save system preference", "err", err)
	}
}

func (s *Service) saved(ctx context.Context) (Name, bool) {
	raw, ok, err := s.kv.Get(ctx, KeyPreference)
	if err != nil {
		s.log.Warn("read theme preference", "err", err)
		return "", false
	}
	if !ok || !Name(raw).Valid() {
		return "", false
	}
	return Name(raw), true
}

func (s *Service) notify(c Change) {
	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range listeners {
		l(c)
	}
}
