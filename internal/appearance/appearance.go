// Package appearance holds the advanced theme settings: colour variants,
// custom colours, time-based light/dark switching and variant auto-cycling.
package appearance

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/goldenkube/kubeprep/internal/store"
	"github.com/goldenkube/kubeprep/internal/theme"
)

// Storage keys.
const (
	KeyVariant      = "theme-variant"
	KeyTimeBased    = "time-based-theme"
	KeyCustomColors = "custom-theme-colors"
	KeyAutoSwitch   = "auto-theme-switch"
)

const (
	// TimeCheckInterval is how often time-based switching re-evaluates.
	TimeCheckInterval = time.Minute

	// AutoSwitchInterval is how often auto-cycling moves to the next variant.
	AutoSwitchInterval = 30 * time.Second
)

// Variant is a colour accent applied on top of the light/dark theme.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantBlue    Variant = "blue"
	VariantGreen   Variant = "green"
	VariantPurple  Variant = "purple"
)

// Variants is the auto-cycle order.
var Variants = []Variant{VariantDefault, VariantBlue, VariantGreen, VariantPurple}

// ParseVariant maps a name to a Variant.
func ParseVariant(s string) (Variant, bool) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Variants {
		if v == known {
			return v, true
		}
	}
	return "", false
}

// Next returns the variant after v in Variants, wrapping around.
func (v Variant) Next() Variant {
	for i, known := range Variants {
		if known == v {
			return Variants[(i+1)%len(Variants)]
		}
	}
	return VariantDefault
}

// Role is a customisable colour slot.
type Role string

const (
	RolePrimary Role = "primary"
	RoleAccent  Role = "accent"
)

// Roles lists the customisable colour slots.
var Roles = []Role{RolePrimary, RoleAccent}

var (
	ErrUnknownRole  = errors.New("unknown colour role")
	ErrInvalidColor = errors.New("colour must be #rrggbb")
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ParseRole maps a name to a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Settings is a snapshot of the stored appearance settings.
type Settings struct {
	Variant    Variant
	TimeBased  bool
	AutoSwitch bool
	Colors     map[Role]string
}

// IsDarkTime reports whether the hour of now falls in the dark window
// (18:00 to 06:00).
func IsDarkTime(now time.Time) bool {
	h := now.Hour()
	return h >= 18 || h < 6
}

// TimeBasedTheme returns the theme for the time of day.
func TimeBasedTheme(now time.Time) theme.Name {
	return theme.ForDark(IsDarkTime(now))
}

// Manager owns the appearance settings. Storage failures are logged and the
// in-memory settings stay authoritative.
type Manager struct {
	kv     store.KV
	themes *theme.Service
	log    *log.Logger

	mu       sync.Mutex
	settings Settings
}

// NewManager creates a Manager. Call Load to read stored settings.
func NewManager(kv store.KV, themes *theme.Service, logger *log.Logger) *Manager {
	return &Manager{
		kv:       kv,
		themes:   themes,
		log:      logger,
		settings: defaults(),
	}
}

func defaults() Settings {
	return Settings{Variant: VariantDefault, Colors: map[Role]string{}}
}

// Load reads the stored settings. Invalid values fall back to defaults.
func (m *Manager) Load(ctx context.Context) Settings {
	s := defaults()

	raw, ok, err := m.kv.Get(ctx, KeyVariant)
	if err != nil {
		m.log.Warn("read theme variant", "err", err)
	} else if ok {
		if v, valid := ParseVariant(raw); valid {
			s.Variant = v
		}
	}

	if s.TimeBased, err = store.GetBool(ctx, m.kv, KeyTimeBased); err != nil {
		m.log.Warn("read time-based flag", "err", err)
	}
	if s.AutoSwitch, err = store.GetBool(ctx, m.kv, KeyAutoSwitch); err != nil {
		m.log.Warn("read auto-switch flag", "err", err)
	}

	var colors map[string]string
	if _, err := store.GetJSON(ctx, m.kv, KeyCustomColors, &colors); err != nil {
		m.log.Warn("read custom colours", "err", err)
	}
	for k, v := range colors {
		if r, err := ParseRole(k); err == nil && hexColor.MatchString(v) {
			s.Colors[r] = strings.ToLower(v)
		}
	}

	m.mu.Lock()
	m.settings = s
	m.mu.Unlock()
	return s.clone()
}

// Settings returns a copy of the current settings.
func (m *Manager) Settings() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings.clone()
}

// SetVariant applies and saves v. Unknown variants are ignored.
func (m *Manager) SetVariant(ctx context.Context, v Variant) bool {
	v, ok := ParseVariant(string(v))
	if !ok {
		return false
	}
	m.mu.Lock()
	m.settings.Variant = v
	m.mu.Unlock()
	m.save(ctx, KeyVariant, string(v))
	return true
}

// CycleVariant moves to the next variant and returns it.
func (m *Manager) CycleVariant(ctx context.Context) Variant {
	next := m.Settings().Variant.Next()
	m.SetVariant(ctx, next)
	return next
}

// ToggleTimeBased flips time-based switching and returns a notification.
// Enabling it applies the time-of-day theme at once.
func (m *Manager) ToggleTimeBased(ctx context.Context, now time.Time) string {
	m.mu.Lock()
	m.settings.TimeBased = !m.settings.TimeBased
	on := m.settings.TimeBased
	m.mu.Unlock()
	m.saveBool(ctx, KeyTimeBased, on)

	if !on {
		return "Time-based theme switching disabled"
	}
	if msg, switched := m.CheckTime(ctx, now); switched {
		return "Time-based theme switching enabled. " + msg
	}
	return "Time-based theme switching enabled"
}

// CheckTime switches to the time-of-day theme when time-based switching is
// on and the current theme differs. It returns the notification and whether
// a switch happened.
func (m *Manager) CheckTime(ctx context.Context, now time.Time) (string, bool) {
	if !m.Settings().TimeBased {
		return "", false
	}
	target := TimeBasedTheme(now)
	if m.themes.Current() == target {
		return "", false
	}
	m.themes.Set(ctx, target, theme.TriggerProgrammatic)
	if target.IsDark() {
		return "Auto-switched to dark mode (evening)", true
	}
	return "Auto-switched to light mode (morning)", true
}

// SetAutoSwitch turns variant auto-cycling on or off and returns a
// notification.
func (m *Manager) SetAutoSwitch(ctx context.Context, on bool) string {
	m.mu.Lock()
	m.settings.AutoSwitch = on
	m.mu.Unlock()
	m.saveBool(ctx, KeyAutoSwitch, on)
	if on {
		return "Auto-variant switching enabled"
	}
	return "Auto-variant switching disabled"
}

// SetCustomColor stores a #rrggbb colour for role.
func (m *Manager) SetCustomColor(ctx context.Context, role Role, hex string) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	hex = strings.TrimSpace(hex)
	if !hexColor.MatchString(hex) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	m.mu.Lock()
	m.settings.Colors[role] = strings.ToLower(hex)
	colors := m.settings.clone().Colors
	m.mu.Unlock()

	if err := store.SetJSON(ctx, m.kv, KeyCustomColors, colors); err != nil {
		m.log.Warn("save custom colours", "err", err)
	}
	return nil
}

// Reset restores every setting to its default and returns a notification.
func (m *Manager) Reset(ctx context.Context) string {
	m.mu.Lock()
	m.settings = defaults()
	m.mu.Unlock()

	m.save(ctx, KeyVariant, string(VariantDefault))
	m.saveBool(ctx, KeyTimeBased, false)
	m.saveBool(ctx, KeyAutoSwitch, false)
	if err := store.SetJSON(ctx, m.kv, KeyCustomColors, map[Role]string{}); err != nil {
		m.log.Warn("save custom colours", "err", err)
	}
	return "Theme reset to default"
}

func (m *Manager) save(ctx context.Context, key, value string) {
	if err := m.kv.Set(ctx, key, value); err != nil {
		m.log.Warn("save appearance setting", "key", key, "err", err)
	}
}

func (m *Manager) saveBool(ctx context.Context, key string, v bool) {
	if err := store.SetBool(ctx, m.kv, key, v); err != nil {
		m.log.Warn("save appearance setting", "key", key, "err", err)
	}
}

func (s Settings) clone() Settings {
	c := s
	c.Colors = make(map[Role]string, len(s.Colors))
	for k, v := range s.Colors {
		c.Colors[k] = v
	}
	return c
}
