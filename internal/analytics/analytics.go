// Package analytics keeps a local usage log: theme sessions and changes,
// and submitted exam attempts. Nothing leaves the machine.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/goldenkube/kubeprep/internal/store"
	"github.com/goldenkube/kubeprep/internal/theme"
)

const (
	// Key is the storage key of the theme usage log.
	Key = "theme-analytics"

	// Version is written into new logs.
	Version = "1.0"

	// MaxSessions bounds the number of retained sessions.
	MaxSessions = 30
)

// Data is the stored theme usage log.
type Data struct {
	Version          string    `json:"version"`
	Created          time.Time `json:"created"`
	Sessions         []Session `json:"sessions"`
	CurrentSessionID string    `json:"currentSessionId,omitempty"`
}

// Session is one run of the application.
type Session struct {
	ID               string        `json:"id"`
	StartTime        time.Time     `json:"startTime"`
	EndTime          *time.Time    `json:"endTime,omitempty"`
	SystemPreference bool          `json:"systemPreference"`
	InitialTheme     string        `json:"initialTheme"`
	ThemeChanges     []ThemeChange `json:"themeChanges"`
	DurationMS       int64         `json:"duration"`
}

// ThemeChange is one recorded switch.
type ThemeChange struct {
	Timestamp              time.Time `json:"timestamp"`
	From                   string    `json:"from"`
	To                     string    `json:"to"`
	Trigger                string    `json:"trigger"`
	SystemPreferenceAtTime bool      `json:"systemPreferenceAtTime"`
}

// Tracker reads and writes the usage logs in a KV store.
type Tracker struct {
	kv    store.KV
	log   *log.Logger
	now   func() time.Time
	newID func() string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDs overrides uuid generation.
func WithIDs(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

// NewTracker creates a Tracker on kv.
func NewTracker(kv store.KV, logger *log.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		kv:    kv,
		log:   logger,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Raw returns the stored log, or a fresh empty one.
func (t *Tracker) Raw(ctx context.Context) (Data, error) {
	var d Data
	ok, err := store.GetJSON(ctx, t.kv, Key, &d)
	if err != nil {
		return Data{}, fmt.Errorf("load theme analytics: %w", err)
	}
	if !ok {
		return Data{Version: Version, Created: t.now().UTC(), Sessions: []Session{}}, nil
	}
	if d.Sessions == nil {
		d.Sessions = []Session{}
	}
	return d, nil
}

func (t *Tracker) save(ctx context.Context, d Data) error {
	if err := store.SetJSON(ctx, t.kv, Key, d); err != nil {
		return fmt.Errorf("save theme analytics: %w", err)
	}
	return nil
}

// StartSession opens a new session and makes it current. Only the last
// MaxSessions sessions are kept.
func (t *Tracker) StartSession(ctx context.Context, systemDark bool, initial theme.Name) (string, error) {
	d, err := t.Raw(ctx)
	if err != nil {
		return "", err
	}

	s := Session{
		ID:               t.newID(),
		StartTime:        t.now().UTC(),
		SystemPreference: systemDark,
		InitialTheme:     string(initial),
		ThemeChanges:     []ThemeChange{},
	}
	d.Sessions = append(d.Sessions, s)
	if len(d.Sessions) > MaxSessions {
		d.Sessions = d.Sessions[len(d.Sessions)-MaxSessions:]
	}
	d.CurrentSessionID = s.ID

	if err := t.save(ctx, d); err != nil {
		return "", err
	}
	return s.ID, nil
}

// TrackChange appends a change to the current session. It does nothing
// when no session is open.
func (t *Tracker) TrackChange(ctx context.Context, c theme.Change) error {
	d, err := t.Raw(ctx)
	if err != nil {
		return err
	}
	i := d.current()
	if i < 0 {
		return nil
	}
	d.Sessions[i].ThemeChanges = append(d.Sessions[i].ThemeChanges, ThemeChange{
		Timestamp:              t.now().UTC(),
		From:                   string(c.From),
		To:                     string(c.To),
		Trigger:                string(c.Trigger),
		SystemPreferenceAtTime: c.SystemDark,
	})
	return t.save(ctx, d)
}

// EndSession stamps the end time and duration on the current session and
// clears it.
func (t *Tracker) EndSession(ctx context.Context) error {
	d, err := t.Raw(ctx)
	if err != nil {
		return err
	}
	i := d.current()
	if i < 0 {
		return nil
	}
	end := t.now().UTC()
	s := &d.Sessions[i]
	s.EndTime = &end
	s.DurationMS = end.Sub(s.StartTime).Milliseconds()
	d.CurrentSessionID = ""
	return t.save(ctx, d)
}

// Clear removes the theme usage log.
func (t *Tracker) Clear(ctx context.Context) error {
	if err := t.kv.Remove(ctx, Key); err != nil {
		return fmt.Errorf("clear theme analytics: %w", err)
	}
	return nil
}

// Observe returns a theme listener that records every change. Failures are
// logged, never returned.
func (t *Tracker) Observe(ctx context.Context) theme.Listener {
	return func(c theme.Change) {
		if err := t.TrackChange(ctx, c); err != nil {
			t.log.Warn("track theme change", "err", err)
		}
	}
}

// current returns the index of the open session, or -1. A session that
// was pruned is no longer current.
func (d Data) current() int {
	if d.CurrentSessionID == "" {
		return -1
	}
	for i := range d.Sessions {
		if d.Sessions[i].ID == d.CurrentSessionID {
			return i
		}
	}
	return -1
}
