package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/goldenkube/kubeprep/internal/logging"
	"github.com/goldenkube/kubeprep/internal/store"
)

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage disabled")
}
func (failingKV) Set(context.Context, string, string) error { return errors.New("storage disabled") }
func (failingKV) Remove(context.Context, string) error      { return errors.New("storage disabled") }

func newTestService(t *testing.T) (*Service, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	return NewService(kv, logging.Discard()), kv
}

func get(t *testing.T, kv store.KV, key string) string {
	t.Helper()
	v, _, err := kv.Get(context.Background(), key)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestInitWithoutSavedThemeFollowsSystem(t *testing.T) {
	ctx := context.Background()
	svc, kv := newTestService(t)

	if got := svc.Init(ctx, true); got != Dark {
		t.Errorf("Init(dark) = %s, want slate", got)
	}
	if get(t, kv, KeySystemPreference) != "true" {
		t.Error("system-preference should be set when no theme is saved")
	}
	if !svc.FollowsSystem(ctx) {
		t.Error("FollowsSystem = false")
	}
}

func TestInitUsesSavedTheme(t *testing.T) {
	ctx := context.Background()
	svc, kv := newTestService(t)
	_ = kv.Set(ctx, KeyPreference, "default")

	if got := svc.Init(ctx, true); got != Light {
		t.Errorf("Init = %s, want saved default", got)
	}
	if _, ok, _ := kv.Get(ctx, KeySystemPreference); ok {
		t.Error("system-preference should not be touched when a theme is saved")
	}
}

func TestInitIgnoresInvalidSavedTheme(t *testing.T) {
	ctx := context.Background()
	svc, kv := newTestService(t)
	_ = kv.Set(ctx, KeyPreference, "neon")

	if got := svc.Init(ctx, false); got != Light {
		t.Errorf("Init = %s, want system light", got)
	}
}

func TestSetPersistsAndStopsFollowing(t *testing.T) {
	ctx := context.Background()
	svc, kv := newTestService(t)
	svc.Init(ctx, false)

	var changes []Change
	svc.Subscribe(func(c Change) { changes = append(changes, c) })

	if !svc.Set(ctx, Dark, TriggerProgrammatic) {
		t.Fatal("Set(slate) rejected")
	}
	if get(t, kv, KeyPreference) != "slate" {
		t.Errorf("saved = %q", get(t, kv, KeyPreference))
	}
	if get(t, kv, KeySystemPreference) != "false" {
		t.Error("explicit choice should clear system-preference")
	}
	if len(changes) != 1 || changes[0].From != Light || changes[0].To != Dark || changes[0].Trigger != TriggerProgrammatic {
		t.Errorf("changes = %+v", changes)
	}

	// Setting the applied theme again saves but does not notify.
	svc.Set(ctx, Dark, TriggerProgrammatic)
	if len(changes) != 1 {
		t.Errorf("got %d changes, want 1", len(changes))
	}
}

func TestSetIgnoresUnknownTheme(t *testing.T) {
	ctx := context.Background()
	svc, kv := newTestService(t)
	svc.Init(ctx, false)

	if svc.Set(ctx, "neon", TriggerManual) {
		t.Error("unknown theme accepted")
	}
	if svc.Current() != Light {
		t.Errorf("Current = %s", svc.Current())
	}
	if get(t, kv, KeyPreference) != "" {
		t.Error("unknown theme should not be saved")
	}
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	svc.Init(ctx, false)

	var trig Trigger
	svc.Subscribe(func(c Change) { trig = c.Trigger })

	if got := svc.Toggle(ctx); got != Dark {
		t.Errorf("Toggle = %s, want slate", got)
	}
	if trig != TriggerManual {
		t.Errorf("trigger = %s, want manual", trig)
	}
	if got := svc.Toggle(ctx); got != Light {
		t.Errorf("Toggle = %s, want default", got)
	}
}

func TestToggleSystemPreference(t *testing.T) {
	ctx := context.Background()
	svc, kv := newTestService(t)
	_ = kv.Set(ctx, KeyPreference, "default")
	svc.Init(ctx, true)

	var changes []Change
	svc.Subscribe(func(c Change) { changes = append(changes, c) })

	if !svc.ToggleSystemPreference(ctx) {
		t.Fatal("flag should turn on")
	}
	if svc.Current() != Dark || get(t, kv, KeyPreference) != "slate" {
		t.Errorf("system theme not applied: current=%s saved=%s", svc.Current(), get(t, kv, KeyPreference))
	}
	if len(changes) != 1 || changes[0].Trigger != TriggerSystem {
		t.Errorf("changes = %+v", changes)
	}

	if svc.ToggleSystemPreference(ctx) {
		t.Error("flag should turn off")
	}
	if svc.Current() != Dark {
		t.Error("turning the flag off keeps the theme")
	}
}

func TestHandleSystemChange(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	svc.Init(ctx, false)

	svc.HandleSystemChange(ctx, true)
	if svc.Current() != Dark {
		t.Errorf("following system: Current = %s, want slate", svc.Current())
	}

	svc.Set(ctx, Light, TriggerManual)
	svc.HandleSystemChange(ctx, false)
	svc.HandleSystemChange(ctx, true)
	if svc.Current() != Light {
		t.Errorf("explicit choice overridden by system change: %s", svc.Current())
	}
	if !svc.SystemDark() {
		t.Error("SystemDark should track the latest system value")
	}
}

func TestStorageFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	svc := NewService(failingKV{}, logging.Discard())

	if got := svc.Init(ctx, true); got != Dark {
		t.Errorf("Init = %s, want system theme", got)
	}
	if !svc.Set(ctx, Light, TriggerManual) {
		t.Error("Set should still apply in memory")
	}
	if svc.Current() != Light {
		t.Errorf("Current = %s", svc.Current())
	}
	if svc.FollowsSystem(ctx) {
		t.Error("FollowsSystem should default to false")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Name
		ok   bool
	}{
		{"light", Light, true},
		{"Dark", Dark, true},
		{"slate", Dark, true},
		{" default ", Light, true},
		{"neon", "", false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Parse(%q) = %q, %v", tt.in, got, ok)
		}
	}
}
