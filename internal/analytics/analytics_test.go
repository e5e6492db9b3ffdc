package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenkube/kubeprep/internal/exam"
	"github.com/goldenkube/kubeprep/internal/logging"
	"github.com/goldenkube/kubeprep/internal/store"
	"github.com/goldenkube/kubeprep/internal/theme"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTracker(t *testing.T) (*Tracker, *fakeClock, *store.MemoryKV) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	kv := store.NewMemoryKV()
	return NewTracker(kv, logging.Discard(), WithClock(clock.Now), WithIDs(sequentialIDs())), clock, kv
}

func TestRawEmpty(t *testing.T) {
	tr, _, _ := newTracker(t)
	d, err := tr.Raw(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Version, d.Version)
	assert.Empty(t, d.Sessions)
	assert.Empty(t, d.CurrentSessionID)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	tr, clock, _ := newTracker(t)

	id, err := tr.StartSession(ctx, true, theme.Dark)
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)

	clock.Advance(time.Minute)
	require.NoError(t, tr.TrackChange(ctx, theme.Change{From: theme.Dark, To: theme.Light, Trigger: theme.TriggerManual, SystemDark: true}))

	clock.Advance(2 * time.Minute)
	require.NoError(t, tr.EndSession(ctx))

	d, err := tr.Raw(ctx)
	require.NoError(t, err)
	require.Len(t, d.Sessions, 1)

	s := d.Sessions[0]
	assert.Equal(t, "slate", s.InitialTheme)
	assert.True(t, s.SystemPreference)
	require.Len(t, s.ThemeChanges, 1, "changes must land in the stored session")
	assert.Equal(t, "default", s.ThemeChanges[0].To)
	assert.Equal(t, "manual", s.ThemeChanges[0].Trigger)
	require.NotNil(t, s.EndTime)
	assert.Equal(t, int64(3*time.Minute/time.Millisecond), s.DurationMS)
	assert.Empty(t, d.CurrentSessionID)
}

func TestTrackChangeWithoutSessionIsNoop(t *testing.T) {
	ctx := context.Background()
	tr, _, kv := newTracker(t)

	require.NoError(t, tr.TrackChange(ctx, theme.Change{From: theme.Light, To: theme.Dark}))
	_, ok, _ := kv.Get(ctx, Key)
	assert.False(t, ok, "nothing should be written without a session")

	require.NoError(t, tr.EndSession(ctx))
}

func TestSessionsCapped(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTracker(t)

	for i := 0; i < MaxSessions+5; i++ {
		_, err := tr.StartSession(ctx, false, theme.Light)
		require.NoError(t, err)
		require.NoError(t, tr.EndSession(ctx))
	}

	d, err := tr.Raw(ctx)
	require.NoError(t, err)
	assert.Len(t, d.Sessions, MaxSessions)
	assert.Equal(t, "id-6", d.Sessions[0].ID, "oldest sessions are dropped first")
}

func TestObserveRecordsThemeChanges(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTracker(t)
	svc := theme.NewService(store.NewMemoryKV(), logging.Discard())
	svc.Init(ctx, false)
	svc.Subscribe(tr.Observe(ctx))

	_, err := tr.StartSession(ctx, false, svc.Current())
	require.NoError(t, err)

	svc.Toggle(ctx)
	svc.Set(ctx, theme.Light, theme.TriggerProgrammatic)

	d, err := tr.Raw(ctx)
	require.NoError(t, err)
	require.Len(t, d.Sessions[0].ThemeChanges, 2)
	assert.Equal(t, "programmatic", d.Sessions[0].ThemeChanges[1].Trigger)
}

func TestStats(t *testing.T) {
	d := Data{Sessions: []Session{
		{InitialTheme: "default", SystemPreference: false, DurationMS: 60000, ThemeChanges: []ThemeChange{
			{To: "slate"}, {To: "default"},
		}},
		{InitialTheme: "slate", SystemPreference: true, DurationMS: 120000, ThemeChanges: []ThemeChange{
			{To: "default"},
		}},
	}}

	st := Summarize(d)
	assert.Equal(t, 2, st.TotalSessions)
	assert.Equal(t, 90*time.Second, st.AverageSessionDuration)
	assert.Equal(t, map[string]int{"default": 3, "slate": 2}, st.ThemeUsage)
	assert.Equal(t, PreferenceUsage{Light: 1, Dark: 1}, st.SystemPreferenceUsage)
	assert.Equal(t, "default", st.MostUsedTheme)
	assert.InDelta(t, 1.5, st.ThemeChangeFrequency, 1e-9)
}

func TestStatsEmpty(t *testing.T) {
	st := Summarize(Data{})
	assert.Zero(t, st.TotalSessions)
	assert.Zero(t, st.AverageSessionDuration)
	assert.Zero(t, st.ThemeChangeFrequency)
	assert.Equal(t, "unknown", st.MostUsedTheme)
}

func TestStatsTieGoesToFirstSeen(t *testing.T) {
	d := Data{Sessions: []Session{
		{InitialTheme: "slate", ThemeChanges: []ThemeChange{{To: "default"}}},
	}}
	assert.Equal(t, "slate", Summarize(d).MostUsedTheme)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	tr, _, kv := newTracker(t)
	_, err := tr.StartSession(ctx, false, theme.Light)
	require.NoError(t, err)

	require.NoError(t, tr.Clear(ctx))
	_, ok, _ := kv.Get(ctx, Key)
	assert.False(t, ok)
}

func TestRecordAttempt(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTracker(t)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := exam.State{
		Questions: []exam.Question{
			{Text: "a", Choices: []string{"x", "y"}, Correct: 0, Section: "s"},
			{Text: "b", Choices: []string{"x", "y"}, Correct: 1, Section: "s"},
		},
		Answers:   []int{0, exam.Unanswered},
		Mode:      exam.ModeExam,
		StartedAt: start,
		EndedAt:   start.Add(4 * time.Minute),
	}

	a, err := tr.RecordAttempt(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "exam", a.Mode)
	assert.Equal(t, 1, a.Correct)
	assert.Equal(t, 1, a.Unanswered)
	assert.Equal(t, 50, a.Percentage)
	assert.False(t, a.Passed)
	assert.Equal(t, 4, a.Minutes)

	attempts, err := tr.Attempts(ctx)
	require.NoError(t, err)
	assert.Len(t, attempts, 1)
}

func TestAttemptsCapped(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTracker(t)
	s := exam.State{
		Questions: []exam.Question{{Text: "a", Choices: []string{"x", "y"}, Section: "s"}},
		Answers:   []int{0},
	}
	for i := 0; i < MaxAttempts+3; i++ {
		_, err := tr.RecordAttempt(ctx, s)
		require.NoError(t, err)
	}
	attempts, err := tr.Attempts(ctx)
	require.NoError(t, err)
	assert.Len(t, attempts, MaxAttempts)

	require.NoError(t, tr.ClearAttempts(ctx))
	attempts, err = tr.Attempts(ctx)
	require.NoError(t, err)
	assert.Empty(t, attempts)
}

func TestBestAttempt(t *testing.T) {
	_, ok := BestAttempt(nil)
	assert.False(t, ok)

	best, ok := BestAttempt([]Attempt{{ID: "a", Percentage: 80}, {ID: "b", Percentage: 60}, {ID: "c", Percentage: 80}})
	require.True(t, ok)
	assert.Equal(t, "c", best.ID)
}
