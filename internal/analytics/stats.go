package analytics

import (
	"context"
	"time"
)

// Stats summarises the theme usage log.
type Stats struct {
	TotalSessions          int
	AverageSessionDuration time.Duration
	ThemeUsage             map[string]int
	SystemPreferenceUsage  PreferenceUsage
	MostUsedTheme          string
	ThemeChangeFrequency   float64
}

// PreferenceUsage counts sessions by the system preference at start.
type PreferenceUsage struct {
	Light int
	Dark  int
}

// Stats computes usage statistics. With no sessions the averages are zero
// and the most used theme is "unknown".
func (t *Tracker) Stats(ctx context.Context) (Stats, error) {
	d, err := t.Raw(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(d), nil
}

// Summarize computes Stats for d.
func Summarize(d Data) Stats {
	st := Stats{
		TotalSessions: len(d.Sessions),
		ThemeUsage:    make(map[string]int),
		MostUsedTheme: "unknown",
	}

	var (
		totalMS int64
		changes int
		order   []string
	)
	count := func(name string) {
		if _, seen := st.ThemeUsage[name]; !seen {
			order = append(order, name)
		}
		st.ThemeUsage[name]++
	}

	for _, s := range d.Sessions {
		totalMS += s.DurationMS
		if s.SystemPreference {
			st.SystemPreferenceUsage.Dark++
		} else {
			st.SystemPreferenceUsage.Light++
		}
		count(s.InitialTheme)
		for _, c := range s.ThemeChanges {
			count(c.To)
			changes++
		}
	}

	if n := len(d.Sessions); n > 0 {
		st.AverageSessionDuration = time.Duration(totalMS/int64(n)) * time.Millisecond
		st.ThemeChangeFrequency = float64(changes) / float64(n)
	}

	// Ties go to the theme seen first.
	top := 0
	for _, name := range order {
		if st.ThemeUsage[name] > top {
			top = st.ThemeUsage[name]
			st.MostUsedTheme = name
		}
	}
	return st
}
