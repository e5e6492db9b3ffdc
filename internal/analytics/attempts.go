package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/goldenkube/kubeprep/internal/exam"
	"github.com/goldenkube/kubeprep/internal/store"
)

// AttemptsKey is the storage key of the exam attempt log.
const AttemptsKey = "exam-analytics"

// MaxAttempts bounds the number of retained attempts.
const MaxAttempts = 30

// Attempt is one submitted exam.
type Attempt struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	Correct    int       `json:"correct"`
	Incorrect  int       `json:"incorrect"`
	Unanswered int       `json:"unanswered"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	Passed     bool      `json:"passed"`
	StartedAt  time.Time `json:"startedAt"`
	EndedAt    time.Time `json:"endedAt"`
	Minutes    int       `json:"minutes"`
}

// RecordAttempt appends the result of a finished exam.
func (t *Tracker) RecordAttempt(ctx context.Context, s exam.State) (Attempt, error) {
	score := s.Score()
	a := Attempt{
		ID:         t.newID(),
		Mode:       string(s.Mode),
		Correct:    score.Correct,
		Incorrect:  score.Incorrect,
		Unanswered: score.Unanswered,
		Total:      score.Total,
		Percentage: score.Percentage,
		Passed:     score.Passed(),
		StartedAt:  s.StartedAt.UTC(),
		EndedAt:    s.EndedAt.UTC(),
		Minutes:    s.TimeTaken(),
	}

	attempts, err := t.Attempts(ctx)
	if err != nil {
		return Attempt{}, err
	}
	attempts = append(attempts, a)
	if len(attempts) > MaxAttempts {
		attempts = attempts[len(attempts)-MaxAttempts:]
	}
	if err := store.SetJSON(ctx, t.kv, AttemptsKey, attempts); err != nil {
		return Attempt{}, fmt.Errorf("save exam attempt: %w", err)
	}
	return a, nil
}

// Attempts returns the stored attempts, oldest first.
func (t *Tracker) Attempts(ctx context.Context) ([]Attempt, error) {
	var attempts []Attempt
	if _, err := store.GetJSON(ctx, t.kv, AttemptsKey, &attempts); err != nil {
		return nil, fmt.Errorf("load exam attempts: %w", err)
	}
	return attempts, nil
}

// BestAttempt returns the highest-scoring attempt, preferring the most
// recent on ties.
func BestAttempt(attempts []Attempt) (Attempt, bool) {
	if len(attempts) == 0 {
		return Attempt{}, false
	}
	best := attempts[0]
	for _, a := range attempts[1:] {
		if a.Percentage >= best.Percentage {
			best = a
		}
	}
	return best, true
}

// ClearAttempts removes the exam attempt log.
func (t *Tracker) ClearAttempts(ctx context.Context) error {
	if err := t.kv.Remove(ctx, AttemptsKey); err != nil {
		return fmt.Errorf("clear exam attempts: %w", err)
	}
	return nil
}
