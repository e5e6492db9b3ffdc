package exam

import (
	"testing"
	"time"
)

func sampleQuestions() []Question {
	return []Question{
		{Text: "Q1", Choices: []string{"a", "b", "c", "d"}, Correct: 0, Section: "Principles"},
		{Text: "Q2", Choices: []string{"a", "b", "c", "d"}, Correct: 1, Section: "Principles"},
		{Text: "Q3", Choices: []string{"a", "b", "c", "d"}, Correct: 2, Section: "Tooling"},
		{Text: "Q4", Choices: []string{"a", "b", "c", "d"}, Correct: 3, Section: "Patterns"},
	}
}

func started(t *testing.T, mode Mode) State {
	t.Helper()
	s, err := NewState(sampleQuestions())
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	s = Reduce(s, Start{Mode: mode, At: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)})
	if s.View != ViewQuestion {
		t.Fatalf("view after start = %v, want question", s.View)
	}
	return s
}

func TestNewStateEmpty(t *testing.T) {
	if _, err := NewState(nil); err != ErrNoQuestions {
		t.Errorf("NewState(nil) error = %v, want ErrNoQuestions", err)
	}
}

func TestNewStateBlankAnswers(t *testing.T) {
	s, err := NewState(sampleQuestions())
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Answers) != 4 {
		t.Fatalf("len(Answers) = %d, want 4", len(s.Answers))
	}
	if s.UnansweredCount() != 4 {
		t.Errorf("UnansweredCount = %d, want 4", s.UnansweredCount())
	}
	if s.View != ViewStart {
		t.Errorf("View = %v, want start", s.View)
	}
}

func TestStartRejectsUnknownMode(t *testing.T) {
	s, _ := NewState(sampleQuestions())
	next := Reduce(s, Start{Mode: "speedrun"})
	if next.View != ViewStart {
		t.Errorf("View = %v, want start", next.View)
	}
}

func TestSelectPracticeShowsExplanation(t *testing.T) {
	s := started(t, ModePractice)
	s = Reduce(s, Select{Choice: 2})
	if s.CurrentAnswer() != 2 {
		t.Errorf("answer = %d, want 2", s.CurrentAnswer())
	}
	if !s.ShowExplanation {
		t.Error("practice mode should show the explanation after answering")
	}
}

func TestSelectExamHidesExplanation(t *testing.T) {
	s := started(t, ModeExam)
	s = Reduce(s, Select{Choice: 1})
	if s.ShowExplanation {
		t.Error("exam mode should not show the explanation")
	}
}

func TestSelectOutOfRangeIgnored(t *testing.T) {
	s := started(t, ModeExam)
	for _, c := range []int{-1, 4, 99} {
		next := Reduce(s, Select{Choice: c})
		if next.CurrentAnswer() != Unanswered {
			t.Errorf("Select(%d) recorded %d", c, next.CurrentAnswer())
		}
	}
}

func TestSelectDoesNotMutatePreviousState(t *testing.T) {
	s := started(t, ModeExam)
	next := Reduce(s, Select{Choice: 3})
	if s.Answers[0] != Unanswered {
		t.Errorf("previous state answer changed to %d", s.Answers[0])
	}
	if next.Answers[0] != 3 {
		t.Errorf("next state answer = %d, want 3", next.Answers[0])
	}
}

func TestNavigationBounds(t *testing.T) {
	s := started(t, ModeExam)

	s = Reduce(s, Previous{})
	if s.Current != 0 {
		t.Errorf("Previous at first question moved to %d", s.Current)
	}

	for i := 0; i < 10; i++ {
		s = Reduce(s, Next{})
	}
	if s.Current != 3 {
		t.Errorf("Current = %d after many Next, want 3", s.Current)
	}
	if !s.IsLast() {
		t.Error("IsLast should be true on the last question")
	}

	s = Reduce(s, Previous{})
	if s.Current != 2 {
		t.Errorf("Current = %d after Previous, want 2", s.Current)
	}
}

func TestNextClearsExplanation(t *testing.T) {
	s := started(t, ModePractice)
	s = Reduce(s, Select{Choice: 0})
	s = Reduce(s, Next{})
	if s.ShowExplanation {
		t.Error("explanation should be hidden on the next question")
	}
}

func TestListAndGoTo(t *testing.T) {
	s := started(t, ModeExam)
	s = Reduce(s, ShowList{})
	if s.View != ViewList {
		t.Fatalf("View = %v, want list", s.View)
	}

	// Out of range jumps are ignored.
	same := Reduce(s, GoTo{Index: 7})
	if same.View != ViewList || same.Current != 0 {
		t.Errorf("GoTo(7) changed state: view=%v current=%d", same.View, same.Current)
	}

	s = Reduce(s, GoTo{Index: 2})
	if s.View != ViewQuestion || s.Current != 2 {
		t.Errorf("GoTo(2): view=%v current=%d", s.View, s.Current)
	}

	s = Reduce(s, ShowList{})
	s = Reduce(s, BackToQuestion{})
	if s.View != ViewQuestion || s.Current != 2 {
		t.Errorf("BackToQuestion: view=%v current=%d", s.View, s.Current)
	}
}

func TestSubmitAllAnsweredFinishes(t *testing.T) {
	s := started(t, ModeExam)
	for i := 0; i < 4; i++ {
		s = Reduce(s, Select{Choice: i})
		s = Reduce(s, Next{})
	}
	end := s.StartedAt.Add(5 * time.Minute)
	s = Reduce(s, Submit{At: end})
	if s.View != ViewResults {
		t.Fatalf("View = %v, want results", s.View)
	}
	if s.ConfirmingSubmit {
		t.Error("no prompt expected when every question is answered")
	}
	if !s.EndedAt.Equal(end) {
		t.Errorf("EndedAt = %v, want %v", s.EndedAt, end)
	}
	if got := s.Score().Percentage; got != 100 {
		t.Errorf("Percentage = %d, want 100", got)
	}
}

func TestSubmitWithUnansweredPrompts(t *testing.T) {
	s := started(t, ModeExam)
	s = Reduce(s, Select{Choice: 0})
	s = Reduce(s, Submit{At: time.Now()})
	if !s.ConfirmingSubmit {
		t.Fatal("expected the unanswered prompt")
	}
	if s.View != ViewQuestion {
		t.Errorf("View = %v, want question while prompting", s.View)
	}

	// Only confirm and cancel are accepted while prompting.
	blocked := Reduce(s, Next{})
	if blocked.Current != s.Current {
		t.Error("Next should be ignored while the prompt is open")
	}

	cancelled := Reduce(s, CancelSubmit{})
	if cancelled.ConfirmingSubmit || cancelled.View != ViewQuestion {
		t.Errorf("CancelSubmit: confirming=%v view=%v", cancelled.ConfirmingSubmit, cancelled.View)
	}

	confirmed := Reduce(s, ConfirmSubmit{At: s.StartedAt.Add(time.Minute)})
	if confirmed.View != ViewResults || confirmed.ConfirmingSubmit {
		t.Errorf("ConfirmSubmit: confirming=%v view=%v", confirmed.ConfirmingSubmit, confirmed.View)
	}
	if confirmed.Score().Unanswered != 3 {
		t.Errorf("Unanswered = %d, want 3", confirmed.Score().Unanswered)
	}
}

func TestSubmitFromList(t *testing.T) {
	s := started(t, ModeExam)
	s = Reduce(s, ShowList{})
	s = Reduce(s, Submit{At: time.Now()})
	if !s.ConfirmingSubmit {
		t.Error("Submit from the list should prompt when answers are missing")
	}
}

func TestReviewFlow(t *testing.T) {
	s := started(t, ModeExam)
	s = Reduce(s, Select{Choice: 0})
	s = Reduce(s, Submit{At: time.Now()})
	s = Reduce(s, ConfirmSubmit{At: time.Now()})

	s = Reduce(s, Review{})
	if s.View != ViewReview || s.ReviewFilter != FilterAll {
		t.Fatalf("Review: view=%v filter=%v", s.View, s.ReviewFilter)
	}

	s = Reduce(s, Filter{Filter: FilterUnanswered})
	if got := len(s.ReviewItems()); got != 3 {
		t.Errorf("unanswered items = %d, want 3", got)
	}

	same := Reduce(s, Filter{Filter: "bogus"})
	if same.ReviewFilter != FilterUnanswered {
		t.Errorf("invalid filter changed state to %v", same.ReviewFilter)
	}

	s = Reduce(s, BackToResults{})
	if s.View != ViewResults {
		t.Errorf("View = %v, want results", s.View)
	}
}

func TestRetakeResets(t *testing.T) {
	s := started(t, ModePractice)
	s = Reduce(s, Select{Choice: 0})
	s = Reduce(s, Next{})
	s = Reduce(s, Select{Choice: 1})
	s = Reduce(s, Submit{At: time.Now()})
	s = Reduce(s, ConfirmSubmit{At: time.Now()})

	retakeAt := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	s = Reduce(s, Retake{At: retakeAt})

	if s.View != ViewQuestion || s.Current != 0 {
		t.Errorf("Retake: view=%v current=%d", s.View, s.Current)
	}
	if s.UnansweredCount() != len(s.Questions) {
		t.Errorf("UnansweredCount = %d, want %d", s.UnansweredCount(), len(s.Questions))
	}
	if !s.StartedAt.Equal(retakeAt) {
		t.Errorf("StartedAt = %v, want %v", s.StartedAt, retakeAt)
	}
	if !s.EndedAt.IsZero() {
		t.Errorf("EndedAt = %v, want zero", s.EndedAt)
	}
	if s.Mode != ModePractice {
		t.Errorf("Mode = %v, want practice kept", s.Mode)
	}
}

func TestRetakeFromReview(t *testing.T) {
	s := started(t, ModeExam)
	s = Reduce(s, Submit{At: time.Now()})
	s = Reduce(s, ConfirmSubmit{At: time.Now()})
	s = Reduce(s, Review{})
	s = Reduce(s, Retake{At: time.Now()})
	if s.View != ViewQuestion {
		t.Errorf("View = %v, want question", s.View)
	}
}

func TestBackToStart(t *testing.T) {
	s := started(t, ModeExam)
	if next := Reduce(s, BackToStart{}); next.View != ViewQuestion {
		t.Errorf("BackToStart during the exam moved to %v", next.View)
	}
	s = Reduce(s, Submit{At: time.Now()})
	s = Reduce(s, ConfirmSubmit{At: time.Now()})
	s = Reduce(s, BackToStart{})
	if s.View != ViewStart {
		t.Errorf("View = %v, want start", s.View)
	}
}

func TestActionsIgnoredOutsideTheirView(t *testing.T) {
	s, _ := NewState(sampleQuestions())
	for _, a := range []Action{Select{Choice: 0}, Next{}, Previous{}, ShowList{}, Submit{}, Review{}, Retake{}} {
		next := Reduce(s, a)
		if next.View != ViewStart || next.Answers[0] != Unanswered {
			t.Errorf("%T changed the start state", a)
		}
	}
}

func TestTimeTakenRounds(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{29 * time.Second, 0},
		{30 * time.Second, 1},
		{4*time.Minute + 29*time.Second, 4},
		{4*time.Minute + 31*time.Second, 5},
		{-time.Minute, 0},
	}
	for _, tt := range tests {
		s := State{StartedAt: base, EndedAt: base.Add(tt.elapsed)}
		if got := s.TimeTaken(); got != tt.want {
			t.Errorf("TimeTaken(%v) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, ok := ParseMode("exam"); !ok || m != ModeExam {
		t.Errorf("ParseMode(exam) = %v, %v", m, ok)
	}
	if _, ok := ParseMode("EXAM"); ok {
		t.Error("ParseMode is case sensitive")
	}
}
