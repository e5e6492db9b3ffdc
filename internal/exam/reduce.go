package exam

import "time"

// Action is a user-initiated exam transition.
type Action interface {
	action()
}

type (
	// Start begins a fresh attempt in the given mode.
	Start struct {
		Mode Mode
		At   time.Time
	}
	// Select records Choice as the answer to the current question.
	Select struct{ Choice int }
	// Next moves to the following question.
	Next struct{}
	// Previous moves to the preceding question.
	Previous struct{}
	// ShowList opens the question navigator.
	ShowList struct{}
	// BackToQuestion closes the navigator.
	BackToQuestion struct{}
	// GoTo jumps to the question at Index.
	GoTo struct{ Index int }
	// Submit finishes the attempt, prompting first if answers are missing.
	Submit struct{ At time.Time }
	// ConfirmSubmit finishes the attempt despite missing answers.
	ConfirmSubmit struct{ At time.Time }
	// CancelSubmit dismisses the unanswered-questions prompt.
	CancelSubmit struct{}
	// Review opens the answer review.
	Review struct{}
	// Filter narrows the answer review.
	Filter struct{ Filter ReviewFilter }
	// BackToResults leaves the answer review.
	BackToResults struct{}
	// Retake clears all answers and restarts the clock.
	Retake struct{ At time.Time }
	// BackToStart returns to mode selection.
	BackToStart struct{}
)

func (Start) action()          {}
func (Select) action()         {}
func (Next) action()           {}
func (Previous) action()       {}
func (ShowList) action()       {}
func (BackToQuestion) action() {}
func (GoTo) action()           {}
func (Submit) action()         {}
func (ConfirmSubmit) action()  {}
func (CancelSubmit) action()   {}
func (Review) action()         {}
func (Filter) action()         {}
func (BackToResults) action()  {}
func (Retake) action()         {}
func (BackToStart) action()    {}

// Reduce applies a to s and returns the next state. Actions that are not
// valid in the current view are ignored and s is returned unchanged.
// While the submit prompt is open only ConfirmSubmit and CancelSubmit apply.
func Reduce(s State, a Action) State {
	if s.ConfirmingSubmit {
		switch a := a.(type) {
		case ConfirmSubmit:
			return finish(s, a.At)
		case CancelSubmit:
			s.ConfirmingSubmit = false
		}
		return s
	}

	switch a := a.(type) {
	case Start:
		if s.View != ViewStart {
			return s
		}
		if _, ok := ParseMode(string(a.Mode)); !ok {
			return s
		}
		s.Mode = a.Mode
		return restart(s, a.At)

	case Select:
		if s.View != ViewQuestion {
			return s
		}
		if a.Choice < 0 || a.Choice >= len(s.CurrentQuestion().Choices) {
			return s
		}
		s.Answers = withAnswer(s.Answers, s.Current, a.Choice)
		s.ShowExplanation = s.Mode == ModePractice

	case Next:
		if s.View != ViewQuestion || s.IsLast() {
			return s
		}
		s.Current++
		s.ShowExplanation = false

	case Previous:
		if s.View != ViewQuestion || s.Current == 0 {
			return s
		}
		s.Current--
		s.ShowExplanation = false

	case ShowList:
		if s.View != ViewQuestion {
			return s
		}
		s.View = ViewList

	case BackToQuestion:
		if s.View != ViewList {
			return s
		}
		s.View = ViewQuestion
		s.ShowExplanation = false

	case GoTo:
		if s.View != ViewList && s.View != ViewQuestion {
			return s
		}
		if a.Index < 0 || a.Index >= len(s.Questions) {
			return s
		}
		s.Current = a.Index
		s.View = ViewQuestion
		s.ShowExplanation = false

	case Submit:
		if s.View != ViewQuestion && s.View != ViewList {
			return s
		}
		if s.UnansweredCount() > 0 {
			s.ConfirmingSubmit = true
			return s
		}
		return finish(s, a.At)

	case Review:
		if s.View != ViewResults {
			return s
		}
		s.View = ViewReview
		s.ReviewFilter = FilterAll

	case Filter:
		if s.View != ViewReview || !a.Filter.valid() {
			return s
		}
		s.ReviewFilter = a.Filter

	case BackToResults:
		if s.View != ViewReview {
			return s
		}
		s.View = ViewResults

	case Retake:
		if s.View != ViewResults && s.View != ViewReview {
			return s
		}
		return restart(s, a.At)

	case BackToStart:
		if s.View != ViewResults && s.View != ViewReview {
			return s
		}
		s.View = ViewStart
	}

	return s
}

// restart resets answers, position and timestamps and opens the first question.
func restart(s State, at time.Time) State {
	s.Answers = blankAnswers(len(s.Questions))
	s.Current = 0
	s.StartedAt = at
	s.EndedAt = time.Time{}
	s.View = ViewQuestion
	s.ShowExplanation = false
	s.ConfirmingSubmit = false
	s.ReviewFilter = FilterAll
	return s
}

func finish(s State, at time.Time) State {
	s.EndedAt = at
	s.View = ViewResults
	s.ConfirmingSubmit = false
	s.ShowExplanation = false
	return s
}

// withAnswer returns a copy of answers with answers[i] = choice, so earlier
// states keep their own slice.
func withAnswer(answers []int, i, choice int) []int {
	out := make([]int, len(answers))
	copy(out, answers)
	out[i] = choice
	return out
}
