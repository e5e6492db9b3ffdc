package exam

import "time"

// Mode selects when feedback is shown.
type Mode string

const (
	// ModePractice shows the explanation as soon as a question is answered.
	ModePractice Mode = "practice"
	// ModeExam defers all feedback to the results screen.
	ModeExam Mode = "exam"
)

// ParseMode maps a user-supplied mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModePractice, ModeExam:
		return Mode(s), true
	}
	return "", false
}

// View is the screen the exam is currently showing.
type View int

const (
	ViewStart    View = iota // Mode selection and bank overview
	ViewQuestion             // A single question
	ViewList                 // Question navigator grouped by section
	ViewResults              // Score summary after submission
	ViewReview               // Per-question answer review
)

func (v View) String() string {
	switch v {
	case ViewStart:
		return "start"
	case ViewQuestion:
		return "question"
	case ViewList:
		return "list"
	case ViewResults:
		return "results"
	case ViewReview:
		return "review"
	}
	return "unknown"
}

// State is the complete exam state. It is a value: Reduce never mutates
// the State it is given.
//
// Invariants: len(Answers) == len(Questions) and 0 <= Current < len(Questions).
type State struct {
	Questions []Question
	Answers   []int
	Current   int
	Mode      Mode
	View      View

	StartedAt time.Time
	EndedAt   time.Time

	// ShowExplanation is set in practice mode once the current question is answered.
	ShowExplanation bool

	// ConfirmingSubmit is set while the unanswered-questions prompt is open.
	ConfirmingSubmit bool

	ReviewFilter ReviewFilter
}

// NewState creates the start-screen state for a question bank.
func NewState(questions []Question) (State, error) {
	if len(questions) == 0 {
		return State{}, ErrNoQuestions
	}
	return State{
		Questions:    questions,
		Answers:      blankAnswers(len(questions)),
		Mode:         ModePractice,
		View:         ViewStart,
		ReviewFilter: FilterAll,
	}, nil
}

// CurrentQuestion returns the question at the current index.
func (s State) CurrentQuestion() Question {
	return s.Questions[s.Current]
}

// CurrentAnswer returns the answer recorded for the current question.
func (s State) CurrentAnswer() int {
	return s.Answers[s.Current]
}

// IsLast reports whether the current question is the last one.
func (s State) IsLast() bool {
	return s.Current == len(s.Questions)-1
}

// UnansweredCount returns how many answer slots are still empty.
func (s State) UnansweredCount() int {
	n := 0
	for _, a := range s.Answers {
		if a == Unanswered {
			n++
		}
	}
	return n
}

// Progress returns (current+1)/total as a fraction in (0, 1].
func (s State) Progress() float64 {
	return float64(s.Current+1) / float64(len(s.Questions))
}

// Score computes the score for the recorded answers.
func (s State) Score() Score {
	return CalculateScore(s.Questions, s.Answers)
}

// TimeTaken returns the exam duration rounded to whole minutes.
func (s State) TimeTaken() int {
	return roundMinutes(s.EndedAt.Sub(s.StartedAt))
}

func blankAnswers(n int) []int {
	answers := make([]int, n)
	for i := range answers {
		answers[i] = Unanswered
	}
	return answers
}

func roundMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d.Round(time.Minute) / time.Minute)
}
