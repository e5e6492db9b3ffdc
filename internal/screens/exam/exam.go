package exam

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/goldenkube/kubeprep/internal/analytics"
	quiz "github.com/goldenkube/kubeprep/internal/exam"
	"github.com/goldenkube/kubeprep/internal/router"
	"github.com/goldenkube/kubeprep/internal/screen"
	"github.com/goldenkube/kubeprep/internal/ui/components"
	"github.com/goldenkube/kubeprep/internal/ui/layout"
	"github.com/goldenkube/kubeprep/internal/ui/markdown"
)

// Screen runs the demo exam: mode selection, questions, navigator,
// results and answer review.
type Screen struct {
	loader  *quiz.Loader
	source  string
	tracker *analytics.Tracker
	log     *log.Logger
	now     func() time.Time

	loading bool
	errMsg  string
	state   quiz.State

	modeCursor   int
	listCursor   int
	reviewScroll int
	choices      components.ChoiceList
	leaving      bool
	attempt      *analytics.Attempt

	// autoStart skips the start view once the bank is loaded.
	autoStart quiz.Mode
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

var modes = []quiz.Mode{quiz.ModePractice, quiz.ModeExam}

// New creates the exam screen. tracker may be nil, in which case attempts
// are not recorded.
func New(loader *quiz.Loader, source string, tracker *analytics.Tracker, logger *log.Logger) *Screen {
	return &Screen{
		loader:  loader,
		source:  source,
		tracker: tracker,
		log:     logger,
		now:     time.Now,
	}
}

// StartIn makes the screen begin in mode as soon as the bank is loaded.
func (s *Screen) StartIn(mode quiz.Mode) *Screen {
	s.autoStart = mode
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.load()
}

func (s *Screen) Title() string {
	if s.state.Questions == nil {
		return "Demo Exam"
	}
	switch s.state.View {
	case quiz.ViewQuestion:
		return "Demo Exam · " + string(s.state.Mode)
	case quiz.ViewList:
		return "Question List"
	case quiz.ViewResults:
		return "Results"
	case quiz.ViewReview:
		return "Answer Review"
	}
	return "Demo Exam"
}

// load fetches the bank. There are no retries; the error view offers a
// manual reload.
func (s *Screen) load() tea.Cmd {
	s.loading = true
	s.errMsg = ""
	loader, source := s.loader, s.source
	return func() tea.Msg {
		qs, err := loader.Load(context.Background(), source)
		return bankLoadedMsg{Questions: qs, Err: err}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bankLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.log.Error("load question bank", "source", s.source, "err", msg.Err)
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		st, err := quiz.NewState(msg.Questions)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.state = st
		s.log.Info("question bank loaded", "source", s.source, "questions", len(msg.Questions))
		if s.autoStart != "" {
			return s.dispatch(quiz.Start{Mode: s.autoStart, At: s.now()})
		}
		return s, nil

	case attemptRecordedMsg:
		if msg.Err != nil {
			s.log.Warn("record exam attempt", "err", msg.Err)
			return s, nil
		}
		a := msg.Attempt
		s.attempt = &a
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		switch key {
		case "r":
			return s, s.load()
		case "esc", "q":
			return s, pop
		}
		return s, nil
	}
	if s.loading || s.state.Questions == nil {
		if key == "esc" {
			return s, pop
		}
		return s, nil
	}

	if s.leaving {
		switch key {
		case "y", "Y":
			s.leaving = false
			return s, pop
		case "n", "N", "esc":
			s.leaving = false
		}
		return s, nil
	}

	if s.state.ConfirmingSubmit {
		switch key {
		case "y", "Y", "enter":
			return s.dispatch(quiz.ConfirmSubmit{At: s.now()})
		case "n", "N", "esc":
			return s.dispatch(quiz.CancelSubmit{})
		}
		return s, nil
	}

	switch s.state.View {
	case quiz.ViewStart:
		return s.handleStartKey(key)
	case quiz.ViewQuestion:
		return s.handleQuestionKey(msg, key)
	case quiz.ViewList:
		return s.handleListKey(key)
	case quiz.ViewResults:
		return s.handleResultsKey(key)
	case quiz.ViewReview:
		return s.handleReviewKey(key)
	}
	return s, nil
}

func (s *Screen) handleStartKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k", "left", "h":
		s.modeCursor = 0
	case "down", "j", "right", "l":
		s.modeCursor = 1
	case "p":
		return s.dispatch(quiz.Start{Mode: quiz.ModePractice, At: s.now()})
	case "e":
		return s.dispatch(quiz.Start{Mode: quiz.ModeExam, At: s.now()})
	case "enter", "space":
		return s.dispatch(quiz.Start{Mode: modes[s.modeCursor], At: s.now()})
	case "esc", "q":
		return s, pop
	}
	return s, nil
}

func (s *Screen) handleQuestionKey(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "right", "n", "tab":
		return s.dispatch(quiz.Next{})
	case "left", "p", "shift+tab":
		return s.dispatch(quiz.Previous{})
	case "l":
		s.listCursor = s.state.Current
		return s.dispatch(quiz.ShowList{})
	case "s":
		return s.dispatch(quiz.Submit{At: s.now()})
	case "esc":
		s.leaving = true
		return s, nil
	}
	var picked int
	s.choices, picked = s.choices.Update(msg)
	if picked == components.NoChoice {
		return s, nil
	}
	return s.dispatch(quiz.Select{Choice: picked})
}

func (s *Screen) handleListKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		if s.listCursor > 0 {
			s.listCursor--
		}
	case "down", "j":
		if s.listCursor < len(s.state.Questions)-1 {
			s.listCursor++
		}
	case "enter", "space":
		return s.dispatch(quiz.GoTo{Index: s.listCursor})
	case "s":
		return s.dispatch(quiz.Submit{At: s.now()})
	case "esc", "l":
		return s.dispatch(quiz.BackToQuestion{})
	}
	return s, nil
}

func (s *Screen) handleResultsKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "v", "enter":
		s.reviewScroll = 0
		return s.dispatch(quiz.Review{})
	case "r":
		return s.dispatch(quiz.Retake{At: s.now()})
	case "b":
		return s.dispatch(quiz.BackToStart{})
	case "esc", "q", "h":
		return s, home
	}
	return s, nil
}

func (s *Screen) handleReviewKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "f", "tab":
		s.reviewScroll = 0
		return s.dispatch(quiz.Filter{Filter: quiz.NextFilter(s.state.ReviewFilter)})
	case "1", "2", "3", "4":
		s.reviewScroll = 0
		return s.dispatch(quiz.Filter{Filter: quiz.ReviewFilters[int(key[0]-'1')]})
	case "up", "k":
		if s.reviewScroll > 0 {
			s.reviewScroll--
		}
	case "down", "j":
		if s.reviewScroll < len(s.state.ReviewItems())-1 {
			s.reviewScroll++
		}
	case "r":
		return s.dispatch(quiz.Retake{At: s.now()})
	case "esc", "b":
		return s.dispatch(quiz.BackToResults{})
	}
	return s, nil
}

// dispatch reduces a and keeps the widgets in sync with the new state.
func (s *Screen) dispatch(a quiz.Action) (screen.Screen, tea.Cmd) {
	prev := s.state
	s.state = quiz.Reduce(s.state, a)

	if s.state.View == quiz.ViewQuestion {
		s.syncChoices()
	}
	if s.state.View == quiz.ViewQuestion && prev.View != quiz.ViewQuestion && prev.View != quiz.ViewList {
		s.attempt = nil
	}
	if s.state.View == quiz.ViewResults && prev.View != quiz.ViewResults && prev.View != quiz.ViewReview {
		return s, s.record(s.state)
	}
	return s, nil
}

func (s *Screen) syncChoices() {
	q := s.state.CurrentQuestion()
	cl := components.NewChoiceList(q.Choices, s.state.CurrentAnswer(), q.Correct)
	if s.choices.Options != nil && sameQuestion(s.choices, q) {
		cl.Cursor = s.choices.Cursor
	}
	cl.Reveal = s.state.ShowExplanation
	cl.Render = markdown.Inline
	s.choices = cl
}

func sameQuestion(c components.ChoiceList, q quiz.Question) bool {
	if len(c.Options) != len(q.Choices) || c.Correct != q.Correct {
		return false
	}
	for i := range q.Choices {
		if c.Options[i] != q.Choices[i] {
			return false
		}
	}
	return true
}

func (s *Screen) record(st quiz.State) tea.Cmd {
	if s.tracker == nil {
		return nil
	}
	tracker := s.tracker
	return func() tea.Msg {
		a, err := tracker.RecordAttempt(context.Background(), st)
		return attemptRecordedMsg{Attempt: a, Err: err}
	}
}

func pop() tea.Msg { return router.PopScreenMsg{} }

func home() tea.Msg { return router.PopToRootMsg{} }

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "R", Description: "Reload"}, {Key: "Esc", Description: "Back"}}
	case s.loading || s.state.Questions == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.leaving:
		return []layout.KeyHint{{Key: "Y", Description: "Leave exam"}, {Key: "N", Description: "Keep going"}}
	case s.state.ConfirmingSubmit:
		return []layout.KeyHint{{Key: "Y", Description: "Submit anyway"}, {Key: "N", Description: "Keep answering"}}
	}
	switch s.state.View {
	case quiz.ViewStart:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Mode"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case quiz.ViewQuestion:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "←→", Description: "Prev/Next"},
			{Key: "L", Description: "List"},
			{Key: "S", Description: "Submit"},
		}
	case quiz.ViewList:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go to"},
			{Key: "S", Description: "Submit"},
			{Key: "Esc", Description: "Back"},
		}
	case quiz.ViewResults:
		return []layout.KeyHint{
			{Key: "V", Description: "Review"},
			{Key: "R", Description: "Retake"},
			{Key: "B", Description: "Start screen"},
			{Key: "H", Description: "Home"},
		}
	case quiz.ViewReview:
		return []layout.KeyHint{
			{Key: "F", Description: "Filter"},
			{Key: "↑↓", Description: "Scroll"},
			{Key: "R", Description: "Retake"},
			{Key: "Esc", Description: "Results"},
		}
	}
	return nil
}
