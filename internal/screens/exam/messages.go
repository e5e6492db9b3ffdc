package exam

import (
	"github.com/goldenkube/kubeprep/internal/analytics"
	quiz "github.com/goldenkube/kubeprep/internal/exam"
)

// bankLoadedMsg is sent when the question bank has been fetched.
type bankLoadedMsg struct {
	Questions []quiz.Question
	Err       error
}

// attemptRecordedMsg is sent once a submitted exam is stored.
type attemptRecordedMsg struct {
	Attempt analytics.Attempt
	Err     error
}
