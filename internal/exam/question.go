package exam

import (
	"errors"
	"fmt"
	"strings"
)

// Unanswered marks an answer slot the candidate has not filled.
const Unanswered = -1

// PassThreshold is the minimum percentage that counts as a pass.
const PassThreshold = 70

var (
	// ErrNoQuestions is returned when a question bank is empty.
	ErrNoQuestions = errors.New("question bank is empty")

	// ErrInvalidBank is returned when a question bank fails validation.
	ErrInvalidBank = errors.New("invalid question bank")
)

// Question is a single multiple-choice exam question. Questions are
// immutable once loaded.
type Question struct {
	Text        string   `json:"question"`
	Choices     []string `json:"choices"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
	Section     string   `json:"section"`
}

// IsCorrect reports whether answer is the correct choice.
func (q Question) IsCorrect(answer int) bool {
	return answer != Unanswered && answer == q.Correct
}

// CorrectChoice returns the text of the correct choice.
func (q Question) CorrectChoice() string {
	if q.Correct < 0 || q.Correct >= len(q.Choices) {
		return ""
	}
	return q.Choices[q.Correct]
}

// Validate checks the constraints the JSON schema cannot express.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("question text is empty")
	}
	if strings.TrimSpace(q.Section) == "" {
		return errors.New("section is empty")
	}
	if len(q.Choices) < 2 {
		return fmt.Errorf("need at least 2 choices, got %d", len(q.Choices))
	}
	if q.Correct < 0 || q.Correct >= len(q.Choices) {
		return fmt.Errorf("correct index %d out of range [0, %d)", q.Correct, len(q.Choices))
	}
	return nil
}

// ValidateBank validates every question in the bank.
func ValidateBank(questions []Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("%w: question %d: %v", ErrInvalidBank, i+1, err)
		}
	}
	return nil
}
