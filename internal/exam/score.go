package exam

import "math"

// Score is derived from the answers on demand; it is never stored.
type Score struct {
	Correct    int
	Incorrect  int
	Unanswered int
	Total      int
	Percentage int
}

// Passed reports whether the score meets PassThreshold.
func (s Score) Passed() bool {
	return s.Percentage >= PassThreshold
}

// SectionScore is the score for one topic section.
type SectionScore struct {
	Section    string
	Correct    int
	Total      int
	Percentage int
}

// SectionGroup lists the question indexes belonging to a section.
type SectionGroup struct {
	Section string
	Indexes []int
}

// CalculateScore counts correct, incorrect and unanswered slots.
// Percentage is round(correct/total*100).
func CalculateScore(questions []Question, answers []int) Score {
	var s Score
	s.Total = len(questions)
	for i, q := range questions {
		a := Unanswered
		if i < len(answers) {
			a = answers[i]
		}
		switch {
		case a == Unanswered:
			s.Unanswered++
		case q.IsCorrect(a):
			s.Correct++
		default:
			s.Incorrect++
		}
	}
	s.Percentage = percent(s.Correct, s.Total)
	return s
}

// ScoreBySection breaks the score down per section, in the order sections
// first appear in the bank.
func ScoreBySection(questions []Question, answers []int) []SectionScore {
	var out []SectionScore
	pos := make(map[string]int)
	for i, q := range questions {
		idx, ok := pos[q.Section]
		if !ok {
			idx = len(out)
			pos[q.Section] = idx
			out = append(out, SectionScore{Section: q.Section})
		}
		out[idx].Total++
		if i < len(answers) && q.IsCorrect(answers[i]) {
			out[idx].Correct++
		}
	}
	for i := range out {
		out[i].Percentage = percent(out[i].Correct, out[i].Total)
	}
	return out
}

// GroupBySection groups question indexes by section in first-appearance order.
func GroupBySection(questions []Question) []SectionGroup {
	var out []SectionGroup
	pos := make(map[string]int)
	for i, q := range questions {
		idx, ok := pos[q.Section]
		if !ok {
			idx = len(out)
			pos[q.Section] = idx
			out = append(out, SectionGroup{Section: q.Section})
		}
		out[idx].Indexes = append(out[idx].Indexes, i)
	}
	return out
}

// UniqueSections returns the distinct section labels in first-appearance order.
func UniqueSections(questions []Question) []string {
	groups := GroupBySection(questions)
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Section
	}
	return out
}

// EstimatedMinutes allows a minute and a half per question.
func EstimatedMinutes(n int) int {
	return int(math.Ceil(float64(n) * 1.5))
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
