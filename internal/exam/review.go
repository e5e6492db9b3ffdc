package exam

// ReviewFilter narrows the answer review to one status.
type ReviewFilter string

const (
	FilterAll        ReviewFilter = "all"
	FilterCorrect    ReviewFilter = "correct"
	FilterIncorrect  ReviewFilter = "incorrect"
	FilterUnanswered ReviewFilter = "unanswered"
)

// ReviewFilters is the cycle order used by the review screen.
var ReviewFilters = []ReviewFilter{FilterAll, FilterCorrect, FilterIncorrect, FilterUnanswered}

func (f ReviewFilter) valid() bool {
	for _, v := range ReviewFilters {
		if f == v {
			return true
		}
	}
	return false
}

// NextFilter returns the filter after f in ReviewFilters, wrapping around.
func NextFilter(f ReviewFilter) ReviewFilter {
	for i, v := range ReviewFilters {
		if v == f {
			return ReviewFilters[(i+1)%len(ReviewFilters)]
		}
	}
	return FilterAll
}

// Status is the outcome of a single question.
type Status string

const (
	StatusCorrect    Status = "correct"
	StatusIncorrect  Status = "incorrect"
	StatusUnanswered Status = "unanswered"
)

// StatusOf classifies an answer to q.
func StatusOf(q Question, answer int) Status {
	switch {
	case answer == Unanswered:
		return StatusUnanswered
	case q.IsCorrect(answer):
		return StatusCorrect
	default:
		return StatusIncorrect
	}
}

// ReviewItem is one row of the answer review.
type ReviewItem struct {
	Index    int
	Question Question
	Answer   int
	Status   Status
}

// ReviewItems returns the review rows matching the state's filter.
func (s State) ReviewItems() []ReviewItem {
	var items []ReviewItem
	for i, q := range s.Questions {
		status := StatusOf(q, s.Answers[i])
		if s.ReviewFilter != FilterAll && string(s.ReviewFilter) != string(status) {
			continue
		}
		items = append(items, ReviewItem{
			Index:    i,
			Question: q,
			Answer:   s.Answers[i],
			Status:   status,
		})
	}
	return items
}
