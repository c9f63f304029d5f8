package quiz

import (
	"fmt"
	"strings"
)

// NotAnswered is shown in place of the user's answer for skipped questions.
const NotAnswered = "Not answered"

// Filter selects which questions a review lists.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterCorrect Filter = "correct"
	FilterWrong   Filter = "wrong"
)

// ParseFilter maps user input to a Filter. Empty input means all.
func ParseFilter(v string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(v))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCorrect:
		return FilterCorrect, nil
	case FilterWrong:
		return FilterWrong, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want all, correct or wrong)", v)
	}
}

// ReviewItem is one question of a finished attempt with the user's answer.
type ReviewItem struct {
	Number        int    `json:"number"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Description   string `json:"description"`
	Correct       bool   `json:"correct"`
}

// Review lists the session's questions that pass filter, in quiz order.
func (s *Session) Review(filter Filter) []ReviewItem {
	items := make([]ReviewItem, 0, len(s.questions))
	for i, q := range s.questions {
		user := s.selected[i]
		correct := user == q.CorrectIndex
		if filter == FilterCorrect && !correct {
			continue
		}
		if filter == FilterWrong && correct {
			continue
		}
		answer := NotAnswered
		if user != Unanswered {
			answer = q.Options[user]
		}
		items = append(items, ReviewItem{
			Number:        i + 1,
			Question:      q.Text,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer(),
			Description:   q.Explanation,
			Correct:       correct,
		})
	}
	return items
}
