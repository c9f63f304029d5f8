package quiz

import (
	"errors"

	"github.com/google/uuid"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
)

// Unanswered marks a question with no selected option.
const Unanswered = -1

// State is the lifecycle stage of a Session.
type State int

const (
	StateEmpty State = iota
	StateActive
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	default:
		return "empty"
	}
}

var (
	ErrNotActive        = errors.New("quiz session is not active")
	ErrNoQuestions      = errors.New("quiz has no questions")
	ErrOptionOutOfRange = errors.New("answer option out of range")
)

// Session tracks one quiz attempt. It is not safe for concurrent use.
type Session struct {
	id        string
	label     string
	state     State
	questions []model.Question
	current   int
	selected  []int
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Start discards any previous attempt and begins a new one on questions.
func (s *Session) Start(label string, questions []model.Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	s.id = uuid.NewString()
	s.label = label
	s.questions = append([]model.Question(nil), questions...)
	s.current = 0
	s.selected = make([]int, len(questions))
	for i := range s.selected {
		s.selected[i] = Unanswered
	}
	s.state = StateActive
	return nil
}

// ID identifies the current attempt. Empty before the first Start.
func (s *Session) ID() string {
	return s.id
}

// State returns the lifecycle stage.
func (s *Session) State() State {
	return s.state
}

// ObjectLabel returns the label the quiz was generated for.
func (s *Session) ObjectLabel() string {
	return s.label
}

// Len returns the number of questions.
func (s *Session) Len() int {
	return len(s.questions)
}

// CurrentIndex returns the position of the displayed question.
func (s *Session) CurrentIndex() int {
	return s.current
}

// Current returns the displayed question.
func (s *Session) Current() (model.Question, bool) {
	if len(s.questions) == 0 {
		return model.Question{}, false
	}
	return s.questions[s.current], true
}

// Question returns the question at i.
func (s *Session) Question(i int) (model.Question, bool) {
	if i < 0 || i >= len(s.questions) {
		return model.Question{}, false
	}
	return s.questions[i], true
}

// Selected returns the option chosen for question i, or Unanswered.
func (s *Session) Selected(i int) int {
	if i < 0 || i >= len(s.selected) {
		return Unanswered
	}
	return s.selected[i]
}

// IsLast reports whether the displayed question is the final one.
func (s *Session) IsLast() bool {
	return len(s.questions) > 0 && s.current == len(s.questions)-1
}

// SelectAnswer records option for the displayed question, replacing any earlier choice.
func (s *Session) SelectAnswer(option int) error {
	if s.state != StateActive {
		return ErrNotActive
	}
	if option < 0 || option >= model.OptionCount {
		return ErrOptionOutOfRange
	}
	s.selected[s.current] = option
	return nil
}

// Next moves forward one question; it stays put on the last one.
func (s *Session) Next() error {
	if s.state != StateActive {
		return ErrNotActive
	}
	if s.current < len(s.questions)-1 {
		s.current++
	}
	return nil
}

// Previous moves back one question; it stays put on the first one.
func (s *Session) Previous() error {
	if s.state != StateActive {
		return ErrNotActive
	}
	if s.current > 0 {
		s.current--
	}
	return nil
}

// Submit completes the attempt and returns its score.
func (s *Session) Submit() (model.ScoreResult, error) {
	if s.state != StateActive {
		return model.ScoreResult{}, ErrNotActive
	}
	s.state = StateCompleted
	return s.Score(), nil
}

// Score counts the questions answered correctly. Unanswered questions are wrong.
func (s *Session) Score() model.ScoreResult {
	res := model.ScoreResult{Total: len(s.questions)}
	for i, q := range s.questions {
		if s.selected[i] == q.CorrectIndex {
			res.Correct++
		}
	}
	return res
}
