package quiz

import (
	"errors"
	"testing"
)

func startedSession(t *testing.T, label string) *Session {
	t.Helper()
	s := NewSession()
	if err := s.Start(label, Generate(label)); err != nil {
		t.Fatalf("start: %v", err)
	}
	return s
}

func TestStartResetsAnswers(t *testing.T) {
	s := startedSession(t, "beaker")
	if s.State() != StateActive {
		t.Fatalf("expected active, got %s", s.State())
	}
	if s.CurrentIndex() != 0 {
		t.Fatalf("expected index 0, got %d", s.CurrentIndex())
	}
	if s.Len() != QuestionCount {
		t.Fatalf("expected %d questions, got %d", QuestionCount, s.Len())
	}
	for i := 0; i < s.Len(); i++ {
		if s.Selected(i) != Unanswered {
			t.Fatalf("expected question %d unanswered", i)
		}
	}
	if s.ID() == "" {
		t.Fatalf("expected session id")
	}
}

func TestStartDiscardsPreviousAttempt(t *testing.T) {
	s := startedSession(t, "beaker")
	firstID := s.ID()
	if err := s.SelectAnswer(2); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := s.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if err := s.Start("flask", Generate("flask")); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.ID() == firstID {
		t.Fatalf("expected a new session id")
	}
	if s.CurrentIndex() != 0 || s.Selected(0) != Unanswered || s.ObjectLabel() != "flask" {
		t.Fatalf("restart kept old state: index=%d selected=%d label=%q", s.CurrentIndex(), s.Selected(0), s.ObjectLabel())
	}
}

func TestStartRejectsEmptyQuiz(t *testing.T) {
	s := NewSession()
	if err := s.Start("x", nil); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
	if s.State() != StateEmpty {
		t.Fatalf("expected empty state, got %s", s.State())
	}
}

func TestOperationsRequireActive(t *testing.T) {
	s := NewSession()
	if err := s.SelectAnswer(0); !errors.Is(err, ErrNotActive) {
		t.Fatalf("select: expected ErrNotActive, got %v", err)
	}
	if err := s.Next(); !errors.Is(err, ErrNotActive) {
		t.Fatalf("next: expected ErrNotActive, got %v", err)
	}
	if err := s.Previous(); !errors.Is(err, ErrNotActive) {
		t.Fatalf("previous: expected ErrNotActive, got %v", err)
	}
	if _, err := s.Submit(); !errors.Is(err, ErrNotActive) {
		t.Fatalf("submit: expected ErrNotActive, got %v", err)
	}

	s = startedSession(t, "beaker")
	if _, err := s.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := s.Submit(); !errors.Is(err, ErrNotActive) {
		t.Fatalf("second submit: expected ErrNotActive, got %v", err)
	}
	if err := s.SelectAnswer(0); !errors.Is(err, ErrNotActive) {
		t.Fatalf("select after submit: expected ErrNotActive, got %v", err)
	}
}

func TestSelectAnswerValidatesAndOverwrites(t *testing.T) {
	s := startedSession(t, "beaker")
	for _, bad := range []int{-1, 4, 10} {
		if err := s.SelectAnswer(bad); !errors.Is(err, ErrOptionOutOfRange) {
			t.Fatalf("option %d: expected ErrOptionOutOfRange, got %v", bad, err)
		}
	}
	if err := s.SelectAnswer(1); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := s.SelectAnswer(3); err != nil {
		t.Fatalf("select: %v", err)
	}
	if s.Selected(0) != 3 {
		t.Fatalf("expected overwritten answer 3, got %d", s.Selected(0))
	}
}

func TestNavigationClamps(t *testing.T) {
	s := startedSession(t, "beaker")
	if err := s.Previous(); err != nil {
		t.Fatalf("previous: %v", err)
	}
	if s.CurrentIndex() != 0 {
		t.Fatalf("expected index 0, got %d", s.CurrentIndex())
	}
	for i := 0; i < 10; i++ {
		if err := s.Next(); err != nil {
			t.Fatalf("next: %v", err)
		}
		if s.CurrentIndex() < 0 || s.CurrentIndex() > s.Len()-1 {
			t.Fatalf("index out of range: %d", s.CurrentIndex())
		}
	}
	if s.CurrentIndex() != s.Len()-1 || !s.IsLast() {
		t.Fatalf("expected to rest on last question, got %d", s.CurrentIndex())
	}
	if err := s.Previous(); err != nil {
		t.Fatalf("previous: %v", err)
	}
	if s.IsLast() {
		t.Fatalf("expected not last after previous")
	}
}

func TestSubmitScore(t *testing.T) {
	tests := []struct {
		name    string
		answers []int
		want    int
	}{
		{name: "none answered", answers: []int{Unanswered, Unanswered, Unanswered, Unanswered, Unanswered}, want: 0},
		{name: "all correct", answers: []int{0, 0, 0, 0, 0}, want: 5},
		{name: "three of five", answers: []int{0, 1, 0, Unanswered, 0}, want: 3},
		{name: "all wrong", answers: []int{1, 2, 3, 1, 2}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := startedSession(t, "beaker")
			for i, a := range tt.answers {
				if a != Unanswered {
					if err := s.SelectAnswer(a); err != nil {
						t.Fatalf("select: %v", err)
					}
				}
				if i < len(tt.answers)-1 {
					if err := s.Next(); err != nil {
						t.Fatalf("next: %v", err)
					}
				}
			}
			res, err := s.Submit()
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			if res.Correct != tt.want || res.Total != QuestionCount {
				t.Fatalf("expected %d/%d, got %d/%d", tt.want, QuestionCount, res.Correct, res.Total)
			}
			if s.State() != StateCompleted {
				t.Fatalf("expected completed, got %s", s.State())
			}
		})
	}
}

func TestReviewFilters(t *testing.T) {
	s := startedSession(t, "beaker")
	// Q1 correct, Q2 wrong, Q3..Q5 unanswered.
	_ = s.SelectAnswer(0)
	_ = s.Next()
	_ = s.SelectAnswer(2)
	if _, err := s.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	all := s.Review(FilterAll)
	if len(all) != QuestionCount {
		t.Fatalf("expected %d items, got %d", QuestionCount, len(all))
	}
	correct := s.Review(FilterCorrect)
	if len(correct) != 1 || correct[0].Number != 1 {
		t.Fatalf("unexpected correct items: %+v", correct)
	}
	wrong := s.Review(FilterWrong)
	if len(wrong) != 4 {
		t.Fatalf("expected 4 wrong items, got %d", len(wrong))
	}
	if wrong[0].UserAnswer != "Share it without cleaning" {
		t.Fatalf("unexpected user answer: %q", wrong[0].UserAnswer)
	}
	if wrong[1].UserAnswer != NotAnswered {
		t.Fatalf("expected %q, got %q", NotAnswered, wrong[1].UserAnswer)
	}
	if wrong[0].CorrectAnswer != "Wear proper lab PPE such as gloves and goggles" {
		t.Fatalf("unexpected correct answer: %q", wrong[0].CorrectAnswer)
	}
}

func TestParseFilter(t *testing.T) {
	for in, want := range map[string]Filter{"": FilterAll, "ALL": FilterAll, "correct": FilterCorrect, " wrong ": FilterWrong} {
		got, err := ParseFilter(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %q, got %q err=%v", in, want, got, err)
		}
	}
	if _, err := ParseFilter("maybe"); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
}
