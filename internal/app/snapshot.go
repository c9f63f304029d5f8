package app

import (
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/quiz"
)

// QuestionView is the displayed question of the running quiz.
type QuestionView struct {
	Number   int      `json:"number"`
	Total    int      `json:"total"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Selected int      `json:"selected"`
	IsLast   bool     `json:"is_last"`
}

// Snapshot is everything a view needs to draw the active screen.
type Snapshot struct {
	Screen       Screen             `json:"screen"`
	Status       string             `json:"status,omitempty"`
	Prediction   string             `json:"prediction,omitempty"`
	Object       string             `json:"object,omitempty"`
	CameraOn     bool               `json:"camera_on"`
	ModelLoaded  bool               `json:"model_loaded"`
	Capturing    bool               `json:"capturing"`
	SessionID    string             `json:"session_id,omitempty"`
	SessionState string             `json:"session_state"`
	Question     *QuestionView      `json:"question,omitempty"`
	Score        *model.ScoreResult `json:"score,omitempty"`
	Stats        *model.StatsRecord `json:"stats,omitempty"`
	Filter       quiz.Filter        `json:"filter,omitempty"`
	Review       []quiz.ReviewItem  `json:"review,omitempty"`
}

// Snapshot copies the controller state.
func (c *Controller) Snapshot() Snapshot {
	loaded := c.model.Loaded()

	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Screen:       c.screen,
		Status:       c.status,
		Prediction:   c.prediction,
		Object:       c.session.ObjectLabel(),
		CameraOn:     c.stream != nil,
		ModelLoaded:  loaded,
		Capturing:    c.capturing,
		SessionID:    c.session.ID(),
		SessionState: c.session.State().String(),
	}
	if q, ok := c.session.Current(); ok {
		idx := c.session.CurrentIndex()
		snap.Question = &QuestionView{
			Number:   idx + 1,
			Total:    c.session.Len(),
			Text:     q.Text,
			Options:  append([]string(nil), q.Options[:]...),
			Selected: c.session.Selected(idx),
			IsLast:   c.session.IsLast(),
		}
	}
	if c.score != nil {
		score := *c.score
		snap.Score = &score
	}
	if c.stats != nil {
		rec := *c.stats
		snap.Stats = &rec
	}
	if c.session.State() == quiz.StateCompleted {
		snap.Filter = c.filter
		snap.Review = c.session.Review(c.filter)
	}
	return snap
}
