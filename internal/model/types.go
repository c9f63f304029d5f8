// Package model defines shared data structures.
package model

import "time"

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Question is a single multiple-choice safety question.
type Question struct {
	Text         string
	Options      [OptionCount]string
	CorrectIndex int
	Explanation  string
}

// CorrectAnswer returns the text of the correct option.
func (q Question) CorrectAnswer() string {
	return q.Options[q.CorrectIndex]
}

// ScoreResult is the outcome of a submitted quiz.
type ScoreResult struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// StatsRecord is the rolling aggregate of quiz performance.
type StatsRecord struct {
	Attempts    int `json:"attempts"`
	SumPercent  int `json:"sumPercent"`
	BestPercent int `json:"bestPercent"`
	LastPercent int `json:"lastPercent"`
}

// FavoriteEntry is a saved question with its correct answer.
type FavoriteEntry struct {
	Object      string `json:"object"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Description string `json:"description"`
}

// RecentScanEntry logs a classified object.
type RecentScanEntry struct {
	Object string `json:"object"`
	Time   string `json:"time"`
}

// Prediction is one classifier result.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Frame is a captured camera image.
type Frame struct {
	Data       []byte
	MIMEType   string
	CapturedAt time.Time
}

// Config defines runtime settings resolved from flags, env and file.
type Config struct {
	StoreEngine       string
	StorePath         string
	ClassifierURL     string
	ClassifierTimeout time.Duration
	MinConfidence     float64
	StaticLabel       string
	FramePath         string
	ServeAddr         string
}
