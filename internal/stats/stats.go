// Package stats contains quiz statistics calculations and reporting.
package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
)

// ErrEmptyScore is returned for a score with no questions.
var ErrEmptyScore = errors.New("score has no questions")

// Percent returns the score as a whole percentage, rounded half away from zero.
func Percent(score model.ScoreResult) (int, error) {
	if score.Total <= 0 {
		return 0, ErrEmptyScore
	}
	return int(math.Round(float64(score.Correct) * 100 / float64(score.Total))), nil
}

// Update folds score into prior. A nil prior starts a new record.
// prior is not modified.
func Update(score model.ScoreResult, prior *model.StatsRecord) (model.StatsRecord, error) {
	percent, err := Percent(score)
	if err != nil {
		return model.StatsRecord{}, err
	}
	if prior == nil {
		return model.StatsRecord{
			Attempts:    1,
			SumPercent:  percent,
			BestPercent: percent,
			LastPercent: percent,
		}, nil
	}
	next := *prior
	next.Attempts++
	next.SumPercent += percent
	next.LastPercent = percent
	if percent > next.BestPercent {
		next.BestPercent = percent
	}
	return next, nil
}

// Average returns the mean percentage over all attempts.
func Average(rec model.StatsRecord) int {
	if rec.Attempts <= 0 {
		return 0
	}
	return int(math.Round(float64(rec.SumPercent) / float64(rec.Attempts)))
}

// ScoreLine formats a score for the score screen.
func ScoreLine(score model.ScoreResult) string {
	return fmt.Sprintf("You scored %d out of %d.", score.Correct, score.Total)
}

// SummaryLine formats a stats record for the score screen.
func SummaryLine(rec model.StatsRecord) string {
	return fmt.Sprintf("Last: %d%%  |  Best: %d%%  |  Attempts: %d  |  Avg: %d%%",
		rec.LastPercent, rec.BestPercent, rec.Attempts, Average(rec))
}
