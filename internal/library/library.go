// Package library manages the saved-question and scan-history collections
// and the persisted quiz statistics.
package library

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/quiz"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/stats"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/store"
)

// ErrIndexOutOfRange is returned by removals given an index the collection does not have.
var ErrIndexOutOfRange = errors.New("index out of range")

// TimeLayout formats recent scan times.
const TimeLayout = "02/01/2006, 15:04:05"

// Manager performs read-modify-write updates on the persisted collections.
// Each collection has its own lock so concurrent callers cannot interleave
// a read and write on the same key.
type Manager struct {
	c   *store.Collections
	now func() time.Time

	favMu    sync.Mutex
	recentMu sync.Mutex
	statsMu  sync.Mutex
}

// New returns a Manager over c.
func New(c *store.Collections) *Manager {
	return &Manager{c: c, now: time.Now}
}

// Favorites returns the saved questions in insertion order.
func (m *Manager) Favorites(ctx context.Context) ([]model.FavoriteEntry, error) {
	return m.c.Favorites(ctx)
}

// RecentScans returns the scan history in insertion order.
func (m *Manager) RecentScans(ctx context.Context) ([]model.RecentScanEntry, error) {
	return m.c.RecentScans(ctx)
}

// Stats returns the persisted stats record, nil when no quiz was completed.
func (m *Manager) Stats(ctx context.Context) (*model.StatsRecord, error) {
	return m.c.Stats(ctx)
}

// AddFavorite appends entry to the saved questions.
func (m *Manager) AddFavorite(ctx context.Context, entry model.FavoriteEntry) error {
	return m.appendFavorites(ctx, []model.FavoriteEntry{entry})
}

// RemoveFavoriteAt deletes the saved question at index.
func (m *Manager) RemoveFavoriteAt(ctx context.Context, index int) error {
	m.favMu.Lock()
	defer m.favMu.Unlock()
	favs, err := m.c.Favorites(ctx)
	if err != nil {
		return err
	}
	favs, err = removeAt(favs, index)
	if err != nil {
		return err
	}
	return m.c.SetFavorites(ctx, favs)
}

// ClearFavorites empties the saved questions.
func (m *Manager) ClearFavorites(ctx context.Context) error {
	m.favMu.Lock()
	defer m.favMu.Unlock()
	return m.c.SetFavorites(ctx, nil)
}

// AddRecentScan appends entry to the scan history.
func (m *Manager) AddRecentScan(ctx context.Context, entry model.RecentScanEntry) error {
	m.recentMu.Lock()
	defer m.recentMu.Unlock()
	scans, err := m.c.RecentScans(ctx)
	if err != nil {
		return err
	}
	return m.c.SetRecentScans(ctx, append(scans, entry))
}

// RecordScan appends object to the scan history stamped with the current local time.
func (m *Manager) RecordScan(ctx context.Context, object string) (model.RecentScanEntry, error) {
	entry := model.RecentScanEntry{
		Object: object,
		Time:   m.now().Format(TimeLayout),
	}
	return entry, m.AddRecentScan(ctx, entry)
}

// RemoveRecentScanAt deletes the scan history entry at index.
func (m *Manager) RemoveRecentScanAt(ctx context.Context, index int) error {
	m.recentMu.Lock()
	defer m.recentMu.Unlock()
	scans, err := m.c.RecentScans(ctx)
	if err != nil {
		return err
	}
	scans, err = removeAt(scans, index)
	if err != nil {
		return err
	}
	return m.c.SetRecentScans(ctx, scans)
}

// ClearRecentScans empties the scan history.
func (m *Manager) ClearRecentScans(ctx context.Context) error {
	m.recentMu.Lock()
	defer m.recentMu.Unlock()
	return m.c.SetRecentScans(ctx, nil)
}

// SaveQuestion saves the session's displayed question with its correct answer.
func (m *Manager) SaveQuestion(ctx context.Context, s *quiz.Session) (model.FavoriteEntry, error) {
	q, ok := s.Current()
	if !ok {
		return model.FavoriteEntry{}, quiz.ErrNoQuestions
	}
	entry := favoriteFor(s.ObjectLabel(), q)
	return entry, m.AddFavorite(ctx, entry)
}

// SaveWrongAnswers saves every question of s that was answered wrongly or not at all.
// It returns the number of entries added.
func (m *Manager) SaveWrongAnswers(ctx context.Context, s *quiz.Session) (int, error) {
	var entries []model.FavoriteEntry
	for i := 0; i < s.Len(); i++ {
		q, _ := s.Question(i)
		if s.Selected(i) == q.CorrectIndex {
			continue
		}
		entries = append(entries, favoriteFor(s.ObjectLabel(), q))
	}
	if len(entries) == 0 {
		return 0, nil
	}
	if err := m.appendFavorites(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// RecordCompletion folds score into the persisted stats and returns the new record.
func (m *Manager) RecordCompletion(ctx context.Context, score model.ScoreResult) (model.StatsRecord, error) {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	prior, err := m.c.Stats(ctx)
	if err != nil {
		return model.StatsRecord{}, err
	}
	next, err := stats.Update(score, prior)
	if err != nil {
		return model.StatsRecord{}, err
	}
	if err := m.c.SetStats(ctx, next); err != nil {
		return model.StatsRecord{}, err
	}
	return next, nil
}

func (m *Manager) appendFavorites(ctx context.Context, entries []model.FavoriteEntry) error {
	m.favMu.Lock()
	defer m.favMu.Unlock()
	favs, err := m.c.Favorites(ctx)
	if err != nil {
		return err
	}
	return m.c.SetFavorites(ctx, append(favs, entries...))
}

func favoriteFor(object string, q model.Question) model.FavoriteEntry {
	return model.FavoriteEntry{
		Object:      object,
		Question:    q.Text,
		Answer:      q.CorrectAnswer(),
		Description: q.Explanation,
	}
}

func removeAt[T any](items []T, index int) ([]T, error) {
	if index < 0 || index >= len(items) {
		return items, ErrIndexOutOfRange
	}
	return append(items[:index], items[index+1:]...), nil
}
