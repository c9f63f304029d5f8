// Package vision provides the camera and image-classifier capabilities.
package vision

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
)

var (
	ErrPermissionDenied = errors.New("camera permission denied")
	ErrNoFrame          = errors.New("no frame available")
	ErrStreamReleased   = errors.New("stream released")
)

// Classifier names the object in a frame. Predictions are ordered by
// descending confidence; an empty result means nothing was detected.
type Classifier interface {
	Classify(ctx context.Context, frame model.Frame) ([]model.Prediction, error)
}

// Loader produces a ready Classifier. It may be slow.
type Loader func(ctx context.Context) (Classifier, error)

// Model loads its classifier on first use.
type Model struct {
	load Loader

	// loadMu serializes loads; mu only guards classifier so Loaded never waits on a load.
	loadMu     sync.Mutex
	mu         sync.Mutex
	classifier Classifier
}

// NewModel returns a Model that calls load the first time it is needed.
func NewModel(load Loader) *Model {
	return &Model{load: load}
}

// Loaded reports whether the classifier is ready.
func (m *Model) Loaded() bool {
	return m.ready() != nil
}

func (m *Model) ready() Classifier {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.classifier
}

// EnsureLoaded returns the ready classifier, loading it if needed.
// A failed load is retried on the next call.
func (m *Model) EnsureLoaded(ctx context.Context) (Classifier, error) {
	if c := m.ready(); c != nil {
		return c, nil
	}
	m.loadMu.Lock()
	defer m.loadMu.Unlock()
	if c := m.ready(); c != nil {
		return c, nil
	}
	c, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.classifier = c
	m.mu.Unlock()
	return c, nil
}

// Classify loads the classifier if needed and classifies frame.
func (m *Model) Classify(ctx context.Context, frame model.Frame) ([]model.Prediction, error) {
	c, err := m.EnsureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return c.Classify(ctx, frame)
}

// Ready wraps an already-constructed classifier as a Loader.
func Ready(c Classifier) Loader {
	return func(context.Context) (Classifier, error) {
		return c, nil
	}
}

func sortPredictions(preds []model.Prediction, minConfidence float64) []model.Prediction {
	out := make([]model.Prediction, 0, len(preds))
	for _, p := range preds {
		if p.Label == "" || p.Confidence < minConfidence {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}
