// Package app drives the scan, quiz and library flow. Views subscribe to
// state changes and render Snapshot; the controller never renders.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/library"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/quiz"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/vision"
)

const (
	StatusLoadingModel  = "Loading AI model..."
	StatusModelReady    = "Model Ready!"
	StatusModelFailed   = "Cannot load AI model."
	StatusCameraOn      = "Camera ON – Hold object steadily."
	StatusCameraStopped = "Camera stopped."
	StatusCameraDenied  = "Camera permission denied."
	StatusStartCamera   = "Start camera first."
	StatusNoDetection   = "Cannot detect object. Try again."
	StatusQuestionSaved = "Question saved to favourites."
	StatusWrongSaved    = "All wrong questions saved."
	StatusNothingWrong  = "No wrong answers to save."
)

var (
	ErrInvalidTransition = errors.New("screen not reachable from here")
	ErrCameraOff         = errors.New("camera is not started")
	ErrCaptureInProgress = errors.New("capture already in progress")
	ErrNotCompleted      = errors.New("quiz is not completed")
)

// Event is delivered to subscribers after every state change.
type Event struct {
	Screen    Screen
	SessionID string
	Status    string
}

// Controller owns the quiz session and the active screen.
type Controller struct {
	lib    *library.Manager
	model  *vision.Model
	camera vision.Camera

	mu         sync.Mutex
	screen     Screen
	status     string
	prediction string
	session    *quiz.Session
	stream     vision.Stream
	cameraGen  int // bumped on every release
	capturing  bool
	score      *model.ScoreResult
	stats      *model.StatsRecord
	filter     quiz.Filter

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(Event)
}

// New returns a controller on the home screen with an empty session.
func New(lib *library.Manager, m *vision.Model, camera vision.Camera) *Controller {
	return &Controller{
		lib:     lib,
		model:   m,
		camera:  camera,
		screen:  ScreenHome,
		session: quiz.NewSession(),
		filter:  quiz.FilterAll,
		subs:    make(map[int]func(Event)),
	}
}

// Library exposes the collections manager for listing views.
func (c *Controller) Library() *library.Manager {
	return c.lib
}

// Subscribe registers fn for state-change events and returns a function
// that removes it. fn is called without the controller lock held.
func (c *Controller) Subscribe(fn func(Event)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) notify() {
	c.mu.Lock()
	ev := Event{Screen: c.screen, SessionID: c.session.ID(), Status: c.status}
	c.mu.Unlock()

	c.subMu.Lock()
	fns := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (c *Controller) setStatus(status string) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
	c.notify()
}

// Screen returns the active screen.
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// GoTo switches to screen if it is reachable from the active one.
// Leaving the scan screen stops the camera.
func (c *Controller) GoTo(to Screen) error {
	c.mu.Lock()
	from := c.screen
	if from == to {
		c.mu.Unlock()
		return nil
	}
	if !canGo(from, to) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if to == ScreenQuiz && c.session.State() == quiz.StateEmpty {
		c.mu.Unlock()
		return fmt.Errorf("%w: no quiz started", ErrInvalidTransition)
	}
	if to == ScreenScore && c.session.State() != quiz.StateCompleted {
		c.mu.Unlock()
		return ErrNotCompleted
	}
	if from == ScreenScan {
		c.releaseLocked()
	}
	c.screen = to
	c.mu.Unlock()
	c.notify()
	return nil
}

// Back follows the back button of the active screen.
func (c *Controller) Back() error {
	c.mu.Lock()
	to, ok := backOf[c.screen]
	c.mu.Unlock()
	if !ok {
		return nil
	}
	return c.GoTo(to)
}

// StartCamera acquires the frame stream. A denied camera is reported
// through the status line only.
func (c *Controller) StartCamera(ctx context.Context) error {
	c.mu.Lock()
	if c.stream != nil {
		c.status = StatusCameraOn
		c.mu.Unlock()
		c.notify()
		return nil
	}
	gen := c.cameraGen
	c.mu.Unlock()

	stream, err := c.camera.Acquire(ctx)

	c.mu.Lock()
	switch {
	case err != nil:
		log.Printf("camera acquire failed: %v", err)
		c.status = StatusCameraDenied
	case c.stream != nil || c.cameraGen != gen:
		// Another start won, or the camera was stopped while acquiring.
		if rerr := stream.Release(); rerr != nil {
			log.Printf("camera release failed: %v", rerr)
		}
		if c.stream != nil {
			c.status = StatusCameraOn
		}
	default:
		c.stream = stream
		c.status = StatusCameraOn
	}
	c.mu.Unlock()
	c.notify()
	if err != nil && !errors.Is(err, vision.ErrPermissionDenied) {
		return fmt.Errorf("failed to start camera: %w", err)
	}
	return nil
}

// StopCamera releases the frame stream, if any.
func (c *Controller) StopCamera() {
	c.mu.Lock()
	c.releaseLocked()
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) releaseLocked() {
	if c.stream != nil {
		if err := c.stream.Release(); err != nil {
			log.Printf("camera release failed: %v", err)
		}
		c.stream = nil
	}
	c.cameraGen++
	c.status = StatusCameraStopped
}

// CameraOn reports whether a stream is held.
func (c *Controller) CameraOn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream != nil
}

// Capture classifies the current frame and, on a detection, records the
// scan and starts a new quiz for the top label. Only one capture runs at a time.
func (c *Controller) Capture(ctx context.Context) error {
	c.mu.Lock()
	if c.capturing {
		c.mu.Unlock()
		return ErrCaptureInProgress
	}
	c.capturing = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.capturing = false
		c.mu.Unlock()
	}()

	if !c.model.Loaded() {
		c.setStatus(StatusLoadingModel)
		if _, err := c.model.EnsureLoaded(ctx); err != nil {
			c.setStatus(StatusModelFailed)
			return fmt.Errorf("failed to load model: %w", err)
		}
		c.setStatus(StatusModelReady)
	}

	c.mu.Lock()
	stream := c.stream
	c.mu.Unlock()
	if stream == nil {
		c.setStatus(StatusStartCamera)
		return ErrCameraOff
	}

	frame, err := stream.Frame(ctx)
	if errors.Is(err, vision.ErrNoFrame) {
		c.setPrediction(StatusNoDetection)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to capture frame: %w", err)
	}
	preds, err := c.model.Classify(ctx, frame)
	if err != nil {
		return fmt.Errorf("failed to classify frame: %w", err)
	}
	if len(preds) == 0 {
		c.setPrediction(StatusNoDetection)
		return nil
	}

	top := preds[0]
	if _, err := c.lib.RecordScan(ctx, top.Label); err != nil {
		log.Printf("record scan failed: %v", err)
	}

	c.mu.Lock()
	if err := c.session.Start(top.Label, quiz.Generate(top.Label)); err != nil {
		c.mu.Unlock()
		return err
	}
	c.prediction = fmt.Sprintf("Detected: %s (%.1f%%)", top.Label, top.Confidence*100)
	c.score = nil
	c.stats = nil
	c.filter = quiz.FilterAll
	c.screen = ScreenQuiz
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *Controller) setPrediction(text string) {
	c.mu.Lock()
	c.prediction = text
	c.mu.Unlock()
	c.notify()
}

// SelectAnswer records option for the displayed question.
func (c *Controller) SelectAnswer(option int) error {
	return c.sessionOp(func(s *quiz.Session) error { return s.SelectAnswer(option) })
}

// Next shows the following question.
func (c *Controller) Next() error {
	return c.sessionOp((*quiz.Session).Next)
}

// Previous shows the preceding question.
func (c *Controller) Previous() error {
	return c.sessionOp((*quiz.Session).Previous)
}

func (c *Controller) sessionOp(op func(*quiz.Session) error) error {
	c.mu.Lock()
	err := op(c.session)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.notify()
	return nil
}

// Submit completes the quiz, folds the score into the persisted stats and
// shows the score screen.
func (c *Controller) Submit(ctx context.Context) (model.ScoreResult, error) {
	c.mu.Lock()
	score, err := c.session.Submit()
	if err != nil {
		c.mu.Unlock()
		return model.ScoreResult{}, err
	}
	rec, err := c.lib.RecordCompletion(ctx, score)
	if err != nil {
		log.Printf("record completion failed: %v", err)
	}
	c.score = &score
	if err == nil {
		c.stats = &rec
	}
	c.screen = ScreenScore
	c.mu.Unlock()
	c.notify()
	return score, nil
}

// ShowAnswers opens the answer review with filter. Only a completed quiz can be reviewed.
func (c *Controller) ShowAnswers(filter quiz.Filter) error {
	c.mu.Lock()
	if c.session.State() != quiz.StateCompleted {
		c.mu.Unlock()
		return ErrNotCompleted
	}
	if c.screen != ScreenScore && c.screen != ScreenAnswer {
		from := c.screen
		c.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, ScreenAnswer)
	}
	c.filter = filter
	c.screen = ScreenAnswer
	c.mu.Unlock()
	c.notify()
	return nil
}

// SaveQuestion adds the displayed question to the favourites.
func (c *Controller) SaveQuestion(ctx context.Context) (model.FavoriteEntry, error) {
	c.mu.Lock()
	entry, err := c.lib.SaveQuestion(ctx, c.session)
	if err == nil {
		c.status = StatusQuestionSaved
	}
	c.mu.Unlock()
	if err != nil {
		return model.FavoriteEntry{}, err
	}
	c.notify()
	return entry, nil
}

// SaveWrongAnswers adds every wrong or unanswered question of the finished quiz to the favourites.
func (c *Controller) SaveWrongAnswers(ctx context.Context) (int, error) {
	c.mu.Lock()
	if c.session.State() != quiz.StateCompleted {
		c.mu.Unlock()
		return 0, ErrNotCompleted
	}
	n, err := c.lib.SaveWrongAnswers(ctx, c.session)
	if err == nil {
		c.status = StatusWrongSaved
		if n == 0 {
			c.status = StatusNothingWrong
		}
	}
	c.mu.Unlock()
	if err != nil {
		return 0, err
	}
	c.notify()
	return n, nil
}

// RemoveFavorite deletes the favourite at index.
func (c *Controller) RemoveFavorite(ctx context.Context, index int) error {
	return c.libraryOp(func() error { return c.lib.RemoveFavoriteAt(ctx, index) })
}

// RemoveRecentScan deletes the scan history entry at index.
func (c *Controller) RemoveRecentScan(ctx context.Context, index int) error {
	return c.libraryOp(func() error { return c.lib.RemoveRecentScanAt(ctx, index) })
}

// ClearFavorites empties the favourites.
func (c *Controller) ClearFavorites(ctx context.Context) error {
	return c.libraryOp(func() error { return c.lib.ClearFavorites(ctx) })
}

// ClearRecentScans empties the scan history.
func (c *Controller) ClearRecentScans(ctx context.Context) error {
	return c.libraryOp(func() error { return c.lib.ClearRecentScans(ctx) })
}

func (c *Controller) libraryOp(op func() error) error {
	if err := op(); err != nil {
		return err
	}
	c.notify()
	return nil
}

// Close releases the camera.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stream != nil {
		_ = c.stream.Release()
		c.stream = nil
	}
	c.cameraGen++
}
