package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
)

func TestModelLoadsOnce(t *testing.T) {
	calls := 0
	m := NewModel(func(context.Context) (Classifier, error) {
		calls++
		return StaticClassifier{Label: "beaker"}, nil
	})
	if m.Loaded() {
		t.Fatalf("expected model not loaded before first use")
	}
	for i := 0; i < 3; i++ {
		if _, err := m.EnsureLoaded(context.Background()); err != nil {
			t.Fatalf("ensure loaded: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 load, got %d", calls)
	}
	if !m.Loaded() {
		t.Fatalf("expected model loaded")
	}
}

func TestModelRetriesFailedLoad(t *testing.T) {
	calls := 0
	m := NewModel(func(context.Context) (Classifier, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("boom")
		}
		return StaticClassifier{Label: "flask"}, nil
	})
	if _, err := m.EnsureLoaded(context.Background()); err == nil {
		t.Fatalf("expected first load to fail")
	}
	if m.Loaded() {
		t.Fatalf("expected failed load to leave model unloaded")
	}
	preds, err := m.Classify(context.Background(), model.Frame{})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if len(preds) != 1 || preds[0].Label != "flask" {
		t.Fatalf("unexpected predictions %+v", preds)
	}
}

func TestLoadedDoesNotWaitForLoad(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	m := NewModel(func(context.Context) (Classifier, error) {
		close(entered)
		<-release
		return StaticClassifier{Label: "beaker"}, nil
	})
	done := make(chan error, 1)
	go func() {
		_, err := m.EnsureLoaded(context.Background())
		done <- err
	}()
	<-entered

	loaded := make(chan bool, 1)
	go func() {
		loaded <- m.Loaded()
	}()
	select {
	case got := <-loaded:
		if got {
			t.Fatalf("expected model not loaded while loading")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected Loaded to return while a load is running")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("ensure loaded: %v", err)
	}
	if !m.Loaded() {
		t.Fatalf("expected model loaded")
	}
}

func TestStaticClassifierEmptyLabel(t *testing.T) {
	preds, err := StaticClassifier{Label: "  "}.Classify(context.Background(), model.Frame{})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if len(preds) != 0 {
		t.Fatalf("expected no predictions, got %+v", preds)
	}
}

func TestHTTPClassifierSortsAndFilters(t *testing.T) {
	var got classifyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"predictions":[
			{"label":"cup","confidence":0.2},
			{"label":"beaker","confidence":0.9},
			{"label":"flask","confidence":0.6},
			{"label":"","confidence":0.95}
		]}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClassifier(HTTPConfig{Endpoint: srv.URL, Timeout: time.Second, MinConfidence: 0.5})
	if err != nil {
		t.Fatalf("new classifier: %v", err)
	}
	m := NewModel(c.Loader())
	preds, err := m.Classify(context.Background(), model.Frame{Data: []byte("img"), MIMEType: "image/png"})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if len(preds) != 2 || preds[0].Label != "beaker" || preds[1].Label != "flask" {
		t.Fatalf("unexpected predictions %+v", preds)
	}
	if got.ImageBase64 != base64.StdEncoding.EncodeToString([]byte("img")) || got.MIMEType != "image/png" {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestHTTPClassifierErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			_, _ = w.Write([]byte("not json"))
			return
		}
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, _ := NewHTTPClassifier(HTTPConfig{Endpoint: srv.URL})
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping to fail on 503")
	}
	if _, err := c.Classify(context.Background(), model.Frame{}); err == nil {
		t.Fatalf("expected classify to fail on 503")
	}

	bad, _ := NewHTTPClassifier(HTTPConfig{Endpoint: srv.URL + "/bad"})
	if _, err := bad.Classify(context.Background(), model.Frame{}); !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}

	if _, err := NewHTTPClassifier(HTTPConfig{}); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
}

func TestFileCameraDirectoryUsesNewestImage(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "a.png")
	newer := filepath.Join(dir, "b.jpg")
	if err := os.WriteFile(older, []byte("old"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(newer, []byte("new"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	stream, err := FileCamera{Path: dir}.Acquire(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	frame, err := stream.Frame(context.Background())
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	if string(frame.Data) != "new" || frame.MIMEType != "image/jpeg" {
		t.Fatalf("unexpected frame %q %q", frame.Data, frame.MIMEType)
	}

	if err := stream.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := stream.Release(); err != nil {
		t.Fatalf("second release: %v", err)
	}
	if _, err := stream.Frame(context.Background()); !errors.Is(err, ErrStreamReleased) {
		t.Fatalf("expected ErrStreamReleased, got %v", err)
	}
}

func TestFileCameraMissingSourceIsDenied(t *testing.T) {
	_, err := FileCamera{Path: filepath.Join(t.TempDir(), "missing.png")}.Acquire(context.Background())
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := (FileCamera{}).Acquire(context.Background()); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for empty path, got %v", err)
	}
}

func TestFileCameraEmptyDirectoryHasNoFrame(t *testing.T) {
	stream, err := FileCamera{Path: t.TempDir()}.Acquire(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := stream.Frame(context.Background()); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("expected ErrNoFrame, got %v", err)
	}
}
