package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/app"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/library"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/store"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/vision"
)

type stillCamera struct{}

func (stillCamera) Acquire(context.Context) (vision.Stream, error) {
	return stillStream{}, nil
}

type stillStream struct{}

func (stillStream) Frame(context.Context) (model.Frame, error) {
	return model.Frame{Data: []byte("x"), MIMEType: "image/png"}, nil
}

func (stillStream) Release() error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	st, err := store.NewByEngine(store.EngineJSON, filepath.Join(t.TempDir(), "arquiz.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	lib := library.New(store.NewCollections(st))
	ctrl := app.New(lib, vision.NewModel(vision.Ready(vision.StaticClassifier{Label: "Beaker"})), stillCamera{})
	return NewRouter(NewHandler(ctrl))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) app.Snapshot {
	t.Helper()
	var snap app.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return snap
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodOptions, "/api/v1/capture", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected Access-Control-Allow-Origin '*', got %q", got)
	}
}

func TestInvalidTransitionConflicts(t *testing.T) {
	h := newTestRouter(t)
	if rec := do(t, h, http.MethodPost, "/api/v1/screen/score", ""); rec.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/v1/screen/nowhere", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/v1/capture", ""); rec.Code != http.StatusConflict {
		t.Fatalf("expected capture without camera to conflict, got %d", rec.Code)
	}
}

func TestQuizOverHTTP(t *testing.T) {
	h := newTestRouter(t)
	steps := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/api/v1/screen/scan", ""},
		{http.MethodPost, "/api/v1/camera/start", ""},
		{http.MethodPost, "/api/v1/capture", ""},
		{http.MethodPost, "/api/v1/quiz/answer", `{"option":0}`},
		{http.MethodPost, "/api/v1/quiz/next", ""},
		{http.MethodPost, "/api/v1/quiz/answer", `{"option":3}`},
		{http.MethodPost, "/api/v1/quiz/submit", ""},
	}
	var snap app.Snapshot
	for _, s := range steps {
		rec := do(t, h, s.method, s.path, s.body)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s %s: expected status 200, got %d: %s", s.method, s.path, rec.Code, rec.Body.String())
		}
		snap = decodeSnapshot(t, rec)
	}
	if snap.Screen != app.ScreenScore || snap.Score == nil || snap.Score.Correct != 1 || snap.Score.Total != 5 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Stats == nil || snap.Stats.LastPercent != 20 {
		t.Fatalf("unexpected stats %+v", snap.Stats)
	}

	rec := do(t, h, http.MethodPost, "/api/v1/answers", `{"filter":"wrong"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	snap = decodeSnapshot(t, rec)
	if snap.Screen != app.ScreenAnswer || len(snap.Review) != 4 {
		t.Fatalf("expected 4 wrong answers on answer screen, got %+v", snap)
	}
	if rec := do(t, h, http.MethodPost, "/api/v1/answers", `{"filter":"bogus"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/v1/quiz/answer", `{"option":1}`); rec.Code != http.StatusConflict {
		t.Fatalf("expected answering a finished quiz to conflict, got %d", rec.Code)
	}

	if rec := do(t, h, http.MethodPost, "/api/v1/answers/save-wrong", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/api/v1/library", "")
	var lib libraryResponse
	if err := json.NewDecoder(rec.Body).Decode(&lib); err != nil {
		t.Fatalf("decode library: %v", err)
	}
	if len(lib.Favorites) != 4 || len(lib.RecentScans) != 1 {
		t.Fatalf("unexpected library %+v", lib)
	}

	if rec := do(t, h, http.MethodDelete, "/api/v1/library/favorites/9", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/api/v1/library/favorites/0", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodDelete, "/api/v1/library/recent", "")
	lib = libraryResponse{}
	if err := json.NewDecoder(rec.Body).Decode(&lib); err != nil {
		t.Fatalf("decode library: %v", err)
	}
	if len(lib.Favorites) != 3 || len(lib.RecentScans) != 0 {
		t.Fatalf("unexpected library after removals %+v", lib)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/stats", "")
	var sr statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&sr); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if sr.Stats == nil || sr.Stats.Attempts != 1 || sr.Summary != "Last: 20%  |  Best: 20%  |  Attempts: 1  |  Avg: 20%" {
		t.Fatalf("unexpected stats response %+v", sr)
	}
}

func TestSelectAnswerValidation(t *testing.T) {
	h := newTestRouter(t)
	_ = do(t, h, http.MethodPost, "/api/v1/camera/start", "")
	_ = do(t, h, http.MethodPost, "/api/v1/capture", "")
	if rec := do(t, h, http.MethodPost, "/api/v1/quiz/answer", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing option, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/v1/quiz/answer", `{"option":4}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for out-of-range option, got %d", rec.Code)
	}
}
