package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/app"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/library"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/quiz"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/stats"
)

// Handler serves the view API over one controller.
type Handler struct {
	ctrl *app.Controller
}

// NewHandler returns a Handler driving ctrl.
func NewHandler(ctrl *app.Controller) *Handler {
	return &Handler{ctrl: ctrl}
}

type answerRequest struct {
	Option *int `json:"option"`
}

type filterRequest struct {
	Filter string `json:"filter"`
}

type libraryResponse struct {
	Favorites   []model.FavoriteEntry   `json:"favorites"`
	RecentScans []model.RecentScanEntry `json:"recent_scans"`
}

type statsResponse struct {
	Stats   *model.StatsRecord `json:"stats"`
	Average int                `json:"average,omitempty"`
	Summary string             `json:"summary,omitempty"`
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) state(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Snapshot())
}

func (h *Handler) goTo(w http.ResponseWriter, r *http.Request) {
	screen, err := app.ParseScreen(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.respond(w, "goTo", h.ctrl.GoTo(screen))
}

func (h *Handler) back(w http.ResponseWriter, _ *http.Request) {
	h.respond(w, "back", h.ctrl.Back())
}

func (h *Handler) startCamera(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "startCamera", h.ctrl.StartCamera(r.Context()))
}

func (h *Handler) stopCamera(w http.ResponseWriter, _ *http.Request) {
	h.ctrl.StopCamera()
	h.respond(w, "stopCamera", nil)
}

func (h *Handler) capture(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "capture", h.ctrl.Capture(r.Context()))
}

func (h *Handler) selectAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Option == nil {
		log.Printf("selectAnswer decode error: %v", err)
		writeError(w, http.StatusBadRequest, "option is required")
		return
	}
	h.respond(w, "selectAnswer", h.ctrl.SelectAnswer(*req.Option))
}

func (h *Handler) next(w http.ResponseWriter, _ *http.Request) {
	h.respond(w, "next", h.ctrl.Next())
}

func (h *Handler) previous(w http.ResponseWriter, _ *http.Request) {
	h.respond(w, "previous", h.ctrl.Previous())
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	_, err := h.ctrl.Submit(r.Context())
	h.respond(w, "submit", err)
}

func (h *Handler) saveQuestion(w http.ResponseWriter, r *http.Request) {
	_, err := h.ctrl.SaveQuestion(r.Context())
	h.respond(w, "saveQuestion", err)
}

func (h *Handler) showAnswers(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("showAnswers decode error: %v", err)
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	filter, err := quiz.ParseFilter(req.Filter)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(w, "showAnswers", h.ctrl.ShowAnswers(filter))
}

func (h *Handler) saveWrong(w http.ResponseWriter, r *http.Request) {
	_, err := h.ctrl.SaveWrongAnswers(r.Context())
	h.respond(w, "saveWrong", err)
}

func (h *Handler) library(w http.ResponseWriter, r *http.Request) {
	lib := h.ctrl.Library()
	favs, err := lib.Favorites(r.Context())
	if err != nil {
		log.Printf("library internal error: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	recent, err := lib.RecentScans(r.Context())
	if err != nil {
		log.Printf("library internal error: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, libraryResponse{Favorites: favs, RecentScans: recent})
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	idx, _ := strconv.Atoi(mux.Vars(r)["index"])
	h.respondLibrary(w, r, "removeFavorite", h.ctrl.RemoveFavorite(r.Context(), idx))
}

func (h *Handler) removeRecent(w http.ResponseWriter, r *http.Request) {
	idx, _ := strconv.Atoi(mux.Vars(r)["index"])
	h.respondLibrary(w, r, "removeRecent", h.ctrl.RemoveRecentScan(r.Context(), idx))
}

func (h *Handler) clearFavorites(w http.ResponseWriter, r *http.Request) {
	h.respondLibrary(w, r, "clearFavorites", h.ctrl.ClearFavorites(r.Context()))
}

func (h *Handler) clearRecent(w http.ResponseWriter, r *http.Request) {
	h.respondLibrary(w, r, "clearRecent", h.ctrl.ClearRecentScans(r.Context()))
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	rec, err := h.ctrl.Library().Stats(r.Context())
	if err != nil {
		log.Printf("stats internal error: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := statsResponse{Stats: rec}
	if rec != nil {
		resp.Average = stats.Average(*rec)
		resp.Summary = stats.SummaryLine(*rec)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) respond(w http.ResponseWriter, op string, err error) {
	if err != nil {
		status := statusFor(err)
		log.Printf("%s failed: status=%d err=%v", op, status, err)
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.Snapshot())
}

func (h *Handler) respondLibrary(w http.ResponseWriter, r *http.Request, op string, err error) {
	if err != nil {
		status := statusFor(err)
		log.Printf("%s failed: status=%d err=%v", op, status, err)
		writeError(w, status, err.Error())
		return
	}
	h.library(w, r)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, quiz.ErrOptionOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, library.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, app.ErrInvalidTransition),
		errors.Is(err, app.ErrCameraOff),
		errors.Is(err, app.ErrCaptureInProgress),
		errors.Is(err, app.ErrNotCompleted),
		errors.Is(err, quiz.ErrNotActive),
		errors.Is(err, quiz.ErrNoQuestions):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
