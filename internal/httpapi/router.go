// Package httpapi exposes the controller to a browser view layer.
package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// NewRouter wires the controller endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", handler.healthz).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/state", handler.state).Methods(http.MethodGet)
	api.HandleFunc("/screen/{name}", handler.goTo).Methods(http.MethodPost)
	api.HandleFunc("/back", handler.back).Methods(http.MethodPost)
	api.HandleFunc("/camera/start", handler.startCamera).Methods(http.MethodPost)
	api.HandleFunc("/camera/stop", handler.stopCamera).Methods(http.MethodPost)
	api.HandleFunc("/capture", handler.capture).Methods(http.MethodPost)
	api.HandleFunc("/quiz/answer", handler.selectAnswer).Methods(http.MethodPost)
	api.HandleFunc("/quiz/next", handler.next).Methods(http.MethodPost)
	api.HandleFunc("/quiz/previous", handler.previous).Methods(http.MethodPost)
	api.HandleFunc("/quiz/submit", handler.submit).Methods(http.MethodPost)
	api.HandleFunc("/quiz/save", handler.saveQuestion).Methods(http.MethodPost)
	api.HandleFunc("/answers", handler.showAnswers).Methods(http.MethodPost)
	api.HandleFunc("/answers/save-wrong", handler.saveWrong).Methods(http.MethodPost)
	api.HandleFunc("/library", handler.library).Methods(http.MethodGet)
	api.HandleFunc("/library/favorites", handler.clearFavorites).Methods(http.MethodDelete)
	api.HandleFunc("/library/favorites/{index:[0-9]+}", handler.removeFavorite).Methods(http.MethodDelete)
	api.HandleFunc("/library/recent", handler.clearRecent).Methods(http.MethodDelete)
	api.HandleFunc("/library/recent/{index:[0-9]+}", handler.removeRecent).Methods(http.MethodDelete)
	api.HandleFunc("/stats", handler.stats).Methods(http.MethodGet)

	return withRequestLogging(withCORS(r))
}

func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s -> %d (%s)", r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Truncate(time.Millisecond))
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
