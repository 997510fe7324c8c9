package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Router builds the HTTP routes.
func (d *Deps) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	// Page + form posts (full HTML)
	r.HandleFunc("/", d.HandleHome).Methods(http.MethodGet)
	r.HandleFunc("/entries", d.HandleAddEntryForm).Methods(http.MethodPost)
	r.HandleFunc("/entries/delete", d.HandleDeleteEntryForm).Methods(http.MethodPost)
	r.HandleFunc("/goal", d.HandleSaveGoalForm).Methods(http.MethodPost)
	r.HandleFunc("/partials/table", d.HandleTablePartial).Methods(http.MethodGet)
	r.HandleFunc("/partials/chart", d.HandleChartPartial).Methods(http.MethodGet)

	// JSON API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/records", d.HandleListRecords).Methods(http.MethodGet)
	api.HandleFunc("/records", d.HandleAddRecord).Methods(http.MethodPost)
	api.HandleFunc("/records/index/{index:[0-9]+}", d.HandleDeleteRecordAt).Methods(http.MethodDelete)
	api.HandleFunc("/records/{id}", d.HandleDeleteRecord).Methods(http.MethodDelete)
	api.HandleFunc("/goal", d.HandleGetGoal).Methods(http.MethodGet)
	api.HandleFunc("/goal", d.HandleUpdateGoal).Methods(http.MethodPut)
	api.HandleFunc("/status", d.HandleGetStatus).Methods(http.MethodGet)
	api.HandleFunc("/chart", d.HandleGetChart).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		jsonOK(w, map[string]any{"ok": true})
	}).Methods(http.MethodGet)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)
	}

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}
