package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/LianHaeming/weightlog/tracker"
	"github.com/LianHaeming/weightlog/view"
)

// HandleListRecords returns the stored records in insertion order.
func (d *Deps) HandleListRecords(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, d.App.Records())
}

// AddRecordRequest is the JSON body for POST records. Weight is taken as
// text so "68.5" and 68.5 are both accepted.
type AddRecordRequest struct {
	Date   string          `json:"date"`
	Weight json.RawMessage `json:"weight"`
}

// HandleAddRecord appends a record.
func (d *Deps) HandleAddRecord(w http.ResponseWriter, r *http.Request) {
	var req AddRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := d.App.AddEntry(req.Date, rawText(req.Weight))
	if err != nil {
		if errors.Is(err, tracker.ErrInvalidEntry) {
			d.countInvalid("entry")
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("add record failed")
		jsonError(w, "Failed to save record", http.StatusInternalServerError)
		return
	}
	d.countAdded()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"record": rec,
		"status": d.App.Status(),
	})
}

// HandleDeleteRecord deletes a record by id.
func (d *Deps) HandleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	deleted, err := d.App.DeleteRecord(mux.Vars(r)["id"])
	d.finishDelete(w, deleted, err)
}

// HandleDeleteRecordAt deletes the record at a position.
func (d *Deps) HandleDeleteRecordAt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		jsonError(w, "Invalid index", http.StatusBadRequest)
		return
	}
	deleted, err := d.App.DeleteEntry(index)
	d.finishDelete(w, deleted, err)
}

func (d *Deps) finishDelete(w http.ResponseWriter, deleted bool, err error) {
	if err != nil {
		log.WithError(err).Error("delete record failed")
		jsonError(w, "Failed to delete", http.StatusInternalServerError)
		return
	}
	if !deleted {
		jsonError(w, "Record not found", http.StatusNotFound)
		return
	}
	d.countDeleted()
	jsonOK(w, map[string]any{"success": true, "status": d.App.Status()})
}

// HandleGetStatus returns the goal status line for the current goal field.
func (d *Deps) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, map[string]any{"status": d.App.UpdateGoalStatus()})
}

// ChartResponse is the chart series with the table rows it was built from.
type ChartResponse struct {
	Labels []string   `json:"labels"`
	Values []float64  `json:"values"`
	Rows   []view.Row `json:"rows"`
}

// HandleGetChart returns the chart series.
func (d *Deps) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	page := d.App.Page()
	resp := ChartResponse{Labels: []string{}, Values: []float64{}, Rows: page.Rows}
	if page.Chart != nil {
		resp.Labels = page.Chart.Labels
		resp.Values = page.Chart.Values
	}
	jsonOK(w, resp)
}

func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func (d *Deps) countAdded() {
	if d.Metrics != nil {
		d.Metrics.EntriesAdded.Inc()
	}
}

func (d *Deps) countDeleted() {
	if d.Metrics != nil {
		d.Metrics.EntriesDeleted.Inc()
	}
}

func (d *Deps) countGoal() {
	if d.Metrics != nil {
		d.Metrics.GoalSaves.Inc()
	}
}

func (d *Deps) countInvalid(kind string) {
	if d.Metrics != nil {
		d.Metrics.Invalid.WithLabelValues(kind).Inc()
	}
}

func jsonOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
