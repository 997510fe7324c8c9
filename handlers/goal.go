package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// HandleGetGoal returns the goal field and the status line.
func (d *Deps) HandleGetGoal(w http.ResponseWriter, r *http.Request) {
	form := d.App.Form()
	jsonOK(w, map[string]any{
		"goal":   form.Goal,
		"status": d.App.Status(),
	})
}

// UpdateGoalRequest is the JSON body for PUT goal.
type UpdateGoalRequest struct {
	Goal json.RawMessage `json:"goal"`
}

// HandleUpdateGoal saves the goal. Unlike the page form, API callers are
// told when the goal is not a number.
func (d *Deps) HandleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := d.App.SaveGoal(rawText(req.Goal))
	if err != nil {
		log.WithError(err).Error("save goal failed")
		jsonError(w, "Failed to save goal", http.StatusInternalServerError)
		return
	}
	if !saved {
		d.countInvalid("goal")
		jsonError(w, "goal must be a number", http.StatusBadRequest)
		return
	}
	d.countGoal()
	jsonOK(w, map[string]any{"success": true, "status": d.App.Status()})
}
