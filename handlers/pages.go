package handlers

import (
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/LianHaeming/weightlog/tracker"
)

// EntryForm is the form body for adding a record.
type EntryForm struct {
	Date   string `schema:"date"`
	Weight string `schema:"weight"`
}

// DeleteForm is the form body of a row's delete button.
type DeleteForm struct {
	ID    string `schema:"id"`
	Index string `schema:"index"`
}

// GoalForm is the form body for saving the goal.
type GoalForm struct {
	Goal string `schema:"goal"`
}

// HandleHome renders the full widget as a fresh page load.
func (d *Deps) HandleHome(w http.ResponseWriter, r *http.Request) {
	d.render(w, http.StatusOK, "index.html", d.App.Reload())
}

// HandleAddEntryForm adds a record. Invalid input re-renders the page with
// the alert and nothing saved.
func (d *Deps) HandleAddEntryForm(w http.ResponseWriter, r *http.Request) {
	var form EntryForm
	if err := decodeForm(r, &form); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	if _, err := d.App.AddEntry(form.Date, form.Weight); err != nil {
		if errors.Is(err, tracker.ErrInvalidEntry) {
			d.countInvalid("entry")
			page := d.App.Page()
			page.Alert = tracker.AlertInvalidEntry
			d.render(w, http.StatusBadRequest, "index.html", page)
			return
		}
		log.WithError(err).Error("add entry failed")
		http.Error(w, "Failed to save entry", http.StatusInternalServerError)
		return
	}
	d.countAdded()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDeleteEntryForm deletes a row by id, falling back to its index for
// records stored without an id. Stale rows are ignored.
func (d *Deps) HandleDeleteEntryForm(w http.ResponseWriter, r *http.Request) {
	var form DeleteForm
	if err := decodeForm(r, &form); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	var (
		deleted bool
		err     error
	)
	if form.ID != "" {
		deleted, err = d.App.DeleteRecord(form.ID)
	} else if idx, convErr := strconv.Atoi(form.Index); convErr == nil {
		deleted, err = d.App.DeleteEntry(idx)
	}
	if err != nil {
		log.WithError(err).Error("delete entry failed")
		http.Error(w, "Failed to delete entry", http.StatusInternalServerError)
		return
	}
	if deleted {
		d.countDeleted()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleSaveGoalForm saves the goal. A non-numeric goal is ignored.
func (d *Deps) HandleSaveGoalForm(w http.ResponseWriter, r *http.Request) {
	var form GoalForm
	if err := decodeForm(r, &form); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	saved, err := d.App.SaveGoal(form.Goal)
	if err != nil {
		log.WithError(err).Error("save goal failed")
		http.Error(w, "Failed to save goal", http.StatusInternalServerError)
		return
	}
	if saved {
		d.countGoal()
	} else {
		d.countInvalid("goal")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleTablePartial returns just the records table.
func (d *Deps) HandleTablePartial(w http.ResponseWriter, r *http.Request) {
	d.render(w, http.StatusOK, "partials/entries-table.html", d.App.Page().Rows)
}

// HandleChartPartial returns just the chart SVG.
func (d *Deps) HandleChartPartial(w http.ResponseWriter, r *http.Request) {
	d.render(w, http.StatusOK, "partials/weight-chart.html", d.App.Page().Chart)
}

func decodeForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return formDecoder.Decode(dst, r.PostForm)
}

func (d *Deps) render(w http.ResponseWriter, code int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := d.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.WithError(err).WithField("template", name).Error("template error")
	}
}
