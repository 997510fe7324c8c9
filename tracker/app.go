// Package tracker wires user actions to the weight store and the view.
package tracker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/LianHaeming/weightlog/chart"
	"github.com/LianHaeming/weightlog/models"
	"github.com/LianHaeming/weightlog/view"
)

// AlertInvalidEntry is shown when a record is submitted without a date or
// with a weight that is not a number.
const AlertInvalidEntry = "日付と体重を入力してください"

// ErrInvalidEntry carries AlertInvalidEntry as its message.
var ErrInvalidEntry = errors.New(AlertInvalidEntry)

// Store is the persistence the tracker needs.
type Store interface {
	Records() []models.Record
	SaveRecords([]models.Record) error
	Goal() (float64, bool)
	SaveGoal(float64) error
}

// Form holds the current input field values.
type Form struct {
	Date   string `json:"date"`
	Weight string `json:"weight"`
	Goal   string `json:"goal"`
}

// App is the application state: the store, the input fields, the goal
// status line and the view holding the current chart. Operations are
// serialized, so concurrent callers see one UI context.
type App struct {
	mu     sync.Mutex
	store  Store
	view   *view.View
	form   Form
	status string
	now    func() time.Time
	newID  func() string

	// set by an action, consumed by the next Reload
	keepForm bool
}

// Option configures an App.
type Option func(*App)

// WithClock overrides the clock used to prefill the date field.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithIDs overrides record id generation.
func WithIDs(newID func() string) Option {
	return func(a *App) { a.newID = newID }
}

func New(store Store, opts ...Option) *App {
	a := &App{
		store: store,
		view:  view.New(chart.DefaultOptions()),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load runs the startup sequence: prefill today's date, give legacy records
// an id, restore the goal field and render.
func (a *App) Load() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.assignMissingIDs(); err != nil {
		return err
	}
	a.freshLoad()
	a.render()
	return nil
}

// freshLoad resets the fields the way opening the page does: today's date,
// an empty weight, and the goal field restored from the store.
func (a *App) freshLoad() {
	a.form = Form{Date: a.now().Format("2006-01-02")}
	a.status = ""
	a.keepForm = false
	a.loadGoal()
}

// assignMissingIDs writes back ids for records persisted without one.
func (a *App) assignMissingIDs() error {
	records := a.store.Records()
	changed := false
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = a.newID()
			changed = true
		}
	}
	if !changed {
		return nil
	}
	log.WithField("records", len(records)).Info("assigned ids to stored records")
	if err := a.store.SaveRecords(records); err != nil {
		return fmt.Errorf("migrate record ids: %w", err)
	}
	return nil
}

// AddEntry appends a record. The date must be non-empty and the weight
// must read as a finite number; otherwise ErrInvalidEntry is returned and
// nothing changes. On success the weight field is cleared and the date
// field keeps the submitted date.
func (a *App) AddEntry(dateInput, weightInput string) (models.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.form.Date = dateInput
	a.form.Weight = weightInput

	weight, ok := models.ParseFinite(weightInput)
	if dateInput == "" || !ok {
		return models.Record{}, ErrInvalidEntry
	}

	rec := models.Record{ID: a.newID(), Date: dateInput, Weight: weight}
	records := append(a.store.Records(), rec)
	if err := a.store.SaveRecords(records); err != nil {
		return models.Record{}, err
	}

	a.render()
	a.updateGoalStatus()
	a.form.Weight = ""
	a.keepForm = true
	return rec, nil
}

// DeleteEntry removes the record at index. An index outside the current
// sequence is a no-op and reports false.
func (a *App) DeleteEntry(index int) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deleteAt(a.store.Records(), index)
}

// DeleteRecord removes the record with the given id. Unknown ids are a no-op.
func (a *App) DeleteRecord(id string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	records := a.store.Records()
	return a.deleteAt(records, models.IndexOf(records, id))
}

func (a *App) deleteAt(records []models.Record, index int) (bool, error) {
	remaining, ok := models.RemoveAt(records, index)
	if !ok {
		log.WithField("index", index).Debug("delete ignored, no such record")
		return false, nil
	}
	if err := a.store.SaveRecords(remaining); err != nil {
		return false, err
	}
	a.render()
	a.updateGoalStatus()
	a.keepForm = true
	return true, nil
}

// SaveGoal puts goalInput into the goal field and, when it reads as a
// finite number, persists it and refreshes the status. Anything else is
// ignored without feedback.
func (a *App) SaveGoal(goalInput string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.form.Goal = goalInput
	a.keepForm = true
	goal, ok := models.ParseFinite(goalInput)
	if !ok {
		log.WithField("goal", goalInput).Debug("goal ignored, not a number")
		return false, nil
	}
	if err := a.store.SaveGoal(goal); err != nil {
		return false, err
	}
	a.updateGoalStatus()
	return true, nil
}

// SetGoalInput edits the goal field without saving it.
func (a *App) SetGoalInput(goalInput string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.form.Goal = goalInput
}

// LoadGoal fills the goal field from the store and refreshes the status.
// With no stored goal the field and the status stay as they are.
func (a *App) LoadGoal() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loadGoal()
}

func (a *App) loadGoal() {
	goal, ok := a.store.Goal()
	if !ok {
		return
	}
	a.form.Goal = models.FormatGoal(goal)
	a.updateGoalStatus()
}

// UpdateGoalStatus recomputes the status line from the goal field and the
// stored records, and returns it.
func (a *App) UpdateGoalStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.updateGoalStatus()
	return a.status
}

func (a *App) updateGoalStatus() {
	a.status = GoalStatus(a.form.Goal, a.store.Records())
}

// Render rebuilds the table and the chart from the store.
func (a *App) Render() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.render()
}

func (a *App) render() {
	records := a.store.Records()
	a.view.RenderTable(records)
	a.view.RenderChart(records)
}

// Records returns the stored sequence.
func (a *App) Records() []models.Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Records()
}

// Goal returns the persisted goal, which may differ from the goal field.
func (a *App) Goal() (float64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Goal()
}

// Status returns the current status line.
func (a *App) Status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Form returns the current input fields.
func (a *App) Form() Form {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form
}

// Page is everything needed to draw the widget.
type Page struct {
	Form   Form
	Rows   []view.Row
	Chart  *chart.LineChart
	Status string
	Alert  string
}

// Page re-renders from the store and returns a snapshot of the widget. The
// snapshot owns its rows and chart.
func (a *App) Page() Page {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.page()
}

// Reload is a page load. Right after an action (add, delete or goal save)
// the fields are kept as the action left them; otherwise the date goes back
// to today and the goal field to the stored goal.
func (a *App) Reload() Page {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.keepForm {
		a.keepForm = false
	} else {
		a.freshLoad()
	}
	return a.page()
}

func (a *App) page() Page {
	records := a.store.Records()
	a.view.RenderTable(records)
	a.view.RenderChart(records)
	return Page{
		Form:   a.form,
		Rows:   append([]view.Row{}, a.view.Rows()...),
		Chart:  a.view.BuildChart(records),
		Status: a.status,
	}
}
