// Package view turns the record sequence into table rows and a chart.
package view

import (
	"github.com/LianHaeming/weightlog/chart"
	"github.com/LianHaeming/weightlog/models"
)

// Row is one table line. Index is the row's current position and changes
// whenever an earlier record is deleted; ID does not.
type Row struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Date   string `json:"date"`
	Weight string `json:"weight"`
}

// Table builds one row per record, in sequence order.
func Table(records []models.Record) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{
			Index:  i,
			ID:     r.ID,
			Date:   r.Date,
			Weight: models.FormatFixed1(r.Weight),
		}
	}
	return rows
}

// Series returns the chart labels and values for records.
func Series(records []models.Record) ([]string, []float64) {
	labels := make([]string, len(records))
	values := make([]float64, len(records))
	for i, r := range records {
		labels[i] = r.Date
		values[i] = r.Weight
	}
	return labels, values
}

// View owns the rendered table and the current chart. Each render replaces
// both; the previous chart is destroyed first.
type View struct {
	opts  chart.Options
	rows  []Row
	chart *chart.LineChart
}

func New(opts chart.Options) *View {
	return &View{opts: opts, rows: []Row{}}
}

// RenderTable rebuilds the table from records.
func (v *View) RenderTable(records []models.Record) []Row {
	v.rows = Table(records)
	return v.rows
}

// RenderChart destroys the current chart and lays out a new one.
func (v *View) RenderChart(records []models.Record) *chart.LineChart {
	if v.chart != nil {
		v.chart.Destroy()
	}
	v.chart = v.BuildChart(records)
	return v.chart
}

// BuildChart lays out a chart for records that the View does not keep, so
// later renders never destroy it.
func (v *View) BuildChart(records []models.Record) *chart.LineChart {
	labels, values := Series(records)
	return chart.NewLine(labels, values, v.opts)
}

// Rows returns the last rendered table.
func (v *View) Rows() []Row { return v.rows }

// Chart returns the last rendered chart, or nil before the first render.
func (v *View) Chart() *chart.LineChart { return v.chart }
