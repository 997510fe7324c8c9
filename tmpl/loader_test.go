package tmpl

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LianHaeming/weightlog/chart"
	"github.com/LianHaeming/weightlog/models"
	"github.com/LianHaeming/weightlog/tracker"
	"github.com/LianHaeming/weightlog/view"
)

func samplePage() tracker.Page {
	records := []models.Record{
		{ID: "a", Date: "2024-01-10", Weight: 70},
		{ID: "b", Date: "2024-01-01", Weight: 68.5},
	}
	labels, values := view.Series(records)
	return tracker.Page{
		Form:   tracker.Form{Date: "2024-03-15", Goal: "70"},
		Rows:   view.Table(records),
		Chart:  chart.NewLine(labels, values, chart.DefaultOptions()),
		Status: "最新の体重は目標より -1.5kg です",
	}
}

func TestIndexPage(t *testing.T) {
	templates, err := Load("v1")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, templates.ExecuteTemplate(&buf, "index.html", samplePage()))
	html := buf.String()

	assert.Contains(t, html, `data-asset-ver="v1"`)
	assert.Contains(t, html, `value="2024-03-15"`)
	assert.Contains(t, html, `value="70"`)
	assert.Contains(t, html, "最新の体重は目標より -1.5kg です")
	assert.Contains(t, html, "<td>68.5</td>")
	assert.Contains(t, html, "<td>70.0</td>")
	assert.Contains(t, html, `id="weightChart"`)
	assert.Contains(t, html, "<svg")
	assert.Contains(t, html, "<path")
	assert.NotContains(t, html, "alert(")
}

func TestIndexPageAlert(t *testing.T) {
	templates, err := Load("v1")
	require.NoError(t, err)

	page := samplePage()
	page.Alert = tracker.AlertInvalidEntry
	var buf bytes.Buffer
	require.NoError(t, templates.ExecuteTemplate(&buf, "index.html", page))
	assert.Contains(t, buf.String(), "alert(")
	assert.Contains(t, buf.String(), tracker.AlertInvalidEntry)
}

func TestPartials(t *testing.T) {
	templates, err := Load("v1")
	require.NoError(t, err)
	page := samplePage()

	var table bytes.Buffer
	require.NoError(t, templates.ExecuteTemplate(&table, "partials/entries-table.html", page.Rows))
	assert.Contains(t, table.String(), `id="dataTable"`)
	assert.NotContains(t, table.String(), "<html")

	var svg bytes.Buffer
	require.NoError(t, templates.ExecuteTemplate(&svg, "partials/weight-chart.html", page.Chart))
	assert.Contains(t, svg.String(), `id="weightChart"`)
	assert.Contains(t, svg.String(), `data-points="2"`)
	assert.Contains(t, svg.String(), "2024-01-01")

	var blank bytes.Buffer
	require.NoError(t, templates.ExecuteTemplate(&blank, "partials/weight-chart.html", chart.NewLine(nil, nil, chart.DefaultOptions())))
	assert.Contains(t, blank.String(), `id="weightChart"`)
	assert.NotContains(t, blank.String(), "<svg")

	var empty bytes.Buffer
	var none *chart.LineChart
	require.NoError(t, templates.ExecuteTemplate(&empty, "partials/weight-chart.html", none))
	assert.NotContains(t, empty.String(), "<svg")
}

func TestUnknownTemplate(t *testing.T) {
	templates, err := Load("v1")
	require.NoError(t, err)
	assert.Error(t, templates.ExecuteTemplate(&bytes.Buffer{}, "missing.html", nil))
}

func TestLoadFSBadTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.html":     {Data: []byte(`{{define "layout"}}{{template "content" .}}{{end}}`)},
		"partials/x.html": {Data: []byte(`{{define "x"}}x{{end}}`)},
		"broken.html":     {Data: []byte(`{{define "content"}}{{.Missing`)},
	}
	_, err := LoadFS(fsys, "v1")
	assert.Error(t, err)
}
