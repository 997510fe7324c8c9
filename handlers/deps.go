package handlers

import (
	"github.com/gorilla/schema"

	"github.com/LianHaeming/weightlog/metrics"
	"github.com/LianHaeming/weightlog/tmpl"
	"github.com/LianHaeming/weightlog/tracker"
)

// Deps holds all handler dependencies.
type Deps struct {
	App       *tracker.App
	Templates *tmpl.Templates
	Metrics   *metrics.Metrics
}

var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()
