// Package chart builds the single-series weight line chart and renders it
// as SVG with go-chart.
package chart

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"math"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Options controls the chart size and series styling.
type Options struct {
	Width    int
	Height   int
	MaxTicks int
	Label    string
	Color    string // a named color or "#rrggbb"
}

// DefaultOptions returns the geometry used by the page.
func DefaultOptions() Options {
	return Options{
		Width:    640,
		Height:   320,
		MaxTicks: 6,
		Label:    "体重 (kg)",
		Color:    "blue",
	}
}

// Tick is a labelled y-axis gridline.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// LineChart is one line series. Labels keep their input order and
// duplicates, so a series entered out of date order doubles back.
type LineChart struct {
	Label  string    `json:"label"`
	Color  string    `json:"color"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	YMin   float64   `json:"yMin"`
	YMax   float64   `json:"yMax"`
	YTicks []Tick    `json:"yTicks"`

	graph     gochart.Chart
	destroyed bool
}

// NewLine lays out labels against values. Extra labels or values beyond the
// shorter of the two are dropped.
func NewLine(labels []string, values []float64, opts Options) *LineChart {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.MaxTicks < 2 {
		opts.MaxTicks = 2
	}
	n := len(labels)
	if len(values) < n {
		n = len(values)
	}

	c := &LineChart{
		Label:  opts.Label,
		Color:  opts.Color,
		Width:  opts.Width,
		Height: opts.Height,
		Labels: append([]string{}, labels[:n]...),
		Values: append([]float64{}, values[:n]...),
		YTicks: []Tick{},
	}
	if n == 0 {
		return c
	}

	lo, hi := c.Values[0], c.Values[0]
	for _, v := range c.Values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	c.YMin, c.YMax, c.YTicks = niceScale(lo, hi, opts.MaxTicks)
	c.graph = c.build(opts)
	return c
}

// build maps the series onto a go-chart line. X is the position in the
// sequence, never the date, and both axes get explicit ranges so flat and
// single-point series still have a non-zero span.
func (c *LineChart) build(opts Options) gochart.Chart {
	n := len(c.Values)
	xs := make([]float64, n)
	xTicks := make([]gochart.Tick, n)
	for i := range xs {
		xs[i] = float64(i)
		xTicks[i] = gochart.Tick{Value: xs[i], Label: html.EscapeString(c.Labels[i])}
	}
	xMin, xMax := 0.0, float64(n-1)
	if n == 1 {
		xMin, xMax = -1, 1
	}

	yTicks := make([]gochart.Tick, len(c.YTicks))
	for i, t := range c.YTicks {
		yTicks[i] = gochart.Tick{Value: t.Value, Label: t.Label}
	}

	color := seriesColor(opts.Color)
	return gochart.Chart{
		Width:  opts.Width,
		Height: opts.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 16, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: xTicks,
		},
		YAxis: gochart.YAxis{
			Name:  opts.Label,
			Range: &gochart.ContinuousRange{Min: c.YMin, Max: c.YMax},
			Ticks: yTicks,
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    opts.Label,
				XValues: xs,
				YValues: append([]float64{}, c.Values...),
				Style: gochart.Style{
					StrokeColor: color,
					StrokeWidth: 2,
					DotColor:    color,
					DotWidth:    3,
				},
			},
		},
	}
}

// SVG renders the chart. An empty or destroyed chart renders nothing.
func (c *LineChart) SVG() (template.HTML, error) {
	if c.Empty() {
		return "", nil
	}
	var buf bytes.Buffer
	if err := c.graph.Render(gochart.SVG, &buf); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Empty reports whether there is nothing to plot.
func (c *LineChart) Empty() bool {
	return c == nil || len(c.Values) == 0
}

// Destroy releases the series. A destroyed chart plots nothing.
func (c *LineChart) Destroy() {
	if c == nil {
		return
	}
	c.destroyed = true
	c.Labels, c.Values, c.YTicks = nil, nil, nil
	c.graph = gochart.Chart{}
}

// Destroyed reports whether Destroy has been called.
func (c *LineChart) Destroyed() bool {
	return c != nil && c.destroyed
}

var namedColors = map[string]drawing.Color{
	"blue":  drawing.ColorBlue,
	"red":   drawing.ColorRed,
	"green": drawing.ColorGreen,
	"black": drawing.ColorBlack,
}

func seriesColor(name string) drawing.Color {
	if strings.HasPrefix(name, "#") {
		return drawing.ColorFromHex(strings.TrimPrefix(name, "#"))
	}
	if c, ok := namedColors[name]; ok {
		return c
	}
	return drawing.ColorBlue
}

// niceScale widens [lo, hi] to round tick boundaries without forcing zero
// into the range.
func niceScale(lo, hi float64, maxTicks int) (float64, float64, []Tick) {
	if lo == hi {
		lo--
		hi++
	}
	if span := hi - lo; math.IsInf(span, 0) || span > math.MaxFloat64/16 {
		return wideScale(lo, hi)
	}
	step := niceNum(niceNum(hi-lo, false)/float64(maxTicks-1), true)
	start := math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step

	decimals := 0
	if step < 1 {
		decimals = int(math.Ceil(-math.Log10(step)))
	}
	var ticks []Tick
	count := int(math.Round((end - start) / step))
	for i := 0; i <= count; i++ {
		v := roundTo(start+float64(i)*step, decimals)
		ticks = append(ticks, Tick{Value: v, Label: strconv.FormatFloat(v, 'f', decimals, 64)})
	}
	return roundTo(start, decimals), roundTo(end, decimals), ticks
}

// wideScale handles spans too large to round. The range is clamped to a
// quarter of the float64 range on each side so that offsets from the
// minimum stay finite.
func wideScale(lo, hi float64) (float64, float64, []Tick) {
	limit := math.MaxFloat64 / 4
	lo = math.Max(lo, -limit)
	hi = math.Min(hi, limit)
	ticks := []Tick{
		{Value: lo, Label: strconv.FormatFloat(lo, 'g', 3, 64)},
		{Value: hi, Label: strconv.FormatFloat(hi, 'g', 3, 64)},
	}
	return lo, hi, ticks
}

// niceNum picks 1, 2, 5 or 10 times a power of ten close to x.
func niceNum(x float64, round bool) float64 {
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	switch {
	case round && f < 1.5:
		nf = 1
	case round && f < 3:
		nf = 2
	case round && f < 7:
		nf = 5
	case round:
		nf = 10
	case f <= 1:
		nf = 1
	case f <= 2:
		nf = 2
	case f <= 5:
		nf = 5
	default:
		nf = 10
	}
	return nf * math.Pow(10, exp)
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
