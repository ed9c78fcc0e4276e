// Package timeline turns planner text into chart data and keeps the chart
// that is currently on screen.
package timeline

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/julianstephens/tlview/internal/chart"
	"github.com/julianstephens/tlview/internal/colorizer"
	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/logger"
	"github.com/julianstephens/tlview/internal/models"
	"github.com/julianstephens/tlview/internal/parser"
)

// DefaultOptions returns the widget configuration used when nothing is stored.
func DefaultOptions() models.ChartOptions {
	return OptionsFromSettings(models.DefaultSettings())
}

// OptionsFromSettings builds chart options from persisted settings. The
// animation and row label behavior are fixed.
func OptionsFromSettings(s models.Settings) models.ChartOptions {
	models.ApplyDefaultSettings(&s)
	return models.ChartOptions{
		RowHeight:           s.RowHeight,
		Margin:              s.Margin,
		Gridlines:           s.Gridlines,
		AnimationDurationMs: constants.DefaultAnimationDurationMs,
		AnimationEasing:     constants.DefaultAnimationEasing,
		ShowRowLabels:       true,
		GroupByRowLabel:     false,
		ColorByRowLabel:     false,
		Saturation:          s.Saturation,
		Lightness:           s.Lightness,
		Width:               s.ChartWidth,
	}
}

// Build parses text and produces one row and one color per activity. It has
// no side effects; PassID is left empty.
func Build(text string, opts models.ChartOptions) models.ChartData {
	return FromReport(parser.Scan(text), opts)
}

// FromReport builds chart data from an already scanned plan.
func FromReport(report parser.Report, opts models.ChartOptions) models.ChartData {
	activities := report.Activities
	if activities == nil {
		activities = []models.Activity{}
	}

	rows := make([]models.ChartRow, len(activities))
	for i, a := range activities {
		rows[i] = models.ChartRow{
			ID:          strconv.Itoa(a.ID),
			Description: a.RawDescription,
			StartMs:     a.StartMillis(),
			EndMs:       a.EndMillis(),
		}
	}

	palette := colorizer.NewPalette(opts.Saturation, opts.Lightness)
	return models.ChartData{
		Rows:       rows,
		Colors:     palette.ForActivities(activities),
		Height:     len(rows)*opts.RowHeight + opts.Margin,
		Options:    opts,
		Activities: activities,
	}
}

// View owns a drawer and the most recent chart it drew.
type View struct {
	mu      sync.Mutex
	drawer  chart.Drawer
	opts    models.ChartOptions
	current *models.ChartData
	report  parser.Report
}

// NewView loads the drawer and returns a view using opts.
func NewView(drawer chart.Drawer, opts models.ChartOptions) (*View, error) {
	if drawer == nil {
		return nil, fmt.Errorf("timeline view requires a drawer")
	}
	if err := drawer.EnsureLoaded(); err != nil {
		return nil, fmt.Errorf("loading %s chart: %w", drawer.Name(), err)
	}
	return &View{drawer: drawer, opts: opts}, nil
}

// Render runs one pass over text and draws the result to w. The chart is kept
// as the current one even if drawing fails.
func (v *View) Render(w io.Writer, text string) (models.ChartData, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	report := parser.Scan(text)
	data := FromReport(report, v.opts)
	data.PassID = uuid.New().String()

	logger.Debug("Render pass",
		"pass", data.PassID,
		"format", v.drawer.Name(),
		"activities", report.Matched,
		"skipped", report.Skipped,
		"comments", report.Comments,
	)

	v.current = &data
	v.report = report

	if err := v.drawer.Draw(w, data); err != nil {
		return data, fmt.Errorf("drawing %s chart: %w", v.drawer.Name(), err)
	}
	return data, nil
}

// Current returns the chart of the last Render call.
func (v *View) Current() (models.ChartData, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.current == nil {
		return models.ChartData{}, false
	}
	return *v.current, true
}

// LastReport returns the line statistics of the last Render call.
func (v *View) LastReport() parser.Report {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.report
}

// Options returns the render configuration.
func (v *View) Options() models.ChartOptions {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.opts
}

// SetOptions replaces the render configuration for later passes.
func (v *View) SetOptions(opts models.ChartOptions) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts = opts
}

// Drawer returns the drawer the view renders with.
func (v *View) Drawer() chart.Drawer {
	return v.drawer
}
