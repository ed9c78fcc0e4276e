package models

import (
	"encoding/json"
	"math"
)

// ChartRow is one row of the timeline table: (id, description, start, end).
type ChartRow struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	StartMs     float64 `json:"start_ms"`
	EndMs       float64 `json:"end_ms"`
}

// Valid reports whether both ends of the row are real numbers.
func (r ChartRow) Valid() bool {
	return !math.IsNaN(r.StartMs) && !math.IsNaN(r.EndMs) &&
		!math.IsInf(r.StartMs, 0) && !math.IsInf(r.EndMs, 0)
}

// MarshalJSON encodes NaN or infinite times as null.
func (r ChartRow) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID          string   `json:"id"`
		Description string   `json:"description"`
		StartMs     *float64 `json:"start_ms"`
		EndMs       *float64 `json:"end_ms"`
	}
	return json.Marshal(wire{
		ID:          r.ID,
		Description: r.Description,
		StartMs:     finiteOrNil(r.StartMs),
		EndMs:       finiteOrNil(r.EndMs),
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ChartOptions is the render configuration handed to a chart back end.
type ChartOptions struct {
	RowHeight           int     `json:"row_height"`
	Margin              int     `json:"margin"`
	Gridlines           int     `json:"gridlines"`
	AnimationDurationMs int     `json:"animation_duration_ms"`
	AnimationEasing     string  `json:"animation_easing"`
	ShowRowLabels       bool    `json:"show_row_labels"`
	GroupByRowLabel     bool    `json:"group_by_row_label"`
	ColorByRowLabel     bool    `json:"color_by_row_label"`
	Saturation          float64 `json:"saturation"`
	Lightness           float64 `json:"lightness"`
	Width               int     `json:"width,omitempty"` // terminal columns; ignored by other back ends
}

// ChartData is the output of one render pass. Colors is parallel to Rows.
type ChartData struct {
	PassID     string       `json:"pass_id"`
	Rows       []ChartRow   `json:"rows"`
	Colors     []string     `json:"colors"`
	Height     int          `json:"height"`
	Options    ChartOptions `json:"options"`
	Activities []Activity   `json:"activities"`
}

// MaxEndMs returns the largest finite end time across rows, or 0.
func (d ChartData) MaxEndMs() float64 {
	var maxEnd float64
	for _, r := range d.Rows {
		if r.Valid() && r.EndMs > maxEnd {
			maxEnd = r.EndMs
		}
	}
	return maxEnd
}
