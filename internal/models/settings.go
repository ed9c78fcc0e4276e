package models

// Settings represents application-wide settings
type Settings struct {
	Saturation    float64 `json:"saturation" yaml:"saturation"`         // HSL saturation fraction used for activity colors, 0..1
	Lightness     float64 `json:"lightness" yaml:"lightness"`           // HSL lightness fraction used for activity colors, 0..1
	RowHeight     int     `json:"row_height" yaml:"row_height"`         // pixels per chart row
	Margin        int     `json:"margin" yaml:"margin"`                 // pixels added to the chart height
	Gridlines     int     `json:"gridlines" yaml:"gridlines"`           // horizontal axis gridline count
	DefaultFormat string  `json:"default_format" yaml:"default_format"` // chart back end used when --format is not given
	ChartWidth    int     `json:"chart_width" yaml:"chart_width"`       // terminal chart width in columns
}
