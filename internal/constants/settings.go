package constants

const (
	// Color Settings
	SettingSaturation = "saturation"
	SettingLightness  = "lightness"

	// Chart Settings
	SettingRowHeight     = "row_height"
	SettingMargin        = "margin"
	SettingGridlines     = "gridlines"
	SettingDefaultFormat = "default_format"
	SettingChartWidth    = "chart_width"

	// Default Settings Values
	DefaultSaturation = 0.7
	DefaultLightness  = 0.75
	DefaultRowHeight  = 43
	DefaultMargin     = 100
	DefaultGridlines  = 15
	DefaultFormat     = FormatTerminal
	DefaultChartWidth = 80

	// Upper bounds
	MaxGridlines  = 200
	MaxChartWidth = 1000

	// Fixed widget options
	DefaultAnimationDurationMs = 1000
	DefaultAnimationEasing     = "out"
)
