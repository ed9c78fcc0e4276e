package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/tlview/internal/constants"
)

// SettingKeys lists the persisted setting keys in display order.
func SettingKeys() []string {
	return []string{
		constants.SettingSaturation,
		constants.SettingLightness,
		constants.SettingRowHeight,
		constants.SettingMargin,
		constants.SettingGridlines,
		constants.SettingDefaultFormat,
		constants.SettingChartWidth,
	}
}

// IsSettingKey reports whether key names a persisted setting.
func IsSettingKey(key string) bool {
	for _, k := range SettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}
	if err := ApplySettingsMap(&settings, data); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// ApplySettingsMap overwrites the fields of settings named in data. Unknown
// keys are ignored.
func ApplySettingsMap(settings *Settings, data map[string]string) error {
	for key, value := range data {
		switch key {
		case constants.SettingSaturation:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("parsing saturation: %w", err)
			}
			settings.Saturation = v
		case constants.SettingLightness:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("parsing lightness: %w", err)
			}
			settings.Lightness = v
		case constants.SettingRowHeight:
			if _, err := fmt.Sscanf(value, "%d", &settings.RowHeight); err != nil {
				return fmt.Errorf("parsing row_height: %w", err)
			}
		case constants.SettingMargin:
			if _, err := fmt.Sscanf(value, "%d", &settings.Margin); err != nil {
				return fmt.Errorf("parsing margin: %w", err)
			}
		case constants.SettingGridlines:
			if _, err := fmt.Sscanf(value, "%d", &settings.Gridlines); err != nil {
				return fmt.Errorf("parsing gridlines: %w", err)
			}
		case constants.SettingDefaultFormat:
			settings.DefaultFormat = value
		case constants.SettingChartWidth:
			if _, err := fmt.Sscanf(value, "%d", &settings.ChartWidth); err != nil {
				return fmt.Errorf("parsing chart_width: %w", err)
			}
		}
	}
	return nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingSaturation:    strconv.FormatFloat(settings.Saturation, 'f', -1, 64),
		constants.SettingLightness:     strconv.FormatFloat(settings.Lightness, 'f', -1, 64),
		constants.SettingRowHeight:     fmt.Sprintf("%d", settings.RowHeight),
		constants.SettingMargin:        fmt.Sprintf("%d", settings.Margin),
		constants.SettingGridlines:     fmt.Sprintf("%d", settings.Gridlines),
		constants.SettingDefaultFormat: settings.DefaultFormat,
		constants.SettingChartWidth:    fmt.Sprintf("%d", settings.ChartWidth),
	}
}

// DefaultSettings returns the settings used on a fresh store.
func DefaultSettings() Settings {
	return Settings{
		Saturation:    constants.DefaultSaturation,
		Lightness:     constants.DefaultLightness,
		RowHeight:     constants.DefaultRowHeight,
		Margin:        constants.DefaultMargin,
		Gridlines:     constants.DefaultGridlines,
		DefaultFormat: string(constants.DefaultFormat),
		ChartWidth:    constants.DefaultChartWidth,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
// A zero saturation or lightness is a valid color, so those are left alone.
func ApplyDefaultSettings(settings *Settings) {
	if settings.RowHeight == 0 {
		settings.RowHeight = constants.DefaultRowHeight
	}
	if settings.Margin == 0 {
		settings.Margin = constants.DefaultMargin
	}
	if settings.Gridlines == 0 {
		settings.Gridlines = constants.DefaultGridlines
	}
	if settings.DefaultFormat == "" {
		settings.DefaultFormat = string(constants.DefaultFormat)
	}
	if settings.ChartWidth == 0 {
		settings.ChartWidth = constants.DefaultChartWidth
	}
}

// ValidateSettings checks ranges that would make colors or charts meaningless.
func ValidateSettings(settings Settings) error {
	if !inUnitRange(settings.Saturation) {
		return fmt.Errorf("saturation must be between 0 and 1, got %v", settings.Saturation)
	}
	if !inUnitRange(settings.Lightness) {
		return fmt.Errorf("lightness must be between 0 and 1, got %v", settings.Lightness)
	}
	if settings.RowHeight < 1 {
		return fmt.Errorf("row_height must be positive, got %d", settings.RowHeight)
	}
	if settings.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %d", settings.Margin)
	}
	if settings.Gridlines < 1 || settings.Gridlines > constants.MaxGridlines {
		return fmt.Errorf("gridlines must be between 1 and %d, got %d", constants.MaxGridlines, settings.Gridlines)
	}
	if settings.ChartWidth < 20 || settings.ChartWidth > constants.MaxChartWidth {
		return fmt.Errorf("chart_width must be between 20 and %d, got %d", constants.MaxChartWidth, settings.ChartWidth)
	}
	switch constants.OutputFormat(settings.DefaultFormat) {
	case constants.FormatTerminal, constants.FormatHTML, constants.FormatJSON:
	default:
		return fmt.Errorf("unknown default_format %q", settings.DefaultFormat)
	}
	return nil
}

// inUnitRange is false for NaN, which fails every comparison.
func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}
