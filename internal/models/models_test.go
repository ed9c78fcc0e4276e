package models

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/julianstephens/tlview/internal/constants"
)

func TestSettingsMapRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.Saturation = 0.35
	s.DefaultFormat = "html"

	got, err := MapToSettings(SettingsToMap(s))
	if err != nil {
		t.Fatalf("MapToSettings failed: %v", err)
	}
	if got != s {
		t.Errorf("round trip = %+v, want %+v", got, s)
	}
}

func TestApplySettingsMap(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]string
		wantErr bool
	}{
		{"unknown key ignored", map[string]string{"colour": "red"}, false},
		{"bad float", map[string]string{constants.SettingSaturation: "lots"}, true},
		{"bad int", map[string]string{constants.SettingRowHeight: "tall"}, true},
		{"valid int", map[string]string{constants.SettingGridlines: "8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			err := ApplySettingsMap(&s, tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplySettingsMap() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsSettingKey(t *testing.T) {
	for _, k := range SettingKeys() {
		if !IsSettingKey(k) {
			t.Errorf("IsSettingKey(%q) = false", k)
		}
	}
	if IsSettingKey("day_start") {
		t.Error("IsSettingKey(day_start) = true")
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	s := Settings{Saturation: 0, Lightness: 0}
	ApplyDefaultSettings(&s)

	if s.RowHeight != constants.DefaultRowHeight || s.Margin != constants.DefaultMargin ||
		s.Gridlines != constants.DefaultGridlines || s.ChartWidth != constants.DefaultChartWidth ||
		s.DefaultFormat != string(constants.DefaultFormat) {
		t.Errorf("defaults not applied: %+v", s)
	}
	if s.Saturation != 0 || s.Lightness != 0 {
		t.Errorf("zero color fractions should be kept: %+v", s)
	}
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"saturation high", func(s *Settings) { s.Saturation = 1.1 }, true},
		{"lightness negative", func(s *Settings) { s.Lightness = -0.1 }, true},
		{"row height zero", func(s *Settings) { s.RowHeight = 0 }, true},
		{"margin negative", func(s *Settings) { s.Margin = -1 }, true},
		{"gridlines zero", func(s *Settings) { s.Gridlines = 0 }, true},
		{"narrow chart", func(s *Settings) { s.ChartWidth = 19 }, true},
		{"unknown format", func(s *Settings) { s.DefaultFormat = "svg" }, true},
		{"black and white", func(s *Settings) { s.Saturation = 0; s.Lightness = 1 }, false},
		{"saturation nan", func(s *Settings) { s.Saturation = math.NaN() }, true},
		{"lightness nan", func(s *Settings) { s.Lightness = math.NaN() }, true},
		{"saturation inf", func(s *Settings) { s.Saturation = math.Inf(1) }, true},
		{"too many gridlines", func(s *Settings) { s.Gridlines = constants.MaxGridlines + 1 }, true},
		{"max gridlines", func(s *Settings) { s.Gridlines = constants.MaxGridlines }, false},
		{"chart too wide", func(s *Settings) { s.ChartWidth = constants.MaxChartWidth + 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			if err := ValidateSettings(s); (err != nil) != tt.wantErr {
				t.Errorf("ValidateSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSettings_NaNFromText(t *testing.T) {
	s := DefaultSettings()
	if err := ApplySettingsMap(&s, map[string]string{
		constants.SettingSaturation: "NaN",
		constants.SettingLightness:  "nan",
	}); err != nil {
		t.Fatalf("ApplySettingsMap failed: %v", err)
	}
	if err := ValidateSettings(s); err == nil {
		t.Errorf("ValidateSettings accepted saturation=%v lightness=%v", s.Saturation, s.Lightness)
	}
}

func TestActivityTimes(t *testing.T) {
	a := Activity{StartTime: 1.5, Duration: 2}
	if a.EndTime() != 3.5 {
		t.Errorf("EndTime = %v", a.EndTime())
	}
	if a.StartMillis() != 1500 || a.EndMillis() != 3500 {
		t.Errorf("millis = %v, %v", a.StartMillis(), a.EndMillis())
	}
}

func TestMarshalJSON_NaN(t *testing.T) {
	a := Activity{ID: 0, RawDescription: "(x)", ActionName: "x", StartTime: math.NaN(), Duration: 1}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"start_time":null`) || !strings.Contains(string(data), `"end_time":null`) {
		t.Errorf("NaN not encoded as null: %s", data)
	}
	if !strings.Contains(string(data), `"duration":1`) {
		t.Errorf("duration missing: %s", data)
	}

	row := ChartRow{ID: "0", Description: "(x)", StartMs: math.NaN(), EndMs: 10}
	if row.Valid() {
		t.Error("row with NaN start reported valid")
	}
	data, err = json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"start_ms":null`) {
		t.Errorf("NaN start not null: %s", data)
	}
}

func TestChartData_MaxEndMs(t *testing.T) {
	d := ChartData{Rows: []ChartRow{
		{StartMs: 0, EndMs: 1000},
		{StartMs: 0, EndMs: math.NaN()},
		{StartMs: 500, EndMs: 3500},
	}}
	if got := d.MaxEndMs(); got != 3500 {
		t.Errorf("MaxEndMs = %v, want 3500", got)
	}
	if got := (ChartData{}).MaxEndMs(); got != 0 {
		t.Errorf("empty MaxEndMs = %v", got)
	}
}
