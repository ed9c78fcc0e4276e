package colorizer

import (
	"regexp"
	"testing"

	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/models"
)

func TestHue(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"here", 90},
		{"an", 72},
		{"of", 54},
		{"move", 73},
		{"", 270},
		{"drive-truck", 9},
		{"load", 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hue(tt.name); got != tt.want {
				t.Errorf("Hue(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestHue_Range(t *testing.T) {
	for _, name := range []string{"a", "b", "pick-up", "put-down", "stack", "unstack", "navigate", "take_image", "calibrate", "Ünïcödé"} {
		h := Hue(name)
		if h < 0 || h >= 360 {
			t.Errorf("Hue(%q) = %d, out of [0, 360)", name, h)
		}
	}
}

func TestWordToColor(t *testing.T) {
	sat, light := constants.DefaultSaturation, constants.DefaultLightness
	tests := []struct {
		name string
		want string
	}{
		{"here", "#bfec93"},
		{"an", "#daec93"},
		{"of", "#ece393"},
		{"move", "#d9ec93"},
		{"", "#bf93ec"},
		{"drive-truck", "#eca093"},
		{"load", "#ece093"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordToColor(tt.name, sat, light); got != tt.want {
				t.Errorf("WordToColor(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestWordToColor_Format(t *testing.T) {
	hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for _, tc := range []struct{ sat, light float64 }{{0, 0}, {1, 1}, {0.7, 0.75}, {0.3, 0.4}} {
		got := WordToColor("navigate", tc.sat, tc.light)
		if !hex.MatchString(got) {
			t.Errorf("WordToColor(navigate, %v, %v) = %q, not #rrggbb", tc.sat, tc.light, got)
		}
	}
	if got := WordToColor("navigate", 0, 1); got != "#ffffff" {
		t.Errorf("full lightness = %s, want #ffffff", got)
	}
	if got := WordToColor("navigate", 1, 0); got != "#000000" {
		t.Errorf("zero lightness = %s, want #000000", got)
	}
}

func TestWordToColor_Deterministic(t *testing.T) {
	first := WordToColor("unstack", 0.7, 0.75)
	for i := 0; i < 10; i++ {
		if got := WordToColor("unstack", 0.7, 0.75); got != first {
			t.Fatalf("call %d = %s, want %s", i, got, first)
		}
	}
}

func TestPalette_ForActivities(t *testing.T) {
	activities := []models.Activity{
		{ID: 0, ActionName: "move"},
		{ID: 1, ActionName: "load"},
		{ID: 2, ActionName: "move"},
	}

	p := NewPalette(constants.DefaultSaturation, constants.DefaultLightness)
	colors := p.ForActivities(activities)

	if len(colors) != len(activities) {
		t.Fatalf("got %d colors, want %d", len(colors), len(activities))
	}
	if colors[0] != colors[2] {
		t.Errorf("shared action name got different colors: %s vs %s", colors[0], colors[2])
	}
	if colors[0] != "#d9ec93" || colors[1] != "#ece093" {
		t.Errorf("colors = %v", colors)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestPalette_ZeroValue(t *testing.T) {
	var p Palette
	if got := p.ForActivities(nil); len(got) != 0 {
		t.Errorf("ForActivities(nil) = %v, want empty", got)
	}
	if got := p.Color("x"); got != "#000000" {
		t.Errorf("zero palette color = %s, want #000000", got)
	}
}
