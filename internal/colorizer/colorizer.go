// Package colorizer maps action names to stable colors. The hue comes from the
// SHA-1 digest of the name, so the same action is painted the same way in every
// chart without keeping any state between runs.
package colorizer

import (
	"crypto/sha1"
	"encoding/binary"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/tlview/internal/models"
)

// Hue returns the hue in [0, 360) for name. The first four digest bytes are read
// as a big-endian signed 32-bit integer and reduced modulo 360.
func Hue(name string) int {
	sum := sha1.Sum([]byte(name))
	word := int32(binary.BigEndian.Uint32(sum[:4]))
	h := int(word % 360)
	if h < 0 {
		h += 360
	}
	return h
}

// WordToColor returns "#rrggbb" for HSL(Hue(name), sat, light). Saturation and
// lightness are fractions in [0, 1].
func WordToColor(name string, sat, light float64) string {
	return colorful.Hsl(float64(Hue(name)), sat, light).Clamped().Hex()
}

// Palette colors one render pass, reusing the result for repeated names.
type Palette struct {
	Saturation float64
	Lightness  float64

	memo map[string]string
}

// NewPalette creates a palette with the given saturation and lightness.
func NewPalette(sat, light float64) *Palette {
	return &Palette{Saturation: sat, Lightness: light}
}

// Color returns the color for name.
func (p *Palette) Color(name string) string {
	if p.memo == nil {
		p.memo = make(map[string]string)
	}
	if c, ok := p.memo[name]; ok {
		return c
	}
	c := WordToColor(name, p.Saturation, p.Lightness)
	p.memo[name] = c
	return c
}

// ForActivities returns one color per activity, indexed like activities.
func (p *Palette) ForActivities(activities []models.Activity) []string {
	colors := make([]string, len(activities))
	for i, a := range activities {
		colors[i] = p.Color(a.ActionName)
	}
	return colors
}

// Len reports how many distinct names have been colored.
func (p *Palette) Len() int {
	return len(p.memo)
}
