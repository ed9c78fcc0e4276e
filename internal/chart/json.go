package chart

import (
	"encoding/json"
	"io"

	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/models"
)

// JSONDrawer writes the chart data as indented JSON. Non-finite times are null.
type JSONDrawer struct {
	loader
}

// NewJSONDrawer creates a JSON drawer.
func NewJSONDrawer() *JSONDrawer {
	return &JSONDrawer{}
}

func (d *JSONDrawer) Name() string { return string(constants.FormatJSON) }

// EnsureLoaded has nothing to prepare.
func (d *JSONDrawer) EnsureLoaded() error {
	return d.ensure(func() error { return nil })
}

func (d *JSONDrawer) Draw(w io.Writer, data models.ChartData) error {
	if err := d.EnsureLoaded(); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
