package timeline

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/julianstephens/tlview/internal/chart"
	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/models"
)

const twoLines = "0.000: (here is) [1.000]\n1.000: (an example) [2.000]"

func TestBuild(t *testing.T) {
	data := Build(twoLines, DefaultOptions())

	if len(data.Rows) != 2 || len(data.Colors) != 2 || len(data.Activities) != 2 {
		t.Fatalf("rows/colors/activities = %d/%d/%d, want 2/2/2", len(data.Rows), len(data.Colors), len(data.Activities))
	}
	want := []models.ChartRow{
		{ID: "0", Description: "(here is)", StartMs: 0, EndMs: 1000},
		{ID: "1", Description: "(an example)", StartMs: 1000, EndMs: 3000},
	}
	for i, row := range data.Rows {
		if row != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, row, want[i])
		}
	}
	if data.Colors[0] != "#bfec93" || data.Colors[1] != "#daec93" {
		t.Errorf("colors = %v", data.Colors)
	}
	if data.Height != 2*43+100 {
		t.Errorf("Height = %d, want %d", data.Height, 2*43+100)
	}
	if data.PassID != "" {
		t.Errorf("Build() set PassID %q", data.PassID)
	}
}

func TestBuild_Empty(t *testing.T) {
	data := Build(";; comment\n\n", DefaultOptions())

	if len(data.Rows) != 0 || len(data.Colors) != 0 {
		t.Errorf("rows/colors = %d/%d, want 0/0", len(data.Rows), len(data.Colors))
	}
	if data.Rows == nil || data.Colors == nil {
		t.Error("empty chart should carry empty, non-nil slices")
	}
	if data.Height != constants.DefaultMargin {
		t.Errorf("Height = %d, want %d", data.Height, constants.DefaultMargin)
	}
}

func TestBuild_SharedActionColor(t *testing.T) {
	data := Build("0: (move a b) [1]\n1: (load x) [1]\n2: (move b c) [1]", DefaultOptions())
	if data.Colors[0] != data.Colors[2] {
		t.Errorf("move rows colored %s and %s", data.Colors[0], data.Colors[2])
	}
}

func TestBuild_Deterministic(t *testing.T) {
	opts := DefaultOptions()
	a := Build(constants.DefaultPlannerText, opts)
	b := Build(constants.DefaultPlannerText, opts)
	for i := range a.Colors {
		if a.Colors[i] != b.Colors[i] || a.Rows[i] != b.Rows[i] {
			t.Fatalf("pass differs at %d", i)
		}
	}
}

func TestOptionsFromSettings(t *testing.T) {
	s := models.Settings{Saturation: 0.5, Lightness: 0.4, RowHeight: 30, ChartWidth: 120}
	opts := OptionsFromSettings(s)

	if opts.Saturation != 0.5 || opts.Lightness != 0.4 {
		t.Errorf("sat/light = %v/%v", opts.Saturation, opts.Lightness)
	}
	if opts.RowHeight != 30 || opts.Width != 120 {
		t.Errorf("row height/width = %d/%d", opts.RowHeight, opts.Width)
	}
	if opts.Margin != constants.DefaultMargin || opts.Gridlines != constants.DefaultGridlines {
		t.Errorf("missing defaults: margin %d gridlines %d", opts.Margin, opts.Gridlines)
	}
	if !opts.ShowRowLabels || opts.GroupByRowLabel || opts.ColorByRowLabel {
		t.Errorf("row label flags = %v/%v/%v", opts.ShowRowLabels, opts.GroupByRowLabel, opts.ColorByRowLabel)
	}
	if opts.AnimationDurationMs != 1000 || opts.AnimationEasing != "out" {
		t.Errorf("animation = %d %q", opts.AnimationDurationMs, opts.AnimationEasing)
	}

	custom := Build(twoLines, opts)
	if custom.Height != 2*30+constants.DefaultMargin {
		t.Errorf("Height = %d", custom.Height)
	}
}

type failingDrawer struct {
	loadErr error
	drawErr error
	draws   int
}

func (d *failingDrawer) Name() string        { return "failing" }
func (d *failingDrawer) EnsureLoaded() error { return d.loadErr }
func (d *failingDrawer) Draw(io.Writer, models.ChartData) error {
	d.draws++
	return d.drawErr
}

func TestNewView(t *testing.T) {
	if _, err := NewView(nil, DefaultOptions()); err == nil {
		t.Error("NewView(nil) should fail")
	}

	loadErr := errors.New("no renderer")
	if _, err := NewView(&failingDrawer{loadErr: loadErr}, DefaultOptions()); !errors.Is(err, loadErr) {
		t.Errorf("NewView() error = %v, want %v", err, loadErr)
	}
}

func TestView_Render(t *testing.T) {
	v, err := NewView(chart.NewJSONDrawer(), DefaultOptions())
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}

	if _, ok := v.Current(); ok {
		t.Error("Current() before Render should report false")
	}

	var buf bytes.Buffer
	first, err := v.Render(&buf, twoLines+"\nnot a plan line")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, err := uuid.Parse(first.PassID); err != nil {
		t.Errorf("PassID %q is not a uuid: %v", first.PassID, err)
	}
	if !strings.Contains(buf.String(), first.PassID) {
		t.Error("drawn output does not carry the pass id")
	}
	if r := v.LastReport(); r.Matched != 2 || r.Skipped != 1 {
		t.Errorf("LastReport() = %+v", r)
	}

	second, err := v.Render(io.Discard, constants.DefaultPlannerText)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if second.PassID == first.PassID {
		t.Error("each pass should get a new id")
	}
	current, ok := v.Current()
	if !ok || current.PassID != second.PassID || len(current.Rows) != 3 {
		t.Errorf("Current() = %+v, %v", current, ok)
	}
}

func TestView_RenderDrawError(t *testing.T) {
	drawErr := errors.New("broken pipe")
	d := &failingDrawer{drawErr: drawErr}
	v, err := NewView(d, DefaultOptions())
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}

	data, err := v.Render(io.Discard, twoLines)
	if !errors.Is(err, drawErr) {
		t.Errorf("Render() error = %v, want %v", err, drawErr)
	}
	if len(data.Rows) != 2 {
		t.Errorf("Render() rows = %d, want 2", len(data.Rows))
	}
	if _, ok := v.Current(); !ok {
		t.Error("failed draw should still record the current chart")
	}
}

func TestView_SetOptions(t *testing.T) {
	v, err := NewView(chart.NewJSONDrawer(), DefaultOptions())
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	opts := v.Options()
	opts.RowHeight = 10
	v.SetOptions(opts)

	data, err := v.Render(io.Discard, twoLines)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if data.Height != 2*10+constants.DefaultMargin {
		t.Errorf("Height = %d", data.Height)
	}
	if v.Drawer().Name() != "json" {
		t.Errorf("Drawer().Name() = %q", v.Drawer().Name())
	}
}
