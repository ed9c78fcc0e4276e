package charts

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/tlview/internal/cli"
	"github.com/julianstephens/tlview/internal/colorizer"
	"github.com/julianstephens/tlview/internal/models"
	"github.com/julianstephens/tlview/internal/parser"
)

type ParseCmd struct {
	File string `arg:"" optional:"" help:"Planner output to parse (- for stdin, omit for the example plan)."`
	JSON bool   `help:"Print activities and line statistics as JSON."`
}

type parseResult struct {
	Activities []models.Activity `json:"activities"`
	Colors     []string          `json:"colors"`
	Lines      int               `json:"lines"`
	Matched    int               `json:"matched"`
	Skipped    int               `json:"skipped"`
	Comments   int               `json:"comments"`
}

func (c *ParseCmd) Run(ctx *cli.Context) error {
	text, err := ctx.ReadInput(c.File)
	if err != nil {
		return err
	}
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	report := parser.Scan(text)
	palette := colorizer.NewPalette(settings.Saturation, settings.Lightness)
	colors := palette.ForActivities(report.Activities)
	out := ctx.Stdout()

	if c.JSON {
		result := parseResult{
			Activities: report.Activities,
			Colors:     colors,
			Lines:      report.Lines,
			Matched:    report.Matched,
			Skipped:    report.Skipped,
			Comments:   report.Comments,
		}
		if result.Activities == nil {
			result.Activities = []models.Activity{}
			result.Colors = []string{}
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal activities: %w", err)
		}
		fmt.Fprintln(out, string(jsonBytes))
		return nil
	}

	if len(report.Activities) == 0 {
		fmt.Fprintln(out, "No activities found.")
	} else {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "START", "DURATION", "END", "ACTION", "COLOR", "DESCRIPTION")
		for i, a := range report.Activities {
			t.Row(
				strconv.Itoa(a.ID),
				formatSeconds(a.StartTime),
				formatSeconds(a.Duration),
				formatSeconds(a.EndTime()),
				a.ActionName,
				colors[i],
				a.RawDescription,
			)
		}
		fmt.Fprintln(out, t.Render())
	}
	fmt.Fprintf(out, "%d lines: %d activities (%d distinct actions), %d comments, %d skipped\n",
		report.Lines, report.Matched, palette.Len(), report.Comments, report.Skipped)
	return nil
}

func formatSeconds(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "invalid"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
