package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/models"
)

const (
	minLabelWidth = 8
	minBarWidth   = 10
	fallbackColor = "#888888"
)

// TerminalDrawer renders a Gantt chart with one line per activity and bars
// painted in the activity color.
type TerminalDrawer struct {
	loader

	renderer *lipgloss.Renderer
	label    lipgloss.Style
	invalid  lipgloss.Style
	axis     lipgloss.Style
	empty    lipgloss.Style
}

// NewTerminalDrawer creates a terminal drawer. A nil renderer means the
// default lipgloss renderer, which detects the color profile of stdout.
func NewTerminalDrawer(r *lipgloss.Renderer) *TerminalDrawer {
	return &TerminalDrawer{renderer: r}
}

func (d *TerminalDrawer) Name() string { return string(constants.FormatTerminal) }

// EnsureLoaded resolves the renderer and its styles. Color profile detection
// queries the terminal, so it happens once.
func (d *TerminalDrawer) EnsureLoaded() error {
	return d.ensure(func() error {
		if d.renderer == nil {
			d.renderer = lipgloss.DefaultRenderer()
		}
		_ = d.renderer.ColorProfile()
		d.label = d.renderer.NewStyle().Foreground(lipgloss.Color("252"))
		d.invalid = d.renderer.NewStyle().Foreground(lipgloss.Color("196")).Italic(true)
		d.axis = d.renderer.NewStyle().Foreground(lipgloss.Color("241"))
		d.empty = d.renderer.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
		return nil
	})
}

// Draw writes the chart sized to data.Options.Width columns.
func (d *TerminalDrawer) Draw(w io.Writer, data models.ChartData) error {
	if err := d.EnsureLoaded(); err != nil {
		return err
	}

	if len(data.Rows) == 0 {
		_, err := fmt.Fprintln(w, d.empty.Render("No activities found."))
		return err
	}

	width := data.Options.Width
	if width <= 0 {
		width = constants.DefaultChartWidth
	}
	width = min(width, constants.MaxChartWidth)
	labelWidth := labelColumnWidth(data.Rows, width)
	barWidth := width - labelWidth - 1
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	maxEnd := data.MaxEndMs()

	var b strings.Builder
	for i, row := range data.Rows {
		b.WriteString(d.label.Render(padRight(ansi.Truncate(row.Description, labelWidth, "…"), labelWidth)))
		b.WriteString(" ")

		if !row.Valid() {
			b.WriteString(d.invalid.Render("invalid"))
			b.WriteString("\n")
			continue
		}

		start, end := barSpan(row, maxEnd, barWidth)
		color := fallbackColor
		if i < len(data.Colors) && data.Colors[i] != "" {
			color = data.Colors[i]
		}
		bar := d.renderer.NewStyle().Background(lipgloss.Color(color)).Render(strings.Repeat(" ", end-start))

		b.WriteString(strings.Repeat(" ", start))
		b.WriteString(bar)
		b.WriteString(strings.Repeat(" ", barWidth-end))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", labelWidth+1))
	b.WriteString(d.axis.Render(axisLine(barWidth, data.Options.Gridlines)))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", labelWidth+1))
	b.WriteString(d.axis.Render(axisLabels(barWidth, maxEnd)))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// labelColumnWidth fits the longest description, capped at a third of the chart.
func labelColumnWidth(rows []models.ChartRow, width int) int {
	longest := 0
	for _, r := range rows {
		if n := ansi.StringWidth(r.Description); n > longest {
			longest = n
		}
	}
	maxWidth := width / 3
	if maxWidth < minLabelWidth {
		maxWidth = minLabelWidth
	}
	switch {
	case longest < minLabelWidth:
		return minLabelWidth
	case longest > maxWidth:
		return maxWidth
	default:
		return longest
	}
}

// barSpan maps a row onto [0, barWidth) columns. Every valid row gets at least
// one column so zero-length actions stay visible.
func barSpan(row models.ChartRow, maxEnd float64, barWidth int) (int, int) {
	if maxEnd <= 0 {
		return 0, 1
	}
	start := int(math.Round(row.StartMs / maxEnd * float64(barWidth)))
	end := int(math.Round(row.EndMs / maxEnd * float64(barWidth)))
	if start >= barWidth {
		start = barWidth - 1
	}
	if end > barWidth {
		end = barWidth
	}
	if end <= start {
		end = start + 1
	}
	return start, end
}

// axisLine draws a rule with a tick at each gridline.
func axisLine(barWidth, gridlines int) string {
	if gridlines < 1 {
		gridlines = 1
	}
	if gridlines > barWidth-1 {
		gridlines = barWidth - 1
	}
	line := []rune(strings.Repeat("─", barWidth))
	for k := 0; k <= gridlines; k++ {
		pos := int(math.Round(float64(k) * float64(barWidth-1) / float64(gridlines)))
		line[pos] = '┼'
	}
	line[0] = '├'
	line[barWidth-1] = '┤'
	return string(line)
}

// axisLabels prints the start and end of the time range in seconds.
func axisLabels(barWidth int, maxEndMs float64) string {
	left := "0s"
	right := strconv.FormatFloat(maxEndMs/1000, 'f', -1, 64) + "s"
	gap := barWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func padRight(s string, width int) string {
	if n := ansi.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
