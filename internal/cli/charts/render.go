package charts

import (
	"fmt"
	"io"

	"github.com/julianstephens/tlview/internal/cli"
	"github.com/julianstephens/tlview/internal/models"
	"github.com/julianstephens/tlview/internal/timeline"
)

type RenderCmd struct {
	File   string `arg:"" optional:"" help:"Planner output to render (- for stdin, omit for the example plan)."`
	Format string `short:"f" help:"Output format (terminal, html, json). Defaults to the stored default_format."`
	Out    string `short:"o" help:"Write to this file instead of standard output."`
	Width  int    `short:"w" help:"Terminal chart width in columns."`
}

func (c *RenderCmd) Run(ctx *cli.Context) error {
	text, err := ctx.ReadInput(c.File)
	if err != nil {
		return err
	}
	view, err := newView(ctx, c.Format, c.Width, c.Out)
	if err != nil {
		return err
	}

	w, err := ctx.CreateOutput(c.Out)
	if err != nil {
		return err
	}
	if _, err := view.Render(w, text); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// newView builds a timeline view from the stored settings and the command
// flags. out is only used to pick the terminal color profile.
func newView(ctx *cli.Context, format string, width int, out string) (*timeline.View, error) {
	settings, err := ctx.Settings()
	if err != nil {
		return nil, err
	}
	f, err := cli.ResolveFormat(format, settings)
	if err != nil {
		return nil, err
	}
	if width > 0 {
		settings.ChartWidth = width
		if err := models.ValidateSettings(settings); err != nil {
			return nil, fmt.Errorf("invalid --width: %w", err)
		}
	}

	term := ctx.Stdout()
	if out != "" && out != "-" {
		term = io.Discard
	}
	drawer, err := cli.NewDrawer(f, term)
	if err != nil {
		return nil, err
	}
	return timeline.NewView(drawer, timeline.OptionsFromSettings(settings))
}
