package charts

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/tlview/internal/cli"
	"github.com/julianstephens/tlview/internal/colorizer"
)

type ColorsCmd struct {
	Names []string `arg:"" help:"Action names to color."`
}

func (c *ColorsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	r := lipgloss.NewRenderer(out)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "HUE", "HEX", "")
	for _, name := range c.Names {
		hex := colorizer.WordToColor(name, settings.Saturation, settings.Lightness)
		swatch := r.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
		t.Row(name, strconv.Itoa(colorizer.Hue(name)), hex, swatch)
	}
	fmt.Fprintln(out, t.Render())
	return nil
}
