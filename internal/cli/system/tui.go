package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tlview/internal/chart"
	"github.com/julianstephens/tlview/internal/cli"
	"github.com/julianstephens/tlview/internal/plugin"
	"github.com/julianstephens/tlview/internal/tui"
)

type TuiCmd struct {
	File string `arg:"" optional:"" help:"Planner output to load into the text box (- for stdin)."`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	text, err := ctx.ReadInput(c.File)
	if err != nil {
		return err
	}
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	p := plugin.New(chart.NewTerminalDrawer(nil), settings)
	model, err := tui.NewModel(ctx.Store, p, text)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
