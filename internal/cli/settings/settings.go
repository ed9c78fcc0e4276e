package settings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/tlview/internal/cli"
	"github.com/julianstephens/tlview/internal/models"
	"github.com/julianstephens/tlview/internal/plugin"
)

type SettingsCmd struct {
	Show   SettingsShowCmd   `cmd:"" help:"List current settings." default:"1"`
	Set    SettingsSetCmd    `cmd:"" help:"Change one setting."`
	Export SettingsExportCmd `cmd:"" help:"Write settings as a YAML plugin blob."`
	Import SettingsImportCmd `cmd:"" help:"Restore settings from a YAML plugin blob."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	fmt.Fprintln(out, "Current Settings:")
	fmt.Fprintf(out, "  Saturation:      %v\n", settings.Saturation)
	fmt.Fprintf(out, "  Lightness:       %v\n", settings.Lightness)
	fmt.Fprintln(out, "\nChart Settings:")
	fmt.Fprintf(out, "  Row Height:      %d px\n", settings.RowHeight)
	fmt.Fprintf(out, "  Margin:          %d px\n", settings.Margin)
	fmt.Fprintf(out, "  Gridlines:       %d\n", settings.Gridlines)
	fmt.Fprintf(out, "  Chart Width:     %d columns\n", settings.ChartWidth)
	fmt.Fprintf(out, "  Default Format:  %s\n", settings.DefaultFormat)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting key (saturation, lightness, row_height, margin, gridlines, default_format, chart_width)."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	if !models.IsSettingKey(c.Key) {
		keys := models.SettingKeys()
		sort.Strings(keys)
		return fmt.Errorf("unknown setting %q (valid: %s)", c.Key, strings.Join(keys, ", "))
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if err := models.ApplySettingsMap(&settings, map[string]string{c.Key: c.Value}); err != nil {
		return err
	}
	if err := models.ValidateSettings(settings); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Fprintf(ctx.Stdout(), "Set %s = %s\n", c.Key, c.Value)
	return nil
}

type SettingsExportCmd struct {
	Out string `short:"o" help:"Write to this file instead of standard output."`
}

func (c *SettingsExportCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	data, err := plugin.New(nil, settings).Save()
	if err != nil {
		return err
	}

	w, err := ctx.CreateOutput(c.Out)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return w.Close()
}

type SettingsImportCmd struct {
	File string `arg:"" help:"YAML file written by 'settings export' (- for stdin)."`
}

func (c *SettingsImportCmd) Run(ctx *cli.Context) error {
	data, err := ctx.ReadInput(c.File)
	if err != nil {
		return err
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	p := plugin.New(nil, settings)
	if err := p.Load([]byte(data)); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(p.Settings()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Fprintln(ctx.Stdout(), "Settings imported successfully.")
	return nil
}
