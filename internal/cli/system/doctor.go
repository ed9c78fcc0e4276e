package system

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tlview/internal/chart"
	"github.com/julianstephens/tlview/internal/cli"
	"github.com/julianstephens/tlview/internal/colorizer"
	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/keyring"
	"github.com/julianstephens/tlview/internal/models"
	"github.com/julianstephens/tlview/internal/storage"
)

// colorCheck is a known hash-to-color pair at the default saturation and lightness.
var colorCheck = struct{ name, hex string }{"here", "#bfec93"}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	report := func(name string, err error) {
		if err != nil {
			fmt.Fprintf(out, "❌ %s: FAIL\n", name)
			fmt.Fprintf(out, "   Error: %v\n", err)
			hasError = true
			return
		}
		fmt.Fprintf(out, "✓ %s: OK\n", name)
	}

	reachErr := checkStorageReachable(ctx)
	report("Storage reachable", reachErr)

	if reachErr != nil {
		fmt.Fprintln(out, "⊘ Schema version: SKIPPED (storage not reachable)")
		fmt.Fprintln(out, "⊘ Settings valid: SKIPPED (storage not reachable)")
	} else {
		if reporter, ok := ctx.Store.(storage.SchemaReporter); ok {
			report("Schema version", checkSchemaVersion(reporter))
		} else {
			fmt.Fprintln(out, "⊘ Schema version: SKIPPED (storage has no schema)")
		}
		report("Settings valid", checkSettings(ctx))
	}

	if keyring.IsAvailable() {
		fmt.Fprintln(out, "✓ OS keyring: OK")
	} else {
		fmt.Fprintln(out, "⚠ OS keyring: WARNING")
		fmt.Fprintln(out, "   Keyring unavailable; PostgreSQL credentials must come from "+constants.ConnectionEnvVar)
	}

	report("Chart libraries", checkChartLibraries())
	report("Colorizer", checkColorizer())

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(r storage.SchemaReporter) error {
	status, err := r.SchemaStatus()
	if err != nil {
		return err
	}
	if status.Current > status.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported (%d)", status.Current, status.Latest)
	}
	if status.Pending() {
		return fmt.Errorf("schema version %d, %d pending migration(s)", status.Current, status.Latest-status.Current)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	s, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	models.ApplyDefaultSettings(&s)
	return models.ValidateSettings(s)
}

func checkChartLibraries() error {
	for _, format := range chart.Formats() {
		var d chart.Drawer
		if format == constants.FormatTerminal {
			d = chart.NewTerminalDrawer(lipgloss.NewRenderer(io.Discard))
		} else {
			var err error
			if d, err = chart.ForFormat(format); err != nil {
				return err
			}
		}
		if err := d.EnsureLoaded(); err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
	}
	return nil
}

func checkColorizer() error {
	got := colorizer.WordToColor(colorCheck.name, constants.DefaultSaturation, constants.DefaultLightness)
	if got != colorCheck.hex {
		return fmt.Errorf("color of %q is %s, expected %s", colorCheck.name, got, colorCheck.hex)
	}
	return nil
}
