package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/tlview/internal/cli"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing storage before initialization."`
	Source string `help:"Source database path or connection string to copy settings from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()

	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete the source being copied from
		if c.Source != "" {
			if absDbPath, err := filepath.Abs(dbPath); err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(cli.ExpandPath(c.Source))
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			fmt.Fprintf(out, "Deleted existing storage at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized tlview storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Fprintf(out, "Copying settings from: %s\n", c.Source)
		if err := c.copySettings(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintln(out, "Settings copied successfully!")
	}

	return nil
}

func (c *InitCmd) copySettings(ctx *cli.Context) error {
	sourceStore, err := cli.OpenStore(c.Source)
	if err != nil {
		return err
	}
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source storage: %w", err)
	}
	defer sourceStore.Close()

	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}
	return nil
}
