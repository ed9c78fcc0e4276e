package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tlview/internal/cli"
	"github.com/julianstephens/tlview/internal/cli/charts"
	"github.com/julianstephens/tlview/internal/cli/settings"
	"github.com/julianstephens/tlview/internal/cli/system"
	"github.com/julianstephens/tlview/internal/constants"
	tlerrors "github.com/julianstephens/tlview/internal/errors"
	"github.com/julianstephens/tlview/internal/logger"
	"github.com/julianstephens/tlview/internal/storage"
	"github.com/julianstephens/tlview/internal/storage/postgres"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite path, .json path, PostgreSQL connection string, or 'keyring'. PostgreSQL credentials must NOT be embedded in the connection string; store them with 'tlview keyring set' or ${env_var}." type:"string" default:"${default_config}"`
	LogDebug bool   `name:"debug" help:"Log at debug level and mirror the log to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize tlview storage."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive timeline viewer." default:"withargs"`
	Render   charts.RenderCmd     `cmd:"" help:"Render planner output as a chart."`
	Parse    charts.ParseCmd      `cmd:"" help:"List the activities found in planner output."`
	Colors   charts.ColorsCmd     `cmd:"" help:"Show the color assigned to action names."`
	Watch    charts.WatchCmd      `cmd:"" help:"Re-render a chart whenever a plan file changes."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Debug    system.DebugCmd      `cmd:"" help:"Debug commands for troubleshooting."`
}

// Commands that run without loading storage, and commands that fall back to
// default settings when storage has not been initialized.
var (
	skipLoad     = []string{"init", "doctor"}
	optionalLoad = []string{"render", "parse", "colors", "watch"}
)

func commandIs(command string, names []string) bool {
	head, _, _ := strings.Cut(command, " ")
	for _, n := range names {
		if head == n {
			return true
		}
	}
	return false
}

// configDir is where logs and watch locks live for a given --config value.
func configDir(config string) string {
	if config == constants.KeyringConfigValue || postgres.IsConnString(config) {
		return filepath.Dir(cli.ExpandPath(constants.DefaultConfigPath))
	}
	return filepath.Dir(cli.ExpandPath(config))
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description(constants.PluginDescription),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"env_var":        constants.ConnectionEnvVar,
		},
	)

	dir := configDir(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.LogDebug, ConfigDir: dir}); err != nil {
		tlerrors.Fatal(err)
	}
	defer logger.Close()

	command := ctx.Command()
	logger.Debug("Starting", "command", command, "version", constants.Version)

	appCtx := &cli.Context{ConfigDir: dir}

	// Keyring commands manage the credentials a store would need
	if !strings.HasPrefix(command, "keyring") {
		store, err := cli.OpenStore(CLI.Config)
		if err != nil {
			tlerrors.Fatal(err)
		}
		defer store.Close()
		appCtx.Store = store

		if !commandIs(command, skipLoad) {
			if err := store.Load(); err != nil {
				if !commandIs(command, optionalLoad) || !errors.Is(err, storage.ErrNotInitialized) {
					tlerrors.Fatal(err)
				}
				logger.Info("Storage not initialized, using default settings", "path", store.GetConfigPath())
				appCtx.Store = nil
			}
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		tlerrors.Fatal(err)
	}
}
