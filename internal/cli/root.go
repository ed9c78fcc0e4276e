package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tlview/internal/chart"
	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/keyring"
	"github.com/julianstephens/tlview/internal/logger"
	"github.com/julianstephens/tlview/internal/models"
	"github.com/julianstephens/tlview/internal/storage"
	"github.com/julianstephens/tlview/internal/storage/postgres"
	"github.com/julianstephens/tlview/internal/storage/sqlite"
)

type Context struct {
	Store storage.Provider
	// ConfigDir holds the log and watch lock files.
	ConfigDir string
	Out       io.Writer
	In        io.Reader
}

// Stdout returns the command output writer.
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Stdin returns the command input reader.
func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Settings returns the stored settings, or the defaults when none are saved.
func (c *Context) Settings() (models.Settings, error) {
	if c.Store == nil {
		return models.DefaultSettings(), nil
	}
	s, err := c.Store.GetSettings()
	if errors.Is(err, storage.ErrSettingsNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&s)
	return s, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// OpenStore picks a storage provider for config: a PostgreSQL URL or DSN, the
// word "keyring" to use the connection string from the environment or OS
// keyring, a .json file, or otherwise a SQLite database path.
func OpenStore(config string) (storage.Provider, error) {
	if config == constants.KeyringConfigValue {
		connStr, source, err := keyring.ResolveConnectionString()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve connection string: %w", err)
		}
		if valid, err := postgres.ValidateConnString(connStr); !valid && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("invalid connection string from %s: %w", source, err)
		}
		logger.Debug("Using PostgreSQL connection string", "source", source)
		return postgres.New(connStr), nil
	}

	if postgres.IsConnString(config) {
		if valid, err := postgres.ValidateConnString(config); !valid {
			return nil, fmt.Errorf("invalid --config: %w", err)
		}
		return postgres.New(config), nil
	}

	path := ExpandPath(config)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ReadInput returns planner text from path. "-" reads standard input and an
// empty path gives the example plan.
func (c *Context) ReadInput(path string) (string, error) {
	switch path {
	case "":
		return constants.DefaultPlannerText, nil
	case "-":
		data, err := io.ReadAll(c.Stdin())
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// ResolveFormat returns flag when set, else the stored default format.
func ResolveFormat(flag string, s models.Settings) (constants.OutputFormat, error) {
	format := constants.OutputFormat(flag)
	if flag == "" {
		format = constants.OutputFormat(s.DefaultFormat)
	}
	for _, f := range chart.Formats() {
		if f == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("%w: %q", chart.ErrUnknownFormat, format)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// CreateOutput opens path for writing, or standard output for "" and "-".
func (c *Context) CreateOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{c.Stdout()}, nil
	}
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

// NewDrawer returns the drawer for format. Terminal charts detect the color
// support of w.
func NewDrawer(format constants.OutputFormat, w io.Writer) (chart.Drawer, error) {
	if format == constants.FormatTerminal {
		return chart.NewTerminalDrawer(lipgloss.NewRenderer(w)), nil
	}
	return chart.ForFormat(format)
}
