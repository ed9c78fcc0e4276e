package storage

import (
	"errors"

	"github.com/julianstephens/tlview/internal/migration"
	"github.com/julianstephens/tlview/internal/models"
)

var (
	// ErrNotInitialized is returned by Load when the store has never been created.
	ErrNotInitialized = errors.New("storage not initialized, run 'tlview init' first")
	// ErrAlreadyInitialized is returned by Init for a store that already exists.
	ErrAlreadyInitialized = errors.New("storage already initialized")
	// ErrSettingsNotFound is returned when no settings have been saved.
	ErrSettingsNotFound = errors.New("settings not found")
	// ErrNotLoaded is returned when a store is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider persists the viewer's settings. Planner text and charts are never stored.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Utils
	GetConfigPath() string
}

// SchemaReporter is implemented by stores backed by a migrated database.
type SchemaReporter interface {
	SchemaStatus() (migration.Status, error)
}
