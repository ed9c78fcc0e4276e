// Package plugin is the host-facing lifecycle of the timeline viewer:
// enable, disable, and saving or restoring its settings as an opaque blob.
package plugin

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tlview/internal/chart"
	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/logger"
	"github.com/julianstephens/tlview/internal/models"
	"github.com/julianstephens/tlview/internal/timeline"
)

// Metadata describes the plugin to its host.
type Metadata struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Version     string `yaml:"version" json:"version"`
}

// blob is the saved form of the plugin state.
type blob struct {
	Plugin   string          `yaml:"plugin"`
	Version  string          `yaml:"version"`
	Settings models.Settings `yaml:"settings"`
}

// Plugin holds the timeline view while enabled.
type Plugin struct {
	mu       sync.Mutex
	drawer   chart.Drawer
	settings models.Settings
	view     *timeline.View
	enabled  bool
}

// New creates a disabled plugin that will draw with drawer.
func New(drawer chart.Drawer, settings models.Settings) *Plugin {
	models.ApplyDefaultSettings(&settings)
	return &Plugin{drawer: drawer, settings: settings}
}

// Metadata returns the name and description shown by the host.
func (p *Plugin) Metadata() Metadata {
	return Metadata{
		Name:        constants.PluginName,
		Description: constants.PluginDescription,
		Version:     constants.Version,
	}
}

// Initialize loads the chart library and creates the view. It is called every
// time the plugin is enabled; the library is loaded and the view built once.
func (p *Plugin) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.view == nil {
		view, err := timeline.NewView(p.drawer, timeline.OptionsFromSettings(p.settings))
		if err != nil {
			return err
		}
		p.view = view
		logger.Debug("Plugin initialized", "drawer", p.drawer.Name())
	}
	p.enabled = true
	return nil
}

// Disable marks the plugin disabled. The view is kept for the next Initialize.
func (p *Plugin) Disable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = false
}

// Enabled reports whether Initialize has run since the last Disable.
func (p *Plugin) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// View returns the timeline view, or nil before the first Initialize.
func (p *Plugin) View() *timeline.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// Settings returns the current settings.
func (p *Plugin) Settings() models.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// SetSettings validates s and applies it to later render passes.
func (p *Plugin) SetSettings(s models.Settings) error {
	models.ApplyDefaultSettings(&s)
	if err := models.ValidateSettings(s); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings = s
	if p.view != nil {
		p.view.SetOptions(timeline.OptionsFromSettings(s))
	}
	return nil
}

// Save returns the settings as a YAML document for the host to keep.
func (p *Plugin) Save() ([]byte, error) {
	data, err := yaml.Marshal(blob{
		Plugin:   constants.PluginName,
		Version:  constants.Version,
		Settings: p.Settings(),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding plugin settings: %w", err)
	}
	return data, nil
}

// Load restores settings from a previous Save. An empty blob leaves the
// current settings unchanged; fields missing from the blob keep their defaults.
func (p *Plugin) Load(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	b := blob{Settings: models.DefaultSettings()}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("decoding plugin settings: %w", err)
	}
	if b.Plugin != "" && b.Plugin != constants.PluginName {
		return fmt.Errorf("settings belong to plugin %q, not %q", b.Plugin, constants.PluginName)
	}
	if err := p.SetSettings(b.Settings); err != nil {
		return fmt.Errorf("invalid plugin settings: %w", err)
	}
	return nil
}
