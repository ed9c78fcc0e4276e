package tui

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/logger"
	"github.com/julianstephens/tlview/internal/models"
	"github.com/julianstephens/tlview/internal/plugin"
	"github.com/julianstephens/tlview/internal/storage"
	"github.com/julianstephens/tlview/internal/tui/components/activities"
	"github.com/julianstephens/tlview/internal/tui/components/chartview"
	"github.com/julianstephens/tlview/internal/tui/components/settings"
)

const inputHeight = 8

type SettingsFormModel struct {
	Saturation    string
	Lightness     string
	RowHeight     string
	Margin        string
	Gridlines     string
	ChartWidth    string
	DefaultFormat string
}

type Model struct {
	store         storage.Provider
	plugin        *plugin.Plugin
	state         constants.SessionState
	keys          KeyMap
	help          help.Model
	input         textarea.Model
	chartModel    chartview.Model
	activityList  activities.Model
	settingsModel settings.Model
	form          *huh.Form
	settingsForm  *SettingsFormModel
	formError     string
	renderError   string
	lastText      string
	quitting      bool
	width         int
	height        int
}

// NewModel enables p and renders text once. p must draw with a terminal drawer.
func NewModel(store storage.Provider, p *plugin.Plugin, text string) (Model, error) {
	if err := p.Initialize(); err != nil {
		return Model{}, fmt.Errorf("initializing plugin: %w", err)
	}

	ta := textarea.New()
	ta.Placeholder = "Paste planner output here"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(inputHeight)
	ta.SetValue(text)
	ta.Focus()

	m := Model{
		store:         store,
		plugin:        p,
		state:         constants.StateTimeline,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		input:         ta,
		chartModel:    chartview.New(0, 0),
		activityList:  activities.New(0, 0),
		settingsModel: settings.New(p.Settings(), store.GetConfigPath(), 0, 0),
	}
	m.render()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateTimeline:
		if m.input.Focused() {
			keys = []key.Binding{m.keys.Tab, m.keys.Blur, m.keys.Clear}
		} else {
			keys = append(keys, m.keys.Focus, m.keys.Up, m.keys.Down)
		}
	case constants.StateSettings:
		keys = append(keys, m.keys.Edit)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

// render runs one pass over the text box and refreshes the chart and the
// activity list.
func (m *Model) render() tea.Cmd {
	text := m.input.Value()
	m.lastText = text

	view := m.plugin.View()
	if w := m.chartModel.Width(); w > 0 {
		opts := view.Options()
		opts.Width = w
		view.SetOptions(opts)
	}

	var buf bytes.Buffer
	data, err := view.Render(&buf, text)
	if err != nil {
		logger.Error("Render failed", "error", err)
		m.renderError = err.Error()
	} else {
		m.renderError = ""
	}
	m.chartModel.SetContent(buf.String())
	return m.activityList.SetActivities(data.Activities, data.Colors)
}

func newSettingsFormModel(s models.Settings) *SettingsFormModel {
	return &SettingsFormModel{
		Saturation:    strconv.FormatFloat(s.Saturation, 'f', -1, 64),
		Lightness:     strconv.FormatFloat(s.Lightness, 'f', -1, 64),
		RowHeight:     strconv.Itoa(s.RowHeight),
		Margin:        strconv.Itoa(s.Margin),
		Gridlines:     strconv.Itoa(s.Gridlines),
		ChartWidth:    strconv.Itoa(s.ChartWidth),
		DefaultFormat: s.DefaultFormat,
	}
}

// toSettings converts the form strings back into settings.
func (fm *SettingsFormModel) toSettings() (models.Settings, error) {
	s, err := models.MapToSettings(map[string]string{
		constants.SettingSaturation:    fm.Saturation,
		constants.SettingLightness:     fm.Lightness,
		constants.SettingRowHeight:     fm.RowHeight,
		constants.SettingMargin:        fm.Margin,
		constants.SettingGridlines:     fm.Gridlines,
		constants.SettingChartWidth:    fm.ChartWidth,
		constants.SettingDefaultFormat: fm.DefaultFormat,
	})
	if err != nil {
		return models.Settings{}, err
	}
	if err := models.ValidateSettings(s); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}
