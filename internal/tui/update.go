package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/logger"
	"github.com/julianstephens/tlview/internal/tui/components/settings"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.state == constants.StateEditSettings {
		cmd := m.updateEditSettings(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		cmd := m.render()
		return m, cmd

	case settings.EditSettingsMsg:
		m.settingsForm = newSettingsFormModel(m.plugin.Settings())
		m.form = NewSettingsForm(m.settingsForm)
		m.formError = ""
		m.state = constants.StateEditSettings
		cmd := m.form.Init()
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.state == constants.StateTimeline && m.input.Focused() {
			cmd := m.updateInput(msg)
			return m, cmd
		}
		if m.state == constants.StateActivities && m.activityList.Filtering() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.TabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + constants.TabCount) % constants.TabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Clear) && m.state == constants.StateTimeline:
			m.input.Reset()
			cmd := tea.Batch(m.render(), m.input.Focus())
			return m, cmd
		case key.Matches(msg, m.keys.Focus) && m.state == constants.StateTimeline:
			cmd := m.input.Focus()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateTimeline:
		m.chartModel, cmd = m.chartModel.Update(msg)
	case constants.StateActivities:
		m.activityList, cmd = m.activityList.Update(msg)
	case constants.StateSettings:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// updateInput handles keys while the text box has focus. Any edit that
// changes the text triggers a new render pass.
func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Blur):
		m.input.Blur()
		return nil
	case key.Matches(msg, m.keys.Tab):
		m.input.Blur()
		m.state = (m.state + 1) % constants.TabCount
		return nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.input.Blur()
		m.state = (m.state - 1 + constants.TabCount) % constants.TabCount
		return nil
	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		return m.render()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.lastText {
		return tea.Batch(cmd, m.render())
	}
	return cmd
}

func (m *Model) updateEditSettings(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = constants.StateSettings
		return nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.applySettingsForm(); err != nil {
			m.formError = "Failed to update settings: " + err.Error()
			m.form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.formError = ""
		m.state = constants.StateSettings
		cmds = append(cmds, m.render())
	case huh.StateAborted:
		m.formError = ""
		m.state = constants.StateSettings
	}
	return tea.Batch(cmds...)
}

// applySettingsForm validates the form, stores the settings and applies them
// to the plugin.
func (m *Model) applySettingsForm() error {
	s, err := m.settingsForm.toSettings()
	if err != nil {
		return err
	}
	if err := m.store.SaveSettings(s); err != nil {
		return err
	}
	if err := m.plugin.SetSettings(s); err != nil {
		return err
	}
	m.settingsModel.SetSettings(m.plugin.Settings())
	logger.Info("Settings updated from TUI")
	return nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.plugin.Disable()
	return m, tea.Quit
}

func (m *Model) resize() {
	h, v := docStyle.GetFrameSize()
	width := max(m.width-h, 0)
	contentHeight := max(m.height-4-v, 0)
	m.input.SetWidth(max(width-2, 1))
	m.chartModel.SetSize(width, max(contentHeight-inputHeight-3, 1))
	m.activityList.SetSize(width, contentHeight)
	m.settingsModel.SetSize(width, contentHeight)
}
