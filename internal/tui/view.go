package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateTimeline:
		content = m.viewTimeline()
	case constants.StateActivities:
		content = docStyle.Render(m.activityList.View())
	case constants.StateSettings:
		content = docStyle.Render(m.settingsModel.View())
	case constants.StateEditSettings:
		content = m.form.View()
		if m.formError != "" {
			content = lipgloss.JoinVertical(lipgloss.Left, dangerStyle.Render(m.formError), content)
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Timeline", "Activities", "Settings"} {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTimeline() string {
	box := inputStyle
	if m.input.Focused() {
		box = focusedInputStyle
	}

	view := m.plugin.View()
	report := view.LastReport()
	summary := fmt.Sprintf("%d activities, %d skipped lines", report.Matched, report.Skipped)
	if data, ok := view.Current(); ok {
		if n := invalidRows(data.Rows); n > 0 {
			summary += fmt.Sprintf(", %d with invalid times", n)
		}
	}
	status := statusStyle.Render(summary)
	if m.renderError != "" {
		status = dangerStyle.Render(m.renderError)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		box.Render(m.input.View()),
		status,
		m.chartModel.View(),
	))
}

func invalidRows(rows []models.ChartRow) int {
	n := 0
	for _, r := range rows {
		if !r.Valid() {
			n++
		}
	}
	return n
}
