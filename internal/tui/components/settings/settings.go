package settings

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tlview/internal/colorizer"
	"github.com/julianstephens/tlview/internal/models"
)

type EditSettingsMsg struct{}

// Model shows the current settings and a color sample.
type Model struct {
	settings   models.Settings
	configPath string
	width      int
	height     int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(20)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

var sampleNames = []string{"here", "move", "load", "drive-truck"}

func New(s models.Settings, configPath string, width, height int) Model {
	return Model{settings: s, configPath: configPath, width: width, height: height}
}

func (m *Model) SetSettings(s models.Settings) {
	m.settings = s
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "e" {
		return m, func() tea.Msg { return EditSettingsMsg{} }
	}
	return m, nil
}

func row(label, value string) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(label), valueStyle.Render(value))
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	colors := lipgloss.JoinVertical(
		lipgloss.Left,
		row("Saturation:", fmt.Sprintf("%.2f", m.settings.Saturation)),
		row("Lightness:", fmt.Sprintf("%.2f", m.settings.Lightness)),
	)

	var samples []string
	for _, name := range sampleNames {
		hex := colorizer.WordToColor(name, m.settings.Saturation, m.settings.Lightness)
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
		samples = append(samples, fmt.Sprintf("%s %-12s %s", swatch, name, hex))
	}

	layout := lipgloss.JoinVertical(
		lipgloss.Left,
		row("Row height (px):", fmt.Sprintf("%d", m.settings.RowHeight)),
		row("Margin (px):", fmt.Sprintf("%d", m.settings.Margin)),
		row("Gridlines:", fmt.Sprintf("%d", m.settings.Gridlines)),
		row("Chart width:", fmt.Sprintf("%d", m.settings.ChartWidth)),
		row("Default format:", m.settings.DefaultFormat),
	)

	helpText := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		MarginTop(1).
		Render("Press 'e' to edit settings")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		sectionStyle.Render(titleStyle.Render("Colors")+"\n"+colors+"\n\n"+lipgloss.JoinVertical(lipgloss.Left, samples...)),
		sectionStyle.Render(titleStyle.Render("Chart")+"\n"+layout),
		row("Storage:", m.configPath),
		helpText,
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
