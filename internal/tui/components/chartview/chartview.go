package chartview

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var emptyStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")).
	Italic(true)

// Model is a scrollable pane holding the rendered terminal chart.
type Model struct {
	viewport viewport.Model
	content  string
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.content == "" {
		return emptyStyle.Render("Nothing rendered yet.")
	}
	return m.viewport.View()
}

// SetContent replaces the chart and scrolls back to the top.
func (m *Model) SetContent(content string) {
	m.content = content
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

// Content returns the chart currently shown.
func (m Model) Content() string {
	return m.content
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// Width returns the pane width in columns.
func (m Model) Width() int {
	return m.width
}
