package activities

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tlview/internal/models"
)

type Item struct {
	Activity models.Activity
	Color    string
}

func (i Item) Title() string {
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(i.Color)).Render("  ")
	return swatch + " " + i.Activity.RawDescription
}

func (i Item) Description() string {
	return fmt.Sprintf("#%d | %s | start %.3fs | duration %.3fs | %s",
		i.Activity.ID, i.Activity.ActionName, i.Activity.StartTime, i.Activity.Duration, i.Color)
}

func (i Item) FilterValue() string { return i.Activity.RawDescription }

// Model lists the activities of the current render pass.
type Model struct {
	list list.Model
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Activities"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

// SetActivities replaces the items. colors is parallel to acts; a missing
// color leaves the swatch blank.
func (m *Model) SetActivities(acts []models.Activity, colors []string) tea.Cmd {
	items := make([]list.Item, len(acts))
	for i, a := range acts {
		item := Item{Activity: a}
		if i < len(colors) {
			item.Color = colors[i]
		}
		items[i] = item
	}
	return m.list.SetItems(items)
}

// Items returns the listed activities in order.
func (m Model) Items() []Item {
	out := make([]Item, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if item, ok := it.(Item); ok {
			out = append(out, item)
		}
	}
	return out
}

// Filtering reports whether the list filter input has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No activities found.\n  Paste planner output on the Timeline tab."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
