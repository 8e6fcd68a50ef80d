package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateHabits:
		content = docStyle.Render(m.habitList.View())
	case StateForm:
		content = docStyle.Render(m.form.View())
	case StateConfirmDeleteHabit:
		content = m.viewConfirmDeleteHabit()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Tasks", "Habits"} {
		if m.state == SessionState(i) || (m.state >= StateForm && m.previousState == SessionState(i)) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.state == StateTasks {
		row = lipgloss.JoinHorizontal(lipgloss.Top, row, filterStyle.Render(fmt.Sprintf("filter: %s", m.filter)))
	}
	return row
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	return statusStyle.Render(m.status)
}

func (m Model) viewConfirmDeleteHabit() string {
	title := ""
	if h, ok := m.habits.Get(m.habitToDeleteID); ok {
		title = h.Title
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete habit %q? Its streak will be lost.", title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
