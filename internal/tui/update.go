package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/secondwind/internal/models"
	"github.com/julianstephens/secondwind/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.taskList.SetSize(msg.Width-h, msg.Height-v-4)
		m.habitList.SetSize(msg.Width-h, msg.Height-v-4)
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateConfirmDeleteHabit:
		return m.updateConfirmDeleteHabit(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.activeList().FilterState() == list.Filtering {
				break
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			if m.state == StateTasks {
				m.state = StateHabits
			} else {
				m.state = StateTasks
			}
			m.status = ""
			return m, nil
		}

		if m.state == StateTasks {
			if handled, next, cmd := m.handleTasksKey(msg); handled {
				return next, cmd
			}
		} else {
			if handled, next, cmd := m.handleHabitsKey(msg); handled {
				return next, cmd
			}
		}
	}

	var cmd tea.Cmd
	if m.state == StateTasks {
		m.taskList, cmd = m.taskList.Update(msg)
	} else {
		m.habitList, cmd = m.habitList.Update(msg)
	}
	return m, cmd
}

func (m *Model) activeList() *list.Model {
	if m.state == StateHabits {
		return &m.habitList
	}
	return &m.taskList
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if m.taskList.FilterState() == list.Filtering {
		return false, m, nil
	}

	selected, hasSelection := m.taskList.SelectedItem().(TaskItem)

	switch {
	case key.Matches(msg, m.keys.Toggle):
		if !hasSelection {
			return false, m, nil
		}
		m.status = ""
		m.tracker.Toggle(selected.Task.ID, selected.ParentID)
		if m.celebrate.fired {
			m.celebrate.fired = false
			m.setStatus("🎉 %s done!", selected.Task.Title)
		}
		m.reloadLists()
		return true, m, nil

	case key.Matches(msg, m.keys.Add):
		m.openForm(formAddTask, "New task", "")
		return true, m, nil

	case key.Matches(msg, m.keys.AddSub):
		if !hasSelection {
			return false, m, nil
		}
		parentID := selected.Task.ID
		if selected.ParentID != "" {
			// Selecting a subtask targets its parent: one level deep only.
			parentID = selected.ParentID
		}
		if task, ok := m.tracker.Get(parentID, ""); ok && task.IsHabit {
			m.setStatus("Habit tasks cannot have subtasks")
			return true, m, nil
		}
		m.formParentID = parentID
		m.openForm(formAddSubtask, "New subtask", "")
		return true, m, nil

	case key.Matches(msg, m.keys.Edit):
		if !hasSelection {
			return false, m, nil
		}
		m.formTargetID = selected.Task.ID
		m.formParentID = selected.ParentID
		m.openForm(formEditTask, "Rename task", selected.Task.Title)
		return true, m, nil

	case key.Matches(msg, m.keys.Delete):
		if !hasSelection {
			return false, m, nil
		}
		if removed, ok := m.tracker.Delete(selected.Task.ID, selected.ParentID); ok {
			m.lastDeleted = &removed
			m.lastDeletedParent = selected.ParentID
			m.setStatus("Deleted %q — press u to undo", removed.Title)
			m.reloadLists()
		}
		return true, m, nil

	case key.Matches(msg, m.keys.Undo):
		if m.lastDeleted == nil {
			m.setStatus("Nothing to undo")
			return true, m, nil
		}
		m.tracker.Restore(*m.lastDeleted, m.lastDeletedParent)
		m.setStatus("Restored %q", m.lastDeleted.Title)
		m.lastDeleted = nil
		m.lastDeletedParent = ""
		m.reloadLists()
		return true, m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filter = nextFilter(m.filter)
		m.reloadLists()
		return true, m, nil
	}

	return false, m, nil
}

func (m Model) handleHabitsKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if m.habitList.FilterState() == list.Filtering {
		return false, m, nil
	}

	selected, hasSelection := m.habitList.SelectedItem().(HabitItem)

	switch {
	case key.Matches(msg, m.keys.Toggle):
		if !hasSelection {
			return false, m, nil
		}
		if h, ok := m.habits.Toggle(selected.Habit.ID); ok {
			if h.LastCompletedDate == "" {
				m.setStatus("Undid today's %q", h.Title)
			} else {
				m.setStatus("%q done — streak %d", h.Title, h.Streak)
			}
		}
		m.reloadLists()
		return true, m, nil

	case key.Matches(msg, m.keys.Add):
		m.openForm(formAddHabit, "New habit", "")
		return true, m, nil

	case key.Matches(msg, m.keys.Edit):
		if !hasSelection {
			return false, m, nil
		}
		m.formTargetID = selected.Habit.ID
		m.openForm(formEditHabit, "Rename habit", selected.Habit.Title)
		return true, m, nil

	case key.Matches(msg, m.keys.Delete):
		if !hasSelection {
			return false, m, nil
		}
		m.habitToDeleteID = selected.Habit.ID
		m.previousState = m.state
		m.state = StateConfirmDeleteHabit
		return true, m, nil
	}

	return false, m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.applyForm()
		m.state = m.previousState
		m.form = nil
		m.reloadLists()
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m *Model) applyForm() {
	title, err := validation.Title(m.formValue)
	if err != nil {
		m.setStatus("Not saved: %v", err)
		return
	}

	switch m.formFor {
	case formAddTask:
		m.tracker.Add(title, "")
		m.setStatus("Added %q", title)
	case formAddSubtask:
		m.tracker.Add(title, m.formParentID)
		m.setStatus("Added subtask %q", title)
	case formAddHabit:
		m.habits.Add(title)
		m.setStatus("Added habit %q", title)
	case formEditTask:
		m.tracker.Edit(m.formTargetID, title, m.formParentID)
		m.setStatus("Renamed to %q", title)
	case formEditHabit:
		m.habits.Edit(m.formTargetID, title)
		m.setStatus("Renamed habit to %q", title)
	}

	m.formTargetID = ""
	m.formParentID = ""
}

func (m Model) updateConfirmDeleteHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		if h, ok := m.habits.Get(m.habitToDeleteID); ok {
			m.habits.Delete(h.ID)
			m.setStatus("Deleted habit %q", h.Title)
		}
		m.habitToDeleteID = ""
		m.state = m.previousState
		m.reloadLists()
	case "n", "N", "esc", "q":
		m.habitToDeleteID = ""
		m.state = m.previousState
	}

	return m, nil
}

func nextFilter(f models.Filter) models.Filter {
	switch f {
	case models.FilterAll:
		return models.FilterActive
	case models.FilterActive:
		return models.FilterCompleted
	case models.FilterCompleted:
		return models.FilterHabits
	default:
		return models.FilterAll
	}
}
