package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/julianstephens/secondwind/internal/habit"
	"github.com/julianstephens/secondwind/internal/models"
)

// TaskItem is one row of the unified list. Children are flattened under
// their parent with ParentID set.
type TaskItem struct {
	Task     models.Task
	ParentID string
	Streak   int
}

func (i TaskItem) Title() string {
	box := "☐"
	if i.Task.Completed {
		box = "☑"
	}
	indent := ""
	if i.ParentID != "" {
		indent = "  └ "
	}
	return indent + box + " " + i.Task.Title
}

func (i TaskItem) Description() string {
	if i.Task.IsHabit {
		if i.Streak == 1 {
			return "habit · 1 day streak"
		}
		return fmt.Sprintf("habit · %d day streak", i.Streak)
	}
	if i.ParentID != "" {
		return "subtask"
	}
	if len(i.Task.Children) > 0 {
		done := 0
		for _, c := range i.Task.Children {
			if c.Completed {
				done++
			}
		}
		return fmt.Sprintf("%d/%d subtasks done", done, len(i.Task.Children))
	}
	return "task"
}

func (i TaskItem) FilterValue() string { return i.Task.Title }

func taskItems(tasks []models.Task, habits *habit.Store) []list.Item {
	var items []list.Item
	for _, task := range tasks {
		item := TaskItem{Task: task}
		if task.IsHabit {
			if h, ok := habits.Get(task.SourceHabitID); ok {
				item.Streak = h.Streak
			}
		}
		items = append(items, item)
		for _, child := range task.Children {
			items = append(items, TaskItem{Task: child, ParentID: task.ID})
		}
	}
	return items
}

// HabitItem is one row of the habit definitions view.
type HabitItem struct {
	Habit models.Habit
	Today string
}

func (i HabitItem) Title() string {
	box := "☐"
	if i.Habit.CompletedOn(i.Today) {
		box = "☑"
	}
	return box + " " + i.Habit.Title
}

func (i HabitItem) Description() string {
	desc := fmt.Sprintf("streak %d", i.Habit.Streak)
	if i.Habit.LastCompletedDate != "" {
		desc += " · last done " + i.Habit.LastCompletedDate
	}
	if !i.Habit.IsActive {
		desc += " · inactive"
	}
	return desc
}

func (i HabitItem) FilterValue() string { return i.Habit.Title }

func habitItems(habits []models.Habit, today string) []list.Item {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = HabitItem{Habit: h, Today: today}
	}
	return items
}
