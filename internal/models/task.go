package models

import "time"

// Filter selects which slice of the unified task list a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterHabits    Filter = "habits"
)

// Task is a single entry in the unified list: either a user-authored task
// (optionally with one level of children) or a habit's materialized instance
// for today.
//
// Habit-derived tasks carry IsHabit plus SourceHabitID and are never written
// to the tasks storage key; they are rebuilt from the habit definitions each
// day. Their ID keeps the legacy composite format (see HabitTaskID) so at most
// one instance per habit per day can exist.
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Completed     bool       `json:"completed"`
	IsHabit       bool       `json:"isHabit,omitempty"`
	SourceHabitID string     `json:"sourceHabitId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	Children      []Task     `json:"children,omitempty"` // one level deep only
}

// HasChildren reports whether the task is a parent. Parents derive their
// completion state from their children.
func (t Task) HasChildren() bool {
	return len(t.Children) > 0
}

// AllChildrenCompleted reports whether every child is completed. False when
// there are no children.
func (t Task) AllChildrenCompleted() bool {
	if len(t.Children) == 0 {
		return false
	}
	for _, c := range t.Children {
		if !c.Completed {
			return false
		}
	}
	return true
}

// Matches reports whether the task belongs in the given filter view.
func (t Task) Matches(f Filter) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterHabits:
		return t.IsHabit
	default:
		return true
	}
}
