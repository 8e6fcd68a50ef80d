package models

import (
	"fmt"
	"strings"
	"time"
)

// Habit is a recurring routine the user wants to keep up daily. A habit never
// appears in the task list directly; each day it is materialized into a
// throwaway Task instance (see HabitTaskID).
type Habit struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	IsActive          bool      `json:"isActive"`
	Streak            int       `json:"streak"`
	LastCompletedDate string    `json:"lastCompletedDate,omitempty"` // YYYY-MM-DD
	CreatedAt         time.Time `json:"createdAt"`
}

// CompletedOn reports whether the habit was completed on the given calendar day.
func (h Habit) CompletedOn(day string) bool {
	return h.LastCompletedDate != "" && h.LastCompletedDate == day
}

// HabitTaskID builds the composite id of a habit's materialized task for a
// given day. The format is the legacy wire format from earlier releases
// ("habit-<habitId>-<day>"); persisted data may still contain such ids, so the
// format must not change.
func HabitTaskID(habitID, day string) string {
	return fmt.Sprintf("habit-%s-%s", habitID, day)
}

// ParseHabitTaskID extracts the habit id from a composite habit-task id.
// It exists only to recover the source habit from records persisted before
// tasks carried SourceHabitID explicitly. New code should read SourceHabitID.
func ParseHabitTaskID(taskID string) (habitID string, ok bool) {
	rest, found := strings.CutPrefix(taskID, "habit-")
	if !found {
		return "", false
	}
	// The day suffix is the final "-YYYY-MM-DD". Habit ids are dash-free
	// unix-millisecond strings, but scan from the right to stay tolerant of
	// ids that contain dashes anyway.
	if len(rest) < len("x-2006-01-02") {
		return "", false
	}
	cut := len(rest) - len("-2006-01-02")
	if rest[cut] != '-' {
		return "", false
	}
	return rest[:cut], true
}
