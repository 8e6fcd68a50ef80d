package constants

const (
	// DayFormat is the calendar-day layout used everywhere a date is compared
	// or persisted as a plain day (streaks, generation marker, habit-task ids).
	// Comparisons are plain string equality, so every producer must use it.
	DayFormat = "2006-01-02"

	// UntitledTask is substituted for a missing or unreadable title when
	// reviving records from storage.
	UntitledTask = "Untitled"
)

// Storage keys. The tasks key never contains habit-derived tasks; those are
// rebuilt from the habits key on every load.
const (
	KeyTasks              = "tasks"
	KeyTasksBackup        = "tasks-backup"
	KeyHabits             = "habits"
	KeyLastGenerationDate = "habits-last-generation-date"
)
