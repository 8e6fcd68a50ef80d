package habit

import (
	"strconv"

	"github.com/julianstephens/secondwind/internal/clock"
	"github.com/julianstephens/secondwind/internal/models"
	"github.com/julianstephens/secondwind/internal/storage"
)

// Store owns the habit definitions and is the only place streak and
// last-completed-date fields are mutated. Every mutation is immediately
// persisted through the gateway and announced via the OnUpdated callback so
// the unified task list can be recomputed.
type Store struct {
	gw     *storage.Gateway
	clk    clock.Clock
	habits []models.Habit

	onUpdated          func()
	onTaskMaterialized func(models.Task)
}

func NewStore(gw *storage.Gateway, clk clock.Clock) *Store {
	return &Store{
		gw:  gw,
		clk: clk,
	}
}

// OnUpdated registers a callback fired after any habit mutation.
func (s *Store) OnUpdated(fn func()) {
	s.onUpdated = fn
}

// OnTaskMaterialized registers a callback fired when Add materializes a
// today-task for immediate display.
func (s *Store) OnTaskMaterialized(fn func(models.Task)) {
	s.onTaskMaterialized = fn
}

// Today returns the store's current calendar day, for views that need to
// show per-day completion state.
func (s *Store) Today() string {
	return clock.Today(s.clk)
}

// Load replaces the in-memory definitions with the persisted ones.
func (s *Store) Load() {
	s.habits = s.gw.LoadHabits()
}

// Habits returns a copy of the current definitions.
func (s *Store) Habits() []models.Habit {
	out := make([]models.Habit, len(s.habits))
	copy(out, s.habits)
	return out
}

// Get looks up a habit by id.
func (s *Store) Get(id string) (models.Habit, bool) {
	for _, h := range s.habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// Add creates a new active habit and materializes its today-task so the list
// can show it without waiting for the next regeneration.
func (s *Store) Add(title string) (models.Habit, models.Task) {
	now := s.clk.Now()
	habit := models.Habit{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Title:     title,
		IsActive:  true,
		Streak:    0,
		CreatedAt: now,
	}
	s.habits = append(s.habits, habit)
	s.persist()

	today := clock.Today(s.clk)
	task := models.Task{
		ID:            models.HabitTaskID(habit.ID, today),
		Title:         habit.Title,
		Completed:     false,
		IsHabit:       true,
		SourceHabitID: habit.ID,
		CreatedAt:     now,
		Children:      []models.Task{},
	}
	if s.onTaskMaterialized != nil {
		s.onTaskMaterialized(task)
	}

	return habit, task
}

// Edit renames a habit in place. Streak and completion state are untouched.
func (s *Store) Edit(id, title string) bool {
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits[i].Title = title
			s.persist()
			return true
		}
	}
	return false
}

// Delete removes a habit definition. Task instances already materialized for
// prior days are left alone.
func (s *Store) Delete(id string) bool {
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits = append(s.habits[:i], s.habits[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// Toggle drives the per-habit completion state machine for the current day:
//
//   - Completed today already: undo it. The completion date is cleared and the
//     streak drops by one, floored at zero.
//   - Not completed today: complete it. If the previous completion was
//     yesterday the streak continues (+1); otherwise today starts a fresh
//     streak of one.
func (s *Store) Toggle(id string) (models.Habit, bool) {
	today := clock.Today(s.clk)
	yesterday := clock.Yesterday(s.clk)

	for i := range s.habits {
		h := &s.habits[i]
		if h.ID != id {
			continue
		}

		if h.CompletedOn(today) {
			h.LastCompletedDate = ""
			if h.Streak > 0 {
				h.Streak--
			}
		} else {
			if h.CompletedOn(yesterday) {
				h.Streak++
			} else {
				h.Streak = 1
			}
			h.LastCompletedDate = today
		}

		s.persist()
		return *h, true
	}

	return models.Habit{}, false
}

// ResetBrokenStreaks zeroes the streak of every habit whose last completion is
// neither today nor yesterday. Habits completed yesterday keep their streak
// (they can still continue it today); habits already completed today were
// incremented by Toggle and must not be double-counted.
//
// Called by the regeneration engine on the first load of a new day. It does
// not fire OnUpdated: the engine's caller rebuilds the unified list right
// after regeneration, and firing here would re-enter that rebuild.
func (s *Store) ResetBrokenStreaks(today, yesterday string) {
	for i := range s.habits {
		h := &s.habits[i]
		if h.CompletedOn(yesterday) || h.CompletedOn(today) {
			continue
		}
		h.Streak = 0
	}
	// Persist even without streak changes so the sweep and the marker advance
	// observe the same data.
	s.gw.SaveHabits(s.habits)
}

func (s *Store) persist() {
	s.gw.SaveHabits(s.habits)
	if s.onUpdated != nil {
		s.onUpdated()
	}
}
