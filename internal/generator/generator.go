package generator

import (
	"github.com/julianstephens/secondwind/internal/clock"
	"github.com/julianstephens/secondwind/internal/habit"
	"github.com/julianstephens/secondwind/internal/models"
	"github.com/julianstephens/secondwind/internal/storage"
)

// Engine derives each day's habit-task instances and performs the
// cross-midnight streak-reset sweep. Regeneration is guarded by a persisted
// day marker so it runs at most once per calendar day no matter how many
// times the application is started.
type Engine struct {
	gw  *storage.Gateway
	clk clock.Clock
}

func New(gw *storage.Gateway, clk clock.Clock) *Engine {
	return &Engine{gw: gw, clk: clk}
}

// RegenerateIfNeeded runs the daily sweep unless it has already run today.
// On the first call of a new day it resets the streak of every habit that was
// completed neither yesterday nor today, persists the habits, and advances
// the marker. Must complete before MaterializeDailyTasks on the same load
// cycle so the list never shows stale streak state.
func (e *Engine) RegenerateIfNeeded(habits *habit.Store) {
	today := clock.Today(e.clk)
	if last, ok := e.gw.LastGenerationDate(); ok && last == today {
		return
	}

	habits.ResetBrokenStreaks(today, clock.Yesterday(e.clk))
	e.gw.SetLastGenerationDate(today)
}

// MaterializeDailyTasks produces today's task stub for every active habit.
// Purely derived: no writes, no habit mutation. The composite id makes the
// instance collide with any other materialization of the same habit on the
// same day, which is what keeps the unified list at one instance per habit
// per day.
func (e *Engine) MaterializeDailyTasks(habits []models.Habit) []models.Task {
	today := clock.Today(e.clk)
	now := e.clk.Now()

	tasks := make([]models.Task, 0, len(habits))
	for _, h := range habits {
		if !h.IsActive {
			continue
		}
		tasks = append(tasks, models.Task{
			ID:            models.HabitTaskID(h.ID, today),
			Title:         h.Title,
			Completed:     false,
			IsHabit:       true,
			SourceHabitID: h.ID,
			CreatedAt:     now,
			Children:      []models.Task{},
		})
	}

	return tasks
}
