package habit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/secondwind/internal/clock"
	"github.com/julianstephens/secondwind/internal/models"
	"github.com/julianstephens/secondwind/internal/storage"
)

func setupTestStore(t *testing.T) (*Store, *clock.Fixed, *storage.Gateway) {
	tempDir := t.TempDir()
	kv := storage.NewFileStore(filepath.Join(tempDir, "test.json"))
	if err := kv.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}

	clk := &clock.Fixed{Time: time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)}
	gw := storage.NewGateway(kv, clk)
	store := NewStore(gw, clk)
	store.Load()
	return store, clk, gw
}

func TestAddMaterializesTodayTask(t *testing.T) {
	store, clk, _ := setupTestStore(t)

	var materialized []models.Task
	store.OnTaskMaterialized(func(task models.Task) {
		materialized = append(materialized, task)
	})

	habit, task := store.Add("Morning run")

	if habit.Title != "Morning run" || !habit.IsActive || habit.Streak != 0 {
		t.Errorf("unexpected new habit: %+v", habit)
	}
	if habit.LastCompletedDate != "" {
		t.Errorf("new habit should not be completed, got %q", habit.LastCompletedDate)
	}

	wantID := "habit-" + habit.ID + "-" + clock.Today(clk)
	if task.ID != wantID {
		t.Errorf("expected task id %q, got %q", wantID, task.ID)
	}
	if !task.IsHabit || task.SourceHabitID != habit.ID || task.Completed {
		t.Errorf("unexpected materialized task: %+v", task)
	}

	if len(materialized) != 1 || materialized[0].ID != task.ID {
		t.Errorf("expected one materialization callback, got %+v", materialized)
	}
}

func TestToggleStartsFreshStreak(t *testing.T) {
	store, _, _ := setupTestStore(t)
	habit, _ := store.Add("Meditate")

	updated, ok := store.Toggle(habit.ID)
	if !ok {
		t.Fatalf("toggle failed for existing habit")
	}
	if updated.Streak != 1 {
		t.Errorf("expected streak 1 after first completion, got %d", updated.Streak)
	}
	if updated.LastCompletedDate != store.Today() {
		t.Errorf("expected completion date %q, got %q", store.Today(), updated.LastCompletedDate)
	}
}

func TestToggleContinuesStreakFromYesterday(t *testing.T) {
	store, clk, _ := setupTestStore(t)
	habit, _ := store.Add("Meditate")

	if _, ok := store.Toggle(habit.ID); !ok {
		t.Fatalf("toggle failed")
	}

	clk.Advance(24 * time.Hour)

	updated, ok := store.Toggle(habit.ID)
	if !ok {
		t.Fatalf("toggle failed")
	}
	if updated.Streak != 2 {
		t.Errorf("expected streak to continue to 2, got %d", updated.Streak)
	}
	if updated.LastCompletedDate != store.Today() {
		t.Errorf("expected completion date to advance to %q, got %q", store.Today(), updated.LastCompletedDate)
	}
}

func TestToggleRestartsStreakAfterGap(t *testing.T) {
	store, clk, _ := setupTestStore(t)
	habit, _ := store.Add("Meditate")

	if _, ok := store.Toggle(habit.ID); !ok {
		t.Fatalf("toggle failed")
	}

	// Skip two days: the chain is broken.
	clk.Advance(72 * time.Hour)

	updated, _ := store.Toggle(habit.ID)
	if updated.Streak != 1 {
		t.Errorf("expected streak to restart at 1 after a gap, got %d", updated.Streak)
	}
}

func TestToggleUndoSameDay(t *testing.T) {
	store, clk, _ := setupTestStore(t)
	habit, _ := store.Add("Meditate")

	// Build a 2-day streak, then undo today's completion.
	store.Toggle(habit.ID)
	clk.Advance(24 * time.Hour)
	store.Toggle(habit.ID)

	updated, ok := store.Toggle(habit.ID)
	if !ok {
		t.Fatalf("toggle failed")
	}
	if updated.Streak != 1 {
		t.Errorf("expected undo to drop streak to 1, got %d", updated.Streak)
	}
	if updated.LastCompletedDate != "" {
		t.Errorf("expected undo to clear completion date, got %q", updated.LastCompletedDate)
	}
}

func TestToggleUndoFloorsStreakAtZero(t *testing.T) {
	store, _, _ := setupTestStore(t)
	habit, _ := store.Add("Meditate")

	store.Toggle(habit.ID)
	updated, _ := store.Toggle(habit.ID)
	if updated.Streak != 0 {
		t.Errorf("expected streak floored at 0, got %d", updated.Streak)
	}

	// Re-complete and confirm undo never goes negative.
	store.Toggle(habit.ID)
	updated, _ = store.Toggle(habit.ID)
	if updated.Streak != 0 {
		t.Errorf("expected streak 0 after repeated undo, got %d", updated.Streak)
	}
}

func TestToggleUnknownHabit(t *testing.T) {
	store, _, _ := setupTestStore(t)

	if _, ok := store.Toggle("nope"); ok {
		t.Errorf("toggling an unknown habit should report failure")
	}
}

func TestToggleFiresOnUpdated(t *testing.T) {
	store, _, _ := setupTestStore(t)
	habit, _ := store.Add("Meditate")

	fired := 0
	store.OnUpdated(func() { fired++ })

	store.Toggle(habit.ID)
	if fired != 1 {
		t.Errorf("expected OnUpdated to fire once per toggle, got %d", fired)
	}
}

func TestEditRenamesWithoutTouchingStreak(t *testing.T) {
	store, _, _ := setupTestStore(t)
	habit, _ := store.Add("Meditate")
	store.Toggle(habit.ID)

	if !store.Edit(habit.ID, "Meditate 10m") {
		t.Fatalf("edit failed for existing habit")
	}

	updated, _ := store.Get(habit.ID)
	if updated.Title != "Meditate 10m" {
		t.Errorf("expected renamed habit, got %q", updated.Title)
	}
	if updated.Streak != 1 || updated.LastCompletedDate != store.Today() {
		t.Errorf("edit must not touch completion state: %+v", updated)
	}
}

func TestDeleteRemovesHabit(t *testing.T) {
	store, _, _ := setupTestStore(t)
	habit, _ := store.Add("Meditate")

	if !store.Delete(habit.ID) {
		t.Fatalf("delete failed for existing habit")
	}
	if _, ok := store.Get(habit.ID); ok {
		t.Errorf("deleted habit should be gone")
	}
	if store.Delete(habit.ID) {
		t.Errorf("deleting twice should report failure")
	}
}

func TestStatePersistsAcrossLoads(t *testing.T) {
	store, clk, gw := setupTestStore(t)
	habit, _ := store.Add("Meditate")
	store.Toggle(habit.ID)

	reloaded := NewStore(gw, clk)
	reloaded.Load()

	got, ok := reloaded.Get(habit.ID)
	if !ok {
		t.Fatalf("habit missing after reload")
	}
	if got.Streak != 1 || got.LastCompletedDate != reloaded.Today() {
		t.Errorf("streak state lost across reload: %+v", got)
	}
}

func TestResetBrokenStreaks(t *testing.T) {
	store, clk, _ := setupTestStore(t)

	broken, _ := store.Add("Broken")
	store.Toggle(broken.ID)

	clk.Advance(24 * time.Hour)
	kept, _ := store.Add("Kept")
	store.Toggle(kept.ID)

	doneToday, _ := store.Add("Done today")

	// Two days after the first completion: "Broken" lapsed, "Kept" completed
	// yesterday, "Done today" completed this morning.
	clk.Advance(24 * time.Hour)
	store.Toggle(doneToday.ID)

	store.ResetBrokenStreaks(store.Today(), clock.Yesterday(clk))

	if h, _ := store.Get(broken.ID); h.Streak != 0 {
		t.Errorf("lapsed habit should reset to 0, got %d", h.Streak)
	}
	if h, _ := store.Get(kept.ID); h.Streak != 1 {
		t.Errorf("habit completed yesterday should keep its streak, got %d", h.Streak)
	}
	if h, _ := store.Get(doneToday.ID); h.Streak != 1 {
		t.Errorf("habit completed today should keep its streak, got %d", h.Streak)
	}
}
