package tracker

import (
	"sort"

	"github.com/google/uuid"

	"github.com/julianstephens/secondwind/internal/clock"
	"github.com/julianstephens/secondwind/internal/generator"
	"github.com/julianstephens/secondwind/internal/habit"
	"github.com/julianstephens/secondwind/internal/models"
	"github.com/julianstephens/secondwind/internal/storage"
)

// Tracker reconciles user-authored tasks with the habit tasks derived for
// today and exposes the single unified list the presentation layer works
// with. Non-habit tasks and habit definitions live in separate persistence
// lanes; the tracker re-derives the non-habit subset on every save and
// rebuilds the habit subset whenever the habit store reports a change.
type Tracker struct {
	gw     *storage.Gateway
	habits *habit.Store
	engine *generator.Engine
	clk    clock.Clock
	tasks  []models.Task

	onTaskCompleted func()
}

func New(gw *storage.Gateway, habits *habit.Store, engine *generator.Engine, clk clock.Clock) *Tracker {
	t := &Tracker{
		gw:     gw,
		habits: habits,
		engine: engine,
		clk:    clk,
	}
	habits.OnTaskMaterialized(t.appendHabitTask)
	habits.OnUpdated(t.refreshHabitTasks)
	return t
}

// OnTaskCompleted registers a callback fired when a non-habit task is toggled
// to completed. Purely cosmetic: the presentation layer uses it for its
// celebration effect.
func (t *Tracker) OnTaskCompleted(fn func()) {
	t.onTaskCompleted = fn
}

// Load runs the startup sequence: read persisted tasks, regenerate habit
// state for the day, and merge the two into the unified list. Regeneration
// always completes before materialization so streaks are never stale.
func (t *Tracker) Load() {
	loaded := t.gw.LoadTasks()
	t.habits.Load()
	t.engine.RegenerateIfNeeded(t.habits)

	fresh := t.engine.MaterializeDailyTasks(t.habits.Habits())
	t.tasks = Unify(loaded, fresh)

	t.gw.RefreshBackup(loaded)
}

// Unify merges persisted tasks with freshly materialized habit tasks. All
// habit-derived entries in the persisted list are dropped: today's instances
// are regenerated with colliding ids, and instances from prior days carry a
// stale day suffix and are never migrated forward.
func Unify(persisted, habitTasks []models.Task) []models.Task {
	unified := make([]models.Task, 0, len(persisted)+len(habitTasks))
	for _, task := range persisted {
		if !task.IsHabit {
			unified = append(unified, task)
		}
	}
	return append(unified, habitTasks...)
}

// Tasks returns a copy of the unified list.
func (t *Tracker) Tasks() []models.Task {
	out := make([]models.Task, len(t.tasks))
	copy(out, t.tasks)
	return out
}

// Filtered returns the tasks matching the filter in display order: incomplete
// before completed, newest first within each group.
func (t *Tracker) Filtered(f models.Filter) []models.Task {
	out := make([]models.Task, 0, len(t.tasks))
	for _, task := range t.tasks {
		if task.Matches(f) {
			out = append(out, task)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Get looks up a root task, or a child of parentID when given.
func (t *Tracker) Get(id, parentID string) (models.Task, bool) {
	if parentID == "" {
		for _, task := range t.tasks {
			if task.ID == id {
				return task, true
			}
		}
		return models.Task{}, false
	}
	for _, task := range t.tasks {
		if task.ID != parentID {
			continue
		}
		for _, child := range task.Children {
			if child.ID == id {
				return child, true
			}
		}
	}
	return models.Task{}, false
}

// Add appends a new leaf task to the root list, or to parentID's children
// when given. Titles are validated by the caller before reaching here.
func (t *Tracker) Add(title, parentID string) models.Task {
	task := models.Task{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: t.clk.Now(),
		Children:  []models.Task{},
	}

	if parentID == "" {
		t.tasks = append(t.tasks, task)
	} else {
		for i := range t.tasks {
			if t.tasks[i].ID == parentID {
				t.tasks[i].Children = append(t.tasks[i].Children, task)
				break
			}
		}
	}

	t.persist()
	return task
}

// Toggle flips a task's completion state.
//
// Root tasks: completing a parent also completes every currently-incomplete
// child; completing a habit task drives the habit store's toggle state
// machine; completing a plain task fires the celebration signal.
//
// Children (parentID given): the child flips and the parent's completion is
// recomputed as "all children completed" rather than being directly settable.
func (t *Tracker) Toggle(id, parentID string) bool {
	if parentID != "" {
		return t.toggleChild(id, parentID)
	}

	for i := range t.tasks {
		task := &t.tasks[i]
		if task.ID != id {
			continue
		}

		now := t.clk.Now()
		completed := !task.Completed
		task.Completed = completed
		if completed {
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}

		if completed && task.HasChildren() {
			for j := range task.Children {
				if !task.Children[j].Completed {
					task.Children[j].Completed = true
					task.Children[j].CompletedAt = &now
				}
			}
		}

		switch {
		case task.IsHabit && completed:
			// Refreshing the habit subset replaces this instance, so persist
			// the flip first and carry the state across the rebuild.
			t.persist()
			t.habits.Toggle(t.sourceHabitID(*task))
			return true
		case !task.IsHabit && completed && t.onTaskCompleted != nil:
			t.onTaskCompleted()
		}

		t.persist()
		return true
	}

	return false
}

func (t *Tracker) toggleChild(id, parentID string) bool {
	for i := range t.tasks {
		parent := &t.tasks[i]
		if parent.ID != parentID {
			continue
		}

		for j := range parent.Children {
			child := &parent.Children[j]
			if child.ID != id {
				continue
			}

			now := t.clk.Now()
			child.Completed = !child.Completed
			if child.Completed {
				child.CompletedAt = &now
			} else {
				child.CompletedAt = nil
			}

			// The parent's completion is derived, not directly settable.
			if parent.AllChildrenCompleted() {
				parent.Completed = true
				parent.CompletedAt = &now
			} else {
				parent.Completed = false
				parent.CompletedAt = nil
			}

			t.persist()
			return true
		}
	}

	return false
}

// Edit renames a root task or a specific child.
func (t *Tracker) Edit(id, newTitle, parentID string) bool {
	for i := range t.tasks {
		task := &t.tasks[i]
		if parentID == "" {
			if task.ID == id {
				task.Title = newTitle
				t.persist()
				return true
			}
			continue
		}
		if task.ID != parentID {
			continue
		}
		for j := range task.Children {
			if task.Children[j].ID == id {
				task.Children[j].Title = newTitle
				t.persist()
				return true
			}
		}
	}
	return false
}

// Delete removes a root task or a specific child, returning the removed task
// so the caller can offer undo via Restore.
func (t *Tracker) Delete(id, parentID string) (models.Task, bool) {
	if parentID == "" {
		for i := range t.tasks {
			if t.tasks[i].ID == id {
				removed := t.tasks[i]
				t.tasks = append(t.tasks[:i], t.tasks[i+1:]...)
				t.persist()
				return removed, true
			}
		}
		return models.Task{}, false
	}

	for i := range t.tasks {
		parent := &t.tasks[i]
		if parent.ID != parentID {
			continue
		}
		for j := range parent.Children {
			if parent.Children[j].ID == id {
				removed := parent.Children[j]
				parent.Children = append(parent.Children[:j], parent.Children[j+1:]...)
				t.persist()
				return removed, true
			}
		}
	}
	return models.Task{}, false
}

// Restore reinserts a previously deleted task at the root, or under parentID
// when given. Supports the undo flow.
func (t *Tracker) Restore(task models.Task, parentID string) {
	if parentID == "" {
		t.tasks = append(t.tasks, task)
	} else {
		for i := range t.tasks {
			if t.tasks[i].ID == parentID {
				t.tasks[i].Children = append(t.tasks[i].Children, task)
				break
			}
		}
	}
	t.persist()
}

// appendHabitTask inserts a just-materialized today-task (from habit.Add)
// without a full rebuild. The id collides with any instance the rebuild path
// already produced, so duplicates are skipped.
func (t *Tracker) appendHabitTask(task models.Task) {
	for _, existing := range t.tasks {
		if existing.ID == task.ID {
			return
		}
	}
	t.tasks = append(t.tasks, task)
	t.persist()
}

// refreshHabitTasks rebuilds the habit subset of the unified list after any
// habit mutation. Completion state of instances that survive the rebuild
// (same composite id) is carried over so toggling a habit does not visibly
// uncheck it mid-session.
func (t *Tracker) refreshHabitTasks() {
	t.engine.RegenerateIfNeeded(t.habits)
	fresh := t.engine.MaterializeDailyTasks(t.habits.Habits())

	for i := range fresh {
		for _, existing := range t.tasks {
			if existing.ID == fresh[i].ID {
				fresh[i].Completed = existing.Completed
				fresh[i].CompletedAt = existing.CompletedAt
				break
			}
		}
	}

	t.tasks = Unify(t.tasks, fresh)
	t.persist()
}

// sourceHabitID resolves the habit behind a materialized task, falling back
// to the legacy composite-id parse for records persisted before the explicit
// field existed.
func (t *Tracker) sourceHabitID(task models.Task) string {
	if task.SourceHabitID != "" {
		return task.SourceHabitID
	}
	habitID, _ := models.ParseHabitTaskID(task.ID)
	return habitID
}

func (t *Tracker) persist() {
	t.gw.SaveTasks(t.tasks)
}
