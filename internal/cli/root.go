package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/secondwind/internal/clock"
	"github.com/julianstephens/secondwind/internal/generator"
	"github.com/julianstephens/secondwind/internal/habit"
	"github.com/julianstephens/secondwind/internal/models"
	"github.com/julianstephens/secondwind/internal/storage"
	"github.com/julianstephens/secondwind/internal/tracker"
)

type Context struct {
	Store storage.KeyValue
	Clock clock.Clock
}

// Session is the wired-up core for one command invocation: storage loaded,
// daily regeneration done, unified list ready.
type Session struct {
	Gateway *storage.Gateway
	Habits  *habit.Store
	Tracker *tracker.Tracker
}

// Open loads the store and runs the startup sequence. Every command that
// touches tasks or habits goes through here so regeneration is never skipped.
func (ctx *Context) Open() (*Session, error) {
	if err := ctx.Store.Load(); err != nil {
		return nil, err
	}

	gw := storage.NewGateway(ctx.Store, ctx.Clock)
	habits := habit.NewStore(gw, ctx.Clock)
	engine := generator.New(gw, ctx.Clock)
	tr := tracker.New(gw, habits, engine, ctx.Clock)
	tr.Load()

	return &Session{
		Gateway: gw,
		Habits:  habits,
		Tracker: tr,
	}, nil
}

func parseFilter(s string) (models.Filter, error) {
	switch models.Filter(strings.ToLower(s)) {
	case models.FilterAll, models.FilterActive, models.FilterCompleted, models.FilterHabits:
		return models.Filter(strings.ToLower(s)), nil
	default:
		return "", fmt.Errorf("invalid filter %q (all|active|completed|habits)", s)
	}
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// shortID trims a uuid for display; full ids still work everywhere an id is
// accepted.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveTaskID expands an id prefix (as printed by `list`) to the full task
// id. parentID narrows the search to one parent's children.
func resolveTaskID(sess *Session, prefix, parentID string) (string, error) {
	var matches []string
	for _, task := range sess.Tracker.Tasks() {
		if parentID == "" {
			if strings.HasPrefix(task.ID, prefix) {
				matches = append(matches, task.ID)
			}
			continue
		}
		if task.ID != parentID && !strings.HasPrefix(task.ID, parentID) {
			continue
		}
		for _, child := range task.Children {
			if strings.HasPrefix(child.ID, prefix) {
				matches = append(matches, child.ID)
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no task matches id %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

// resolveParentID expands a parent id prefix to a full root-task id.
func resolveParentID(sess *Session, prefix string) (string, error) {
	if prefix == "" {
		return "", nil
	}
	var matches []string
	for _, task := range sess.Tracker.Tasks() {
		if strings.HasPrefix(task.ID, prefix) {
			matches = append(matches, task.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no task matches parent id %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("parent id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

// resolveHabitID expands a habit id prefix to the full id.
func resolveHabitID(sess *Session, prefix string) (string, error) {
	var matches []string
	for _, h := range sess.Habits.Habits() {
		if strings.HasPrefix(h.ID, prefix) {
			matches = append(matches, h.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no habit matches id %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

func formatStreak(h models.Habit) string {
	if h.Streak == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", h.Streak)
}
