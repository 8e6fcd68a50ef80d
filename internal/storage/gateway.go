package storage

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/secondwind/internal/clock"
	"github.com/julianstephens/secondwind/internal/constants"
	"github.com/julianstephens/secondwind/internal/models"
)

// Gateway mediates between the in-memory task/habit state and the schema-less
// KeyValue medium underneath. Its contract is deliberately asymmetric:
//
//   - Loads never fail. Malformed, missing, or partial data degrades
//     field-by-field to safe defaults, and an unusable primary tasks record
//     falls back to the backup copy before defaulting to empty. The store can
//     be edited or corrupted out of band, so every field is treated as hostile.
//   - Saves never fail either, from the caller's point of view. Write errors
//     are swallowed; the in-memory state stays the source of truth for the
//     session.
//   - SaveTasks refuses to persist an empty list. A transient empty in-memory
//     state at startup must never clobber real data.
type Gateway struct {
	kv  KeyValue
	clk clock.Clock
}

func NewGateway(kv KeyValue, clk clock.Clock) *Gateway {
	return &Gateway{kv: kv, clk: clk}
}

// LoadTasks reads the persisted task list, falling back to the backup key when
// the primary record is missing, malformed, or empty.
func (g *Gateway) LoadTasks() []models.Task {
	if tasks, ok := g.readTaskKey(constants.KeyTasks); ok {
		return tasks
	}
	if tasks, ok := g.readTaskKey(constants.KeyTasksBackup); ok {
		return tasks
	}
	return []models.Task{}
}

func (g *Gateway) readTaskKey(key string) ([]models.Task, bool) {
	raw, found, err := g.kv.Get(key)
	if err != nil || !found {
		return nil, false
	}
	if !usableJSON(raw) {
		return nil, false
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}

	tasks := make([]models.Task, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		tasks = append(tasks, g.reviveTask(item))
	}
	if len(tasks) == 0 {
		return nil, false
	}

	return tasks, true
}

// reviveTask coerces a raw record to a Task, substituting defaults for any
// field that is missing or the wrong type.
func (g *Gateway) reviveTask(item map[string]any) models.Task {
	task := models.Task{
		ID:            g.reviveID(item["id"]),
		Title:         reviveTitle(item["title"]),
		Completed:     asBool(item["completed"]),
		IsHabit:       asBool(item["isHabit"]),
		SourceHabitID: asString(item["sourceHabitId"]),
		CreatedAt:     g.reviveTime(item["createdAt"]),
		CompletedAt:   parseOptionalTime(item["completedAt"]),
		Children:      []models.Task{},
	}

	// Recover the source habit from the legacy composite id when the explicit
	// field is absent in old data.
	if task.IsHabit && task.SourceHabitID == "" {
		if habitID, ok := models.ParseHabitTaskID(task.ID); ok {
			task.SourceHabitID = habitID
		}
	}

	if rawChildren, ok := item["children"].([]any); ok {
		for _, rawChild := range rawChildren {
			child, ok := rawChild.(map[string]any)
			if !ok {
				continue
			}
			// Children are one level deep: no habit flag, no grandchildren.
			task.Children = append(task.Children, models.Task{
				ID:          g.reviveID(child["id"]),
				Title:       reviveTitle(child["title"]),
				Completed:   asBool(child["completed"]),
				CreatedAt:   g.reviveTime(child["createdAt"]),
				CompletedAt: parseOptionalTime(child["completedAt"]),
				Children:    []models.Task{},
			})
		}
	}

	return task
}

// SaveTasks persists the non-habit subset of the given list, mirroring it to
// the backup key. An empty subset is a no-op: existing persisted tasks are
// never overwritten with nothing. Write errors are swallowed.
func (g *Gateway) SaveTasks(tasks []models.Task) {
	persistable := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsHabit {
			persistable = append(persistable, t)
		}
	}
	if len(persistable) == 0 {
		return
	}

	data, err := json.Marshal(persistable)
	if err != nil {
		return
	}

	if err := g.kv.Set(constants.KeyTasks, string(data)); err != nil {
		return
	}
	_ = g.kv.Set(constants.KeyTasksBackup, string(data))
}

// RefreshBackup rewrites the backup key from a freshly loaded list without
// touching the primary record. Called once per load cycle so the backup tracks
// the last known-good data.
func (g *Gateway) RefreshBackup(tasks []models.Task) {
	persistable := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsHabit {
			persistable = append(persistable, t)
		}
	}
	if len(persistable) == 0 {
		return
	}
	data, err := json.Marshal(persistable)
	if err != nil {
		return
	}
	_ = g.kv.Set(constants.KeyTasksBackup, string(data))
}

// LoadHabits reads the persisted habit definitions, coercing each field to a
// safe default. Unusable data degrades to an empty collection.
func (g *Gateway) LoadHabits() []models.Habit {
	raw, found, err := g.kv.Get(constants.KeyHabits)
	if err != nil || !found {
		return []models.Habit{}
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []models.Habit{}
	}

	habits := make([]models.Habit, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		habit := models.Habit{
			ID:        asString(item["id"]),
			Title:     asString(item["title"]),
			IsActive:  item["isActive"] != false,
			Streak:    asStreak(item["streak"]),
			CreatedAt: g.reviveTime(item["createdAt"]),
		}
		if day, ok := item["lastCompletedDate"].(string); ok {
			habit.LastCompletedDate = day
		}
		habits = append(habits, habit)
	}

	return habits
}

// SaveHabits persists the habit definitions. Write errors are swallowed.
func (g *Gateway) SaveHabits(habits []models.Habit) {
	data, err := json.Marshal(habits)
	if err != nil {
		return
	}
	_ = g.kv.Set(constants.KeyHabits, string(data))
}

// LastGenerationDate returns the day the daily regeneration last ran, if any.
func (g *Gateway) LastGenerationDate() (string, bool) {
	raw, found, err := g.kv.Get(constants.KeyLastGenerationDate)
	if err != nil || !found || raw == "" {
		return "", false
	}
	return raw, true
}

// SetLastGenerationDate advances the regeneration marker. Errors are swallowed.
func (g *Gateway) SetLastGenerationDate(day string) {
	_ = g.kv.Set(constants.KeyLastGenerationDate, day)
}

func (g *Gateway) reviveID(v any) string {
	if s := asString(v); s != "" {
		return s
	}
	return uuid.NewString()
}

func (g *Gateway) reviveTime(v any) time.Time {
	if t := parseOptionalTime(v); t != nil {
		return *t
	}
	return g.clk.Now()
}

func usableJSON(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed != "" && trimmed != "[]" && trimmed != "null"
}

func reviveTitle(v any) string {
	if s := asString(v); s != "" {
		return s
	}
	return constants.UntitledTask
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asStreak(v any) int {
	// JSON numbers decode as float64.
	n, ok := v.(float64)
	if !ok || n < 0 {
		return 0
	}
	return int(n)
}

func parseOptionalTime(v any) *time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
