package models

import "testing"

func TestParseHabitTaskID(t *testing.T) {
	tests := []struct {
		name    string
		taskID  string
		habitID string
		ok      bool
	}{
		{"millisecond id", "habit-1718000000000-2025-06-15", "1718000000000", true},
		{"id containing dashes", "habit-a-b-2025-06-15", "a-b", true},
		{"no prefix", "1718000000000-2025-06-15", "", false},
		{"prefix only", "habit-", "", false},
		{"missing day suffix", "habit-1718000000000", "", false},
		{"plain uuid", "7b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			habitID, ok := ParseHabitTaskID(tt.taskID)
			if ok != tt.ok || habitID != tt.habitID {
				t.Errorf("ParseHabitTaskID(%q) = (%q, %v), want (%q, %v)",
					tt.taskID, habitID, ok, tt.habitID, tt.ok)
			}
		})
	}
}

func TestHabitTaskIDRoundTrip(t *testing.T) {
	id := HabitTaskID("1718000000000", "2025-06-15")
	if id != "habit-1718000000000-2025-06-15" {
		t.Fatalf("unexpected composite id: %q", id)
	}
	habitID, ok := ParseHabitTaskID(id)
	if !ok || habitID != "1718000000000" {
		t.Errorf("round trip failed: got (%q, %v)", habitID, ok)
	}
}

func TestAllChildrenCompleted(t *testing.T) {
	if (Task{}).AllChildrenCompleted() {
		t.Errorf("a childless task must not count as all-children-completed")
	}

	task := Task{Children: []Task{{Completed: true}, {Completed: false}}}
	if task.AllChildrenCompleted() {
		t.Errorf("expected false with an open child")
	}

	task.Children[1].Completed = true
	if !task.AllChildrenCompleted() {
		t.Errorf("expected true once every child is completed")
	}
}

func TestMatches(t *testing.T) {
	open := Task{Title: "open"}
	done := Task{Title: "done", Completed: true}
	habitTask := Task{Title: "habit", IsHabit: true}

	if !open.Matches(FilterAll) || !done.Matches(FilterAll) || !habitTask.Matches(FilterAll) {
		t.Errorf("FilterAll should match everything")
	}
	if !open.Matches(FilterActive) || done.Matches(FilterActive) {
		t.Errorf("FilterActive should match only incomplete tasks")
	}
	if open.Matches(FilterCompleted) || !done.Matches(FilterCompleted) {
		t.Errorf("FilterCompleted should match only completed tasks")
	}
	if open.Matches(FilterHabits) || !habitTask.Matches(FilterHabits) {
		t.Errorf("FilterHabits should match only habit tasks")
	}
}
