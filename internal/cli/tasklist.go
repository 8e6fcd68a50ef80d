package cli

import (
	"fmt"
)

type TaskListCmd struct {
	Filter string `short:"f" help:"Filter view (all|active|completed|habits)." default:"all"`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	filter, err := parseFilter(c.Filter)
	if err != nil {
		return err
	}

	sess, err := ctx.Open()
	if err != nil {
		return err
	}

	tasks := sess.Tracker.Filtered(filter)
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Println("Tasks:")
	for _, task := range tasks {
		suffix := ""
		if task.IsHabit {
			if h, ok := sess.Habits.Get(task.SourceHabitID); ok {
				suffix = fmt.Sprintf("  (habit, streak %s)", formatStreak(h))
			} else {
				suffix = "  (habit)"
			}
		}
		fmt.Printf("  %s %s  %s%s\n", checkbox(task.Completed), shortID(task.ID), task.Title, suffix)

		for _, child := range task.Children {
			fmt.Printf("      %s %s  %s\n", checkbox(child.Completed), shortID(child.ID), child.Title)
		}
	}

	return nil
}
