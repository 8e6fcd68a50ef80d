package cli

import (
	"fmt"
)

type TaskDoneCmd struct {
	ID     string `arg:"" help:"Task id (prefix accepted)."`
	Parent string `short:"p" help:"Parent task id when toggling a subtask."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	sess, err := ctx.Open()
	if err != nil {
		return err
	}

	parentID, err := resolveParentID(sess, c.Parent)
	if err != nil {
		return err
	}
	taskID, err := resolveTaskID(sess, c.ID, parentID)
	if err != nil {
		return err
	}

	celebrated := false
	sess.Tracker.OnTaskCompleted(func() {
		celebrated = true
	})

	if !sess.Tracker.Toggle(taskID, parentID) {
		return fmt.Errorf("task not found: %s", c.ID)
	}

	task, ok := sess.Tracker.Get(taskID, parentID)
	if !ok {
		// Habit refresh can replace the instance; report the toggle anyway.
		fmt.Println("Toggled task")
		return nil
	}

	if task.Completed {
		fmt.Printf("Completed: %s\n", task.Title)
		if celebrated {
			fmt.Println("🎉 Nice work!")
		}
		if task.IsHabit {
			if h, found := sess.Habits.Get(task.SourceHabitID); found {
				fmt.Printf("Habit streak: %s\n", formatStreak(h))
			}
		}
	} else {
		fmt.Printf("Reopened: %s\n", task.Title)
	}

	return nil
}
