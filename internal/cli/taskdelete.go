package cli

import (
	"fmt"
)

type TaskDeleteCmd struct {
	ID     string `arg:"" help:"Task id (prefix accepted)."`
	Parent string `short:"p" help:"Parent task id when deleting a subtask."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
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

	removed, ok := sess.Tracker.Delete(taskID, parentID)
	if !ok {
		return fmt.Errorf("task not found: %s", c.ID)
	}

	fmt.Printf("Deleted: %s\n", removed.Title)
	if len(removed.Children) > 0 {
		fmt.Printf("(%d subtasks were deleted with it)\n", len(removed.Children))
	}
	fmt.Printf("Tip: re-add with 'secondwind add %q', or press u in the TUI to undo there.\n", removed.Title)
	return nil
}
