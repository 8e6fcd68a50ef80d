package cli

import (
	"fmt"

	"github.com/julianstephens/secondwind/internal/validation"
)

type TaskEditCmd struct {
	ID     string `arg:"" help:"Task id (prefix accepted)."`
	Title  string `arg:"" help:"New title."`
	Parent string `short:"p" help:"Parent task id when editing a subtask."`
}

func (c *TaskEditCmd) Run(ctx *Context) error {
	title, err := validation.Title(c.Title)
	if err != nil {
		return err
	}

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

	if !sess.Tracker.Edit(taskID, title, parentID) {
		return fmt.Errorf("task not found: %s", c.ID)
	}

	fmt.Printf("Renamed task to: %s\n", title)
	return nil
}
