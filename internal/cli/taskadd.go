package cli

import (
	"fmt"

	"github.com/julianstephens/secondwind/internal/validation"
)

type TaskAddCmd struct {
	Title  string `arg:"" help:"Task title."`
	Parent string `short:"p" help:"Parent task id to add under (makes a subtask)."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
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

	task := sess.Tracker.Add(title, parentID)
	if parentID == "" {
		fmt.Printf("Added task: %s (ID: %s)\n", task.Title, shortID(task.ID))
	} else {
		fmt.Printf("Added subtask: %s (ID: %s, parent: %s)\n", task.Title, shortID(task.ID), shortID(parentID))
	}
	return nil
}
