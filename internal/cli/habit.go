package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/secondwind/internal/validation"
)

type HabitAddCmd struct {
	Title string `arg:"" help:"Habit title."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	title, err := validation.Title(c.Title)
	if err != nil {
		return err
	}

	sess, err := ctx.Open()
	if err != nil {
		return err
	}

	h, task := sess.Habits.Add(title)
	fmt.Printf("Added habit: %s (ID: %s)\n", h.Title, h.ID)
	fmt.Printf("Today's instance is on your list: %s\n", task.ID)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	sess, err := ctx.Open()
	if err != nil {
		return err
	}

	habits := sess.Habits.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits found")
		return nil
	}

	fmt.Println("Habits:")
	for _, h := range habits {
		status := "active"
		if !h.IsActive {
			status = "inactive"
		}
		line := fmt.Sprintf("  [%s] %s  %s - streak %s", status, h.ID, h.Title, formatStreak(h))
		if h.LastCompletedDate != "" {
			line += fmt.Sprintf(" (last done %s)", h.LastCompletedDate)
		}
		fmt.Println(line)
	}

	return nil
}

type HabitDoneCmd struct {
	ID string `arg:"" help:"Habit id (prefix accepted)."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	sess, err := ctx.Open()
	if err != nil {
		return err
	}

	habitID, err := resolveHabitID(sess, c.ID)
	if err != nil {
		return err
	}

	h, ok := sess.Habits.Toggle(habitID)
	if !ok {
		return fmt.Errorf("habit not found: %s", c.ID)
	}

	if h.LastCompletedDate == "" {
		fmt.Printf("Undid today's completion of %s (streak %s)\n", h.Title, formatStreak(h))
	} else {
		fmt.Printf("Completed %s (streak %s)\n", h.Title, formatStreak(h))
	}
	return nil
}

type HabitEditCmd struct {
	ID    string `arg:"" help:"Habit id (prefix accepted)."`
	Title string `arg:"" help:"New title."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	title, err := validation.Title(c.Title)
	if err != nil {
		return err
	}

	sess, err := ctx.Open()
	if err != nil {
		return err
	}

	habitID, err := resolveHabitID(sess, c.ID)
	if err != nil {
		return err
	}

	if !sess.Habits.Edit(habitID, title) {
		return fmt.Errorf("habit not found: %s", c.ID)
	}

	fmt.Printf("Renamed habit to: %s\n", title)
	return nil
}

type HabitDeleteCmd struct {
	ID    string `arg:"" help:"Habit id (prefix accepted)."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	sess, err := ctx.Open()
	if err != nil {
		return err
	}

	habitID, err := resolveHabitID(sess, c.ID)
	if err != nil {
		return err
	}

	h, ok := sess.Habits.Get(habitID)
	if !ok {
		return fmt.Errorf("habit not found: %s", c.ID)
	}

	if !c.Force {
		confirmed := false
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Delete habit %q?", h.Title)).
			Description(fmt.Sprintf("Its %s streak will be lost. Past days stay as they are.", formatStreak(h))).
			Affirmative("Delete").
			Negative("Keep").
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	sess.Habits.Delete(habitID)
	fmt.Printf("Deleted habit: %s\n", h.Title)
	return nil
}
