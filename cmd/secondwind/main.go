package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/secondwind/internal/cli"
	"github.com/julianstephens/secondwind/internal/clock"
	"github.com/julianstephens/secondwind/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/secondwind/secondwind.db"`

	Init cli.InitCmd     `cmd:"" help:"Initialize secondwind storage."`
	Tui  cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	List cli.TaskListCmd `cmd:"" help:"Show the unified task list."`
	Add  cli.TaskAddCmd  `cmd:"" help:"Add a task (or subtask with --parent)."`
	Done cli.TaskDoneCmd `cmd:"" help:"Toggle a task's completion."`
	Task struct {
		Add    cli.TaskAddCmd    `cmd:"" help:"Add a new task."`
		Edit   cli.TaskEditCmd   `cmd:"" help:"Rename a task."`
		Delete cli.TaskDeleteCmd `cmd:"" help:"Delete a task."`
		List   cli.TaskListCmd   `cmd:"" help:"Show the unified task list."`
	} `cmd:"" help:"Manage tasks."`
	Habit struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a new habit."`
		List   cli.HabitListCmd   `cmd:"" help:"List habits with streaks."`
		Done   cli.HabitDoneCmd   `cmd:"" help:"Toggle today's completion of a habit."`
		Edit   cli.HabitEditCmd   `cmd:"" help:"Rename a habit."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	} `cmd:"" help:"Manage habits."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Snapshot the storage file."`
		List    cli.BackupListCmd    `cmd:"" help:"List storage snapshots."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a storage snapshot."`
	} `cmd:"" help:"Manage storage snapshots."`
	Doctor cli.DoctorCmd `cmd:"" help:"Check storage health."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("secondwind"),
		kong.Description("Local-first task list and daily habit tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Pick the storage backend by extension
	var store storage.KeyValue
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewFileStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store,
		Clock: clock.System{},
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
