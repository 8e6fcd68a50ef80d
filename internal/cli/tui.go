package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/secondwind/internal/backup"
	"github.com/julianstephens/secondwind/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	sess, err := ctx.Open()
	if err != nil {
		return err
	}

	// Automatic snapshot on TUI startup, after a successful load
	mgr := backup.NewManager(ctx.Store.Path())
	if _, err := mgr.Create(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: automatic backup failed: %v\n", err)
	}

	p := tea.NewProgram(tui.NewModel(sess.Tracker, sess.Habits), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
