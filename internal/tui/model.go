package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/secondwind/internal/habit"
	"github.com/julianstephens/secondwind/internal/models"
	"github.com/julianstephens/secondwind/internal/tracker"
)

type SessionState int

const (
	StateTasks SessionState = iota
	StateHabits
	StateForm
	StateConfirmDeleteHabit
)

type formPurpose int

const (
	formAddTask formPurpose = iota
	formAddSubtask
	formAddHabit
	formEditTask
	formEditHabit
)

// celebration is shared with the tracker's completion callback so the flash
// survives the by-value Model copies bubbletea makes.
type celebration struct {
	fired bool
}

type Model struct {
	tracker *tracker.Tracker
	habits  *habit.Store

	state         SessionState
	previousState SessionState
	filter        models.Filter
	keys          KeyMap
	help          help.Model
	taskList      list.Model
	habitList     list.Model

	form         *huh.Form
	formValue    string
	formFor      formPurpose
	formTargetID string
	formParentID string

	habitToDeleteID string

	lastDeleted       *models.Task
	lastDeletedParent string

	celebrate *celebration
	status    string
	quitting  bool
	width     int
	height    int
}

func NewModel(tr *tracker.Tracker, habits *habit.Store) Model {
	celebrate := &celebration{}
	tr.OnTaskCompleted(func() {
		celebrate.fired = true
	})

	tl := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	tl.Title = "Tasks"
	tl.SetShowTitle(false)
	tl.SetShowHelp(false)

	hl := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	hl.Title = "Habits"
	hl.SetShowTitle(false)
	hl.SetShowHelp(false)

	m := Model{
		tracker:   tr,
		habits:    habits,
		state:     StateTasks,
		filter:    models.FilterAll,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		taskList:  tl,
		habitList: hl,
		celebrate: celebrate,
	}
	m.reloadLists()

	return m
}

// reloadLists rebuilds both bubbles lists from the core state.
func (m *Model) reloadLists() {
	m.taskList.SetItems(taskItems(m.tracker.Filtered(m.filter), m.habits))
	m.habitList.SetItems(habitItems(m.habits.Habits(), m.habits.Today()))
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateTasks:
		keys = append(keys, m.keys.Toggle, m.keys.Add, m.keys.Filter, m.keys.Undo)
	case StateHabits:
		keys = append(keys, m.keys.Toggle, m.keys.Add)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateTasks:
		actions = []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.AddSub, m.keys.Edit, m.keys.Delete, m.keys.Undo, m.keys.Filter}
	case StateHabits:
		actions = []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.Edit, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// openForm switches to form state with a single title input.
func (m *Model) openForm(purpose formPurpose, prompt, initial string) {
	m.formFor = purpose
	m.formValue = initial
	m.previousState = m.state
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(prompt).
				Value(&m.formValue),
		),
	)
	m.state = StateForm
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
}
