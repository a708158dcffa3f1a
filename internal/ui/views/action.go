package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kgrigsby/taskden/internal/auth"
	"github.com/kgrigsby/taskden/internal/store"
	"github.com/kgrigsby/taskden/internal/ui/keys"
	"github.com/kgrigsby/taskden/internal/ui/styles"
)

// TaskAction selects which index-addressed store operation a
// TaskActionView drives.
type TaskAction int

const (
	TaskActionDelete TaskAction = iota
	TaskActionMarkStatus
	TaskActionDueDate
)

// TaskActionView shows the numbered task list and collects the 1-based
// task number, then (for status and due-date changes) a second input. The
// store enforces authorization; any rejection is reported on the menu
// status line and leaves the store unchanged.
type TaskActionView struct {
	action   TaskAction
	tasks    *store.TaskStore
	identity *auth.Identity
	styles   *styles.Styles
	keys     keys.KeyMap

	step        int // 0 = pick task, 1 = second input
	pickedIndex int
	indexInput  textinput.Model
	argInput    textinput.Model

	width  int
	height int
}

// NewTaskActionView creates the picker for one action.
func NewTaskActionView(action TaskAction, tasks *store.TaskStore, identity *auth.Identity) *TaskActionView {
	indexInput := textinput.New()
	indexInput.Placeholder = "Task number"
	indexInput.CharLimit = 6
	indexInput.Focus()

	argInput := textinput.New()
	switch action {
	case TaskActionMarkStatus:
		argInput.Placeholder = "1-4"
		argInput.CharLimit = 1
	case TaskActionDueDate:
		argInput.Placeholder = "YYYY-MM-DD"
		argInput.CharLimit = 10
	}

	return &TaskActionView{
		action:     action,
		tasks:      tasks,
		identity:   identity,
		styles:     styles.NewStyles(),
		keys:       keys.DefaultKeyMap(),
		indexInput: indexInput,
		argInput:   argInput,
	}
}

func (v *TaskActionView) title() string {
	switch v.action {
	case TaskActionDelete:
		return "Delete Task"
	case TaskActionMarkStatus:
		return "Manage Task Status"
	case TaskActionDueDate:
		return "Set Task Due Date"
	}
	return ""
}

// Init initializes the view
func (v *TaskActionView) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (v *TaskActionView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackToMenu{} }

		case key.Matches(msg, v.keys.Enter):
			if v.step == 0 {
				return v.pickTask()
			}
			return v, v.perform()
		}
	}

	var cmd tea.Cmd
	if v.step == 0 {
		v.indexInput, cmd = v.indexInput.Update(msg)
	} else {
		v.argInput, cmd = v.argInput.Update(msg)
	}
	return v, cmd
}

func (v *TaskActionView) pickTask() (tea.Model, tea.Cmd) {
	index, err := strconv.Atoi(strings.TrimSpace(v.indexInput.Value()))
	if err != nil {
		return v, backWithError("Invalid input. Please enter a valid task number.")
	}
	if _, err := v.tasks.Get(index); err != nil {
		return v, backWithError("Invalid task number.")
	}
	v.pickedIndex = index

	if v.action == TaskActionDelete {
		return v, v.perform()
	}
	v.step = 1
	v.indexInput.Blur()
	v.argInput.Focus()
	return v, textinput.Blink
}

func (v *TaskActionView) perform() tea.Cmd {
	switch v.action {
	case TaskActionDelete:
		if err := v.tasks.Delete(v.identity, v.pickedIndex); err != nil {
			return backWithError(err.Error())
		}
		return backWithStatus("Task deleted successfully!")

	case TaskActionMarkStatus:
		choice, err := strconv.Atoi(strings.TrimSpace(v.argInput.Value()))
		if err != nil {
			return backWithError("Invalid status choice.")
		}
		if err := v.tasks.MarkStatus(v.identity, v.pickedIndex, store.StatusChoice(choice)); err != nil {
			return backWithError(err.Error())
		}
		return backWithStatus("Task status updated.")

	case TaskActionDueDate:
		if err := v.tasks.SetDueDate(v.identity, v.pickedIndex, strings.TrimSpace(v.argInput.Value())); err != nil {
			return backWithError(err.Error())
		}
		return backWithStatus("Due date set.")
	}
	return nil
}

func backWithStatus(status string) tea.Cmd {
	return func() tea.Msg { return BackToMenu{Status: status} }
}

func backWithError(status string) tea.Cmd {
	return func() tea.Msg { return BackToMenu{Status: status, IsError: true} }
}

// View renders the picker
func (v *TaskActionView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.title()))
	b.WriteString("\n\n")

	if v.step == 0 {
		if v.tasks.Len() == 0 {
			b.WriteString(v.styles.TitleMuted.Render("No tasks found."))
			b.WriteString("\n\n")
			b.WriteString(v.styles.Help.Render("esc back"))
			return b.String()
		}
		for _, tv := range v.tasks.List(v.identity) {
			b.WriteString(v.styles.ListItem.Render(
				fmt.Sprintf("%2d. %s (Created by: %s)", tv.Index, tv.Task.Title, tv.Task.Creator)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.styles.TitleMuted.Render("Enter the task number:"))
		b.WriteString("\n")
		b.WriteString(v.styles.InputFocused.Render(v.indexInput.View()))
	} else {
		switch v.action {
		case TaskActionMarkStatus:
			b.WriteString(v.styles.TitleMuted.Render("Enter the status (1. In Progress, 2. Idle, 3. Completed, 4. Dropped):"))
		case TaskActionDueDate:
			b.WriteString(v.styles.TitleMuted.Render("Enter the due date (YYYY-MM-DD):"))
		}
		b.WriteString("\n")
		b.WriteString(v.styles.InputFocused.Render(v.argInput.View()))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("enter confirm · esc cancel"))
	return b.String()
}
