package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kgrigsby/taskden/internal/auth"
	"github.com/kgrigsby/taskden/internal/models"
	"github.com/kgrigsby/taskden/internal/store"
	"github.com/kgrigsby/taskden/internal/ui/keys"
	"github.com/kgrigsby/taskden/internal/ui/styles"
)

// TaskListView lists every task with the detail level the caller is
// entitled to: the full record for the creator or anyone holding
// task-creation rights, title and creator only for everyone else. A task
// can be opened to a detail page where checklist items, notes, and
// attachments can be appended (appends are unrestricted by design).
type TaskListView struct {
	tasks    *store.TaskStore
	identity *auth.Identity
	styles   *styles.Styles
	keys     keys.KeyMap

	views  []store.TaskView
	cursor int

	viewing     bool   // detail page open
	appending   string // "", "checklist", "note", "attachment"
	appendInput textinput.Model

	width  int
	height int
}

// NewTaskListView creates the listing for the given caller.
func NewTaskListView(tasks *store.TaskStore, identity *auth.Identity) *TaskListView {
	input := textinput.New()
	input.CharLimit = 500

	return &TaskListView{
		tasks:       tasks,
		identity:    identity,
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		views:       tasks.List(identity),
		appendInput: input,
	}
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.appending != "" {
			return v.updateAppending(msg)
		}
		if v.viewing {
			return v.updateViewing(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToMenu{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.views)-1 {
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if len(v.views) > 0 {
			v.viewing = true
		}
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateViewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.viewing = false
		return v, nil

	case msg.String() == "c":
		return v.startAppend("checklist", "Checklist item")
	case msg.String() == "n":
		return v.startAppend("note", "Note")
	case msg.String() == "a":
		return v.startAppend("attachment", "Attachment path")
	}
	return v, nil
}

func (v *TaskListView) startAppend(kind, placeholder string) (tea.Model, tea.Cmd) {
	v.appending = kind
	v.appendInput.Placeholder = placeholder
	v.appendInput.SetValue("")
	v.appendInput.Focus()
	return v, textinput.Blink
}

func (v *TaskListView) updateAppending(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.appending = ""
		v.appendInput.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		text := strings.TrimSpace(v.appendInput.Value())
		if text != "" {
			task := v.views[v.cursor].Task
			switch v.appending {
			case "checklist":
				task.AddChecklistItem(text)
			case "note":
				task.AddNote(text)
			case "attachment":
				task.AddAttachment(text)
			}
		}
		v.appending = ""
		v.appendInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.appendInput, cmd = v.appendInput.Update(msg)
	return v, cmd
}

// View renders the task list or the opened detail page
func (v *TaskListView) View() string {
	if v.viewing && v.cursor < len(v.views) {
		return v.viewDetail(v.views[v.cursor])
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Tasks"))
	b.WriteString("\n\n")

	if len(v.views) == 0 {
		b.WriteString(v.styles.TitleMuted.Render("No tasks found."))
	}

	for i, tv := range v.views {
		line := v.listLine(tv)
		if i == v.cursor {
			b.WriteString(v.styles.ListSelected.Render(line))
		} else if tv.Full {
			b.WriteString(v.styles.ListItem.Render(line))
		} else {
			b.WriteString(v.styles.ListDim.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("↑/↓ move · enter detail · esc back"))
	return b.String()
}

func (v *TaskListView) listLine(tv store.TaskView) string {
	t := tv.Task
	if !tv.Full {
		return fmt.Sprintf("%2d. %s (Created by: %s)", tv.Index, t.Title, t.Creator)
	}
	line := fmt.Sprintf("%2d. %s [%s] %s", tv.Index, t.Title, t.Priority, t.Status)
	if t.Deadline != nil {
		line += " · due " + t.Deadline.Format(store.DateLayout)
	}
	return line
}

func (v *TaskListView) viewDetail(tv store.TaskView) string {
	t := tv.Task

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(t.Title))
	b.WriteString("\n\n")

	if !tv.Full {
		b.WriteString(v.styles.TaskField.Render("Created by: " + t.Creator))
		b.WriteString("\n")
	} else {
		b.WriteString(renderFullRecord(v.styles, t))
	}

	if v.appending != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.InputFocused.Render(v.appendInput.View()))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("enter add · esc cancel"))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("c add checklist item · n add note · a add attachment · esc back"))
	return b.String()
}

// renderFullRecord renders every field of a task, mirroring the shape the
// operator sees when listing with full visibility.
func renderFullRecord(s *styles.Styles, t *models.Task) string {
	deadline := "none"
	if t.Deadline != nil {
		deadline = t.Deadline.Format(store.DateLayout)
	}

	var b strings.Builder
	fields := []struct {
		name  string
		value string
	}{
		{"Description", t.Description},
		{"Deadline", deadline},
		{"Priority", t.Priority.String()},
		{"Collaborators", strings.Join(t.Collaborators, ", ")},
		{"Created by", t.Creator},
		{"Status", string(t.Status)},
		{"Completed", fmt.Sprintf("%t", t.Completed)},
		{"Checklist", strings.Join(t.Checklist, ", ")},
		{"Notes", strings.Join(t.Notes, ", ")},
		{"Attachments", strings.Join(t.Attachments, ", ")},
	}
	for _, f := range fields {
		b.WriteString(s.TitleMuted.Render(f.name + ": "))
		b.WriteString(s.TaskField.Render(f.value))
		b.WriteString("\n")
	}
	return b.String()
}
