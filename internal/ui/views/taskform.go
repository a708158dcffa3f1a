package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kgrigsby/taskden/internal/auth"
	"github.com/kgrigsby/taskden/internal/store"
	"github.com/kgrigsby/taskden/internal/ui/keys"
	"github.com/kgrigsby/taskden/internal/ui/styles"
)

// TaskFormView is the create-task form. Besides the title every field is
// optional: a blank or unparsable deadline leaves the task without one, an
// unrecognized priority token falls back to MEDIUM, and collaborators are
// entered comma-separated.
type TaskFormView struct {
	tasks    *store.TaskStore
	identity *auth.Identity
	styles   *styles.Styles
	keys     keys.KeyMap

	inputs   []textinput.Model
	labels   []string
	focusIdx int // len(inputs) == save button
	errMsg   string

	width  int
	height int
}

// NewTaskFormView creates the form for the given creator.
func NewTaskFormView(tasks *store.TaskStore, identity *auth.Identity) *TaskFormView {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 1000

	deadline := textinput.New()
	deadline.Placeholder = "YYYY-MM-DD (optional)"
	deadline.CharLimit = 10

	priority := textinput.New()
	priority.Placeholder = "LOW, MEDIUM, HIGH (optional)"
	priority.CharLimit = 10

	collaborators := textinput.New()
	collaborators.Placeholder = "Comma-separated usernames (optional)"
	collaborators.CharLimit = 500

	return &TaskFormView{
		tasks:    tasks,
		identity: identity,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		inputs:   []textinput.Model{title, desc, deadline, priority, collaborators},
		labels:   []string{"Title", "Description", "Deadline", "Priority", "Collaborators"},
	}
}

// Init initializes the view
func (v *TaskFormView) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (v *TaskFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackToMenu{} }

		case key.Matches(msg, v.keys.Tab), key.Matches(msg, v.keys.Down):
			v.setFocus(v.focusIdx + 1)
			return v, textinput.Blink

		case msg.String() == "shift+tab", key.Matches(msg, v.keys.Up):
			v.setFocus(v.focusIdx - 1)
			return v, textinput.Blink

		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx < len(v.inputs) {
				v.setFocus(v.focusIdx + 1)
				return v, textinput.Blink
			}
			return v, v.submit()
		}
	}

	if v.focusIdx < len(v.inputs) {
		var cmd tea.Cmd
		v.inputs[v.focusIdx], cmd = v.inputs[v.focusIdx].Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *TaskFormView) setFocus(idx int) {
	if idx < 0 {
		idx = len(v.inputs)
	}
	if idx > len(v.inputs) {
		idx = 0
	}
	v.focusIdx = idx
	for i := range v.inputs {
		if i == idx {
			v.inputs[i].Focus()
		} else {
			v.inputs[i].Blur()
		}
	}
}

func (v *TaskFormView) submit() tea.Cmd {
	_, err := v.tasks.Create(
		v.identity,
		strings.TrimSpace(v.inputs[0].Value()),
		strings.TrimSpace(v.inputs[1].Value()),
		strings.TrimSpace(v.inputs[2].Value()),
		strings.TrimSpace(v.inputs[3].Value()),
		v.inputs[4].Value(),
	)
	if err != nil {
		v.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg { return BackToMenu{Status: "Task created successfully!"} }
}

// View renders the form
func (v *TaskFormView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Create Task"))
	b.WriteString("\n\n")

	for i, in := range v.inputs {
		b.WriteString(v.styles.TitleMuted.Render(v.labels[i]))
		b.WriteString("\n")
		if i == v.focusIdx {
			b.WriteString(v.styles.InputFocused.Render(in.View()))
		} else {
			b.WriteString(v.styles.Input.Render(in.View()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	save := "[ Save ]"
	if v.focusIdx == len(v.inputs) {
		b.WriteString(v.styles.ListSelected.Render(save))
	} else {
		b.WriteString(v.styles.ListItem.Render(save))
	}

	if v.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(v.styles.StatusError.Render(v.errMsg))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("tab next field · enter save · esc cancel"))
	return b.String()
}
