package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kgrigsby/taskden/internal/auth"
	"github.com/kgrigsby/taskden/internal/store"
	"github.com/kgrigsby/taskden/internal/ui/keys"
	"github.com/kgrigsby/taskden/internal/ui/styles"
)

// ConfirmWipeView runs the two-step confirmation for deleting every task:
// a yes/no answer followed by typing the exact confirmation phrase. Both
// answers are handed to the store, which performs the final check.
type ConfirmWipeView struct {
	tasks    *store.TaskStore
	identity *auth.Identity
	styles   *styles.Styles
	keys     keys.KeyMap

	step    int // 0 = yes/no, 1 = phrase
	confirm string
	input   textinput.Model

	width  int
	height int
}

// NewConfirmWipeView creates the confirmation flow.
func NewConfirmWipeView(tasks *store.TaskStore, identity *auth.Identity) *ConfirmWipeView {
	input := textinput.New()
	input.Placeholder = "yes/no"
	input.CharLimit = 20
	input.Focus()

	return &ConfirmWipeView{
		tasks:    tasks,
		identity: identity,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		input:    input,
	}
}

// Init initializes the view
func (v *ConfirmWipeView) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (v *ConfirmWipeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Back):
			return v, backWithStatus("Operation canceled.")

		case key.Matches(msg, v.keys.Enter):
			answer := strings.TrimSpace(v.input.Value())
			if v.step == 0 {
				if !strings.EqualFold(answer, "yes") {
					return v, backWithStatus("Operation canceled.")
				}
				v.confirm = answer
				v.step = 1
				v.input.SetValue("")
				v.input.Placeholder = store.DeleteAllPhrase
				return v, textinput.Blink
			}
			if err := v.tasks.DeleteAll(v.identity, v.confirm, answer); err != nil {
				if err == store.ErrNotConfirmed {
					return v, backWithStatus("Operation canceled.")
				}
				return v, backWithError(err.Error())
			}
			return v, backWithStatus("All tasks deleted successfully!")
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the confirmation prompt
func (v *ConfirmWipeView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Delete All Tasks"))
	b.WriteString("\n\n")

	if v.step == 0 {
		b.WriteString(v.styles.StatusError.Render(
			fmt.Sprintf("Are you sure you want to delete all %d tasks? (yes/no)", v.tasks.Len())))
	} else {
		b.WriteString(v.styles.StatusError.Render(
			fmt.Sprintf("This action is irreversible. Double-confirm by typing %q:", store.DeleteAllPhrase)))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.InputFocused.Render(v.input.View()))

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("enter confirm · esc cancel"))
	return b.String()
}
