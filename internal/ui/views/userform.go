package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kgrigsby/taskden/internal/models"
	"github.com/kgrigsby/taskden/internal/store"
	"github.com/kgrigsby/taskden/internal/ui/keys"
	"github.com/kgrigsby/taskden/internal/ui/styles"
)

// UserFormView is the admin-only create-user form. An unrecognized role
// token falls back to USER with a notice, matching how unparsable optional
// inputs behave elsewhere.
type UserFormView struct {
	registry *store.UserRegistry
	styles   *styles.Styles
	keys     keys.KeyMap

	username textinput.Model
	password textinput.Model
	role     textinput.Model
	focusIdx int
	errMsg   string

	width  int
	height int
}

// NewUserFormView creates the form.
func NewUserFormView(registry *store.UserRegistry) *UserFormView {
	username := textinput.New()
	username.Placeholder = "New username"
	username.CharLimit = 100
	username.Focus()

	password := textinput.New()
	password.Placeholder = "New password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	role := textinput.New()
	role.Placeholder = "1. ADMIN, 2. USER"
	role.CharLimit = 6

	return &UserFormView{
		registry: registry,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		username: username,
		password: password,
		role:     role,
	}
}

// Init initializes the view
func (v *UserFormView) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (v *UserFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if v.focusIdx < 2 {
				v.setFocus(v.focusIdx + 1)
				return v, textinput.Blink
			}
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.username, cmd = v.username.Update(msg)
	case 1:
		v.password, cmd = v.password.Update(msg)
	case 2:
		v.role, cmd = v.role.Update(msg)
	}
	return v, cmd
}

func (v *UserFormView) setFocus(idx int) {
	if idx < 0 {
		idx = 2
	}
	if idx > 2 {
		idx = 0
	}
	v.focusIdx = idx
	inputs := []*textinput.Model{&v.username, &v.password, &v.role}
	for i, in := range inputs {
		if i == idx {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (v *UserFormView) submit() tea.Cmd {
	// Accept the numbered tokens the prompt shows as well as the role
	// names themselves; anything else falls back to USER.
	role := models.RoleUser
	notice := ""
	switch token := strings.TrimSpace(v.role.Value()); token {
	case "1":
		role = models.RoleAdmin
	case "2", "":
		role = models.RoleUser
	default:
		var ok bool
		if role, ok = models.ParseRole(token); !ok {
			notice = " (invalid role input, used default role USER)"
		}
	}

	username := strings.TrimSpace(v.username.Value())
	u, err := v.registry.Add(username, v.password.Value(), role)
	if err != nil {
		v.errMsg = err.Error()
		return nil
	}
	status := fmt.Sprintf("User %q created successfully with role %s.%s", u.Username, u.Role, notice)
	return func() tea.Msg { return BackToMenu{Status: status} }
}

// View renders the form
func (v *UserFormView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Create User"))
	b.WriteString("\n\n")

	inputs := []struct {
		label string
		view  string
	}{
		{"Username", v.username.View()},
		{"Password", v.password.View()},
		{"Role", v.role.View()},
	}
	for i, in := range inputs {
		b.WriteString(v.styles.TitleMuted.Render(in.label))
		b.WriteString("\n")
		if i == v.focusIdx {
			b.WriteString(v.styles.InputFocused.Render(in.view))
		} else {
			b.WriteString(v.styles.Input.Render(in.view))
		}
		b.WriteString("\n")
	}

	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.StatusError.Render(v.errMsg))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("enter create · tab next field · esc cancel"))
	return b.String()
}
