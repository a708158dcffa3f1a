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

// LoginView collects a username and password and authenticates against the
// registry. Failures show one generic message regardless of cause.
type LoginView struct {
	registry *store.UserRegistry
	styles   *styles.Styles
	keys     keys.KeyMap

	username textinput.Model
	password textinput.Model
	focusIdx int // 0=username, 1=password
	errMsg   string

	width  int
	height int
}

// NewLoginView creates the login form.
func NewLoginView(registry *store.UserRegistry) *LoginView {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 100
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &LoginView{
		registry: registry,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		username: username,
		password: password,
	}
}

// Init initializes the view
func (v *LoginView) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (v *LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			v.setFocus((v.focusIdx + 1) % 2)
			return v, textinput.Blink

		case msg.String() == "shift+tab", key.Matches(msg, v.keys.Up):
			v.setFocus((v.focusIdx + 1) % 2)
			return v, textinput.Blink

		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx == 0 {
				v.setFocus(1)
				return v, textinput.Blink
			}
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	if v.focusIdx == 0 {
		v.username, cmd = v.username.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

func (v *LoginView) setFocus(idx int) {
	v.focusIdx = idx
	if idx == 0 {
		v.username.Focus()
		v.password.Blur()
	} else {
		v.username.Blur()
		v.password.Focus()
	}
}

func (v *LoginView) submit() tea.Cmd {
	identity, err := auth.Authenticate(v.registry, v.username.Value(), v.password.Value())
	if err != nil {
		v.errMsg = "Invalid username or password."
		v.password.SetValue("")
		v.setFocus(0)
		return nil
	}
	return func() tea.Msg { return LoggedIn{Identity: identity} }
}

// View renders the login form
func (v *LoginView) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Login"))
	b.WriteString("\n\n")

	inputs := []struct {
		label string
		view  string
		focus bool
	}{
		{"Username", v.username.View(), v.focusIdx == 0},
		{"Password", v.password.View(), v.focusIdx == 1},
	}
	for _, in := range inputs {
		b.WriteString(v.styles.TitleMuted.Render(in.label))
		b.WriteString("\n")
		if in.focus {
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
	b.WriteString(v.styles.Help.Render("enter submit · tab next field · esc back"))
	return b.String()
}
