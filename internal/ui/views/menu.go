package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kgrigsby/taskden/internal/auth"
	"github.com/kgrigsby/taskden/internal/ui/keys"
	"github.com/kgrigsby/taskden/internal/ui/styles"
)

// MenuAction identifies one menu entry.
type MenuAction int

const (
	ActionLogin MenuAction = iota
	ActionLogout
	ActionCreateTask
	ActionListTasks
	ActionMarkStatus
	ActionDeleteTask
	ActionSetDueDate
	ActionReminders
	ActionDeleteAll
	ActionCreateUser
	ActionExit
)

type menuItem struct {
	number int
	label  string
	action MenuAction
}

// MenuView is the numbered main menu. Which items appear depends on the
// login state: the first slot toggles between login and logout, and the
// admin-only entries show up only for an admin identity. Numbering is kept
// stable so item 10 is always exit.
type MenuView struct {
	styles   *styles.Styles
	keys     keys.KeyMap
	identity *auth.Identity
	items    []menuItem
	cursor   int

	status    string
	statusErr bool

	width  int
	height int
}

// NewMenuView creates the menu for the given login state.
func NewMenuView(identity *auth.Identity) *MenuView {
	v := &MenuView{
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
	v.SetIdentity(identity)
	return v
}

// SetIdentity rebuilds the menu items for a new login state.
func (v *MenuView) SetIdentity(identity *auth.Identity) {
	v.identity = identity

	first := menuItem{1, "Login", ActionLogin}
	if identity != nil {
		first = menuItem{1, fmt.Sprintf("Logout (%s)", identity.Username), ActionLogout}
	}

	items := []menuItem{
		first,
		{2, "Create Task", ActionCreateTask},
		{3, "List Tasks", ActionListTasks},
		{4, "Manage Task Status", ActionMarkStatus},
		{5, "Delete Task", ActionDeleteTask},
		{6, "Set Task Due Date", ActionSetDueDate},
		{7, "Show Due Date Reminders", ActionReminders},
	}
	if identity.IsAdmin() {
		items = append(items,
			menuItem{8, "Delete All Tasks", ActionDeleteAll},
			menuItem{9, "Create User", ActionCreateUser},
		)
	}
	items = append(items, menuItem{10, "Exit", ActionExit})

	v.items = items
	if v.cursor >= len(v.items) {
		v.cursor = len(v.items) - 1
	}
}

// SetStatus sets the status line shown under the menu.
func (v *MenuView) SetStatus(status string, isError bool) {
	v.status = status
	v.statusErr = isError
}

// Init initializes the view
func (v *MenuView) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (v *MenuView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil

		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(v.items)-1 {
				v.cursor++
			}
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			item := v.items[v.cursor]
			return v, func() tea.Msg { return MenuSelection{Action: item.action} }

		default:
			// Digit shortcuts matching the displayed numbers; 0 selects
			// item 10.
			if n := digitNumber(msg.String()); n != 0 {
				for _, item := range v.items {
					if item.number == n {
						action := item.action
						return v, func() tea.Msg { return MenuSelection{Action: action} }
					}
				}
			}
			return v, nil
		}
	}

	return v, nil
}

func digitNumber(s string) int {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0
	}
	if s[0] == '0' {
		return 10
	}
	return int(s[0] - '0')
}

// View renders the menu
func (v *MenuView) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Task Den"))
	b.WriteString("\n")
	if v.identity != nil {
		b.WriteString(v.styles.TitleMuted.Render(
			fmt.Sprintf("logged in as %s (%s)", v.identity.Username, v.identity.Role)))
	} else {
		b.WriteString(v.styles.TitleMuted.Render("not logged in"))
	}
	b.WriteString("\n\n")

	for i, item := range v.items {
		line := fmt.Sprintf("%2d. %s", item.number, item.label)
		if i == v.cursor {
			b.WriteString(v.styles.ListSelected.Render(line))
		} else {
			b.WriteString(v.styles.ListItem.Render(line))
		}
		b.WriteString("\n")
	}

	if v.identity == nil {
		b.WriteString("\n")
		b.WriteString(v.styles.TitleMuted.Render("  (log in to manage and delete tasks)"))
	}

	if v.status != "" {
		b.WriteString("\n\n")
		if v.statusErr {
			b.WriteString(v.styles.StatusError.Render(v.status))
		} else {
			b.WriteString(v.styles.StatusInfo.Render(v.status))
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("↑/↓ move · enter select · 1-9/0 jump · ctrl+c quit"))
	return b.String()
}
