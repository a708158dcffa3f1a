package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kgrigsby/taskden/internal/models"
	"github.com/kgrigsby/taskden/internal/store"
	"github.com/kgrigsby/taskden/internal/ui/keys"
	"github.com/kgrigsby/taskden/internal/ui/styles"
)

// RemindersView lists every task whose deadline lies strictly in the
// future, in store order.
type RemindersView struct {
	styles   *styles.Styles
	keys     keys.KeyMap
	upcoming []*models.Task

	width  int
	height int
}

// NewRemindersView snapshots the upcoming tasks as of now.
func NewRemindersView(tasks *store.TaskStore) *RemindersView {
	return &RemindersView{
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		upcoming: tasks.UpcomingReminders(time.Now()),
	}
}

// Init initializes the view
func (v *RemindersView) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (v *RemindersView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, v.keys.Back) || key.Matches(msg, v.keys.Enter) {
			return v, func() tea.Msg { return BackToMenu{} }
		}
	}
	return v, nil
}

// View renders the reminders
func (v *RemindersView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Upcoming Task Due Date Reminders"))
	b.WriteString("\n\n")

	if len(v.upcoming) == 0 {
		b.WriteString(v.styles.TitleMuted.Render("No upcoming task due date reminders."))
	}
	for _, t := range v.upcoming {
		b.WriteString(v.styles.ListItem.Render(
			fmt.Sprintf("%s: %s", t.Title, t.Deadline.Format(store.DateLayout))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("esc back"))
	return b.String()
}
