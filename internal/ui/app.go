package ui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kgrigsby/taskden/internal/auth"
	"github.com/kgrigsby/taskden/internal/db"
	"github.com/kgrigsby/taskden/internal/store"
	"github.com/kgrigsby/taskden/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewMenu View = iota
	ViewLogin
	ViewBrowse
	ViewTaskForm
	ViewAction
	ViewUserForm
	ViewConfirmWipe
	ViewReminders
)

// viewModel is what every view implements.
type viewModel interface {
	Init() tea.Cmd
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
}

// App drives the session: one operator, one menu loop. It owns the login
// state and saves both stores on every exit path, including interrupt.
type App struct {
	registry *store.UserRegistry
	tasks    *store.TaskStore
	database *db.DB // nil when persistence is unavailable

	identity    *auth.Identity
	currentView View

	menu      *views.MenuView
	login     *views.LoginView
	browse    *views.TaskListView
	taskForm  *views.TaskFormView
	action    *views.TaskActionView
	userForm  *views.UserFormView
	confirm   *views.ConfirmWipeView
	reminders *views.RemindersView

	width  int
	height int
}

// NewApp creates the application.
func NewApp(registry *store.UserRegistry, tasks *store.TaskStore, database *db.DB) *App {
	return &App{
		registry:    registry,
		tasks:       tasks,
		database:    database,
		currentView: ViewMenu,
		menu:        views.NewMenuView(nil),
	}
}

func (a *App) Init() tea.Cmd {
	return a.menu.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// The menu persists across views, keep its size current
		a.menu.Update(msg)

	case tea.KeyMsg:
		// Interrupt: best-effort persist before quitting, from any view
		if msg.String() == "ctrl+c" {
			return a, a.saveAndQuit()
		}

	case views.LoggedIn:
		a.identity = msg.Identity
		a.menu.SetIdentity(a.identity)
		a.menu.SetStatus("Login successful! Welcome, "+a.identity.Username+"!", false)
		a.currentView = ViewMenu
		return a, nil

	case views.BackToMenu:
		a.menu.SetIdentity(a.identity)
		a.menu.SetStatus(msg.Status, msg.IsError)
		a.currentView = ViewMenu
		return a, nil

	case views.MenuSelection:
		return a, a.dispatch(msg.Action)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewMenu:
		_, cmd = a.menu.Update(msg)
	case ViewLogin:
		_, cmd = a.login.Update(msg)
	case ViewBrowse:
		_, cmd = a.browse.Update(msg)
	case ViewTaskForm:
		_, cmd = a.taskForm.Update(msg)
	case ViewAction:
		_, cmd = a.action.Update(msg)
	case ViewUserForm:
		_, cmd = a.userForm.Update(msg)
	case ViewConfirmWipe:
		_, cmd = a.confirm.Update(msg)
	case ViewReminders:
		_, cmd = a.reminders.Update(msg)
	}
	return a, cmd
}

func (a *App) dispatch(action views.MenuAction) tea.Cmd {
	switch action {
	case views.ActionLogin:
		a.login = views.NewLoginView(a.registry)
		return a.open(ViewLogin, a.login)

	case views.ActionLogout:
		slog.Info("logout", "username", a.identity.Username)
		a.identity = nil
		a.menu.SetIdentity(nil)
		a.menu.SetStatus("Logout successful!", false)
		return nil

	case views.ActionCreateTask:
		if a.identity == nil {
			a.menu.SetStatus("You need to log in to create a task.", true)
			return nil
		}
		a.taskForm = views.NewTaskFormView(a.tasks, a.identity)
		return a.open(ViewTaskForm, a.taskForm)

	case views.ActionListTasks:
		a.browse = views.NewTaskListView(a.tasks, a.identity)
		return a.open(ViewBrowse, a.browse)

	case views.ActionMarkStatus:
		return a.openAction(views.TaskActionMarkStatus)

	case views.ActionDeleteTask:
		return a.openAction(views.TaskActionDelete)

	case views.ActionSetDueDate:
		return a.openAction(views.TaskActionDueDate)

	case views.ActionReminders:
		a.reminders = views.NewRemindersView(a.tasks)
		return a.open(ViewReminders, a.reminders)

	case views.ActionDeleteAll:
		if !a.identity.IsAdmin() {
			a.menu.SetStatus("Admin privileges required.", true)
			return nil
		}
		a.confirm = views.NewConfirmWipeView(a.tasks, a.identity)
		return a.open(ViewConfirmWipe, a.confirm)

	case views.ActionCreateUser:
		if !a.identity.IsAdmin() {
			a.menu.SetStatus("Admin privileges required.", true)
			return nil
		}
		a.userForm = views.NewUserFormView(a.registry)
		return a.open(ViewUserForm, a.userForm)

	case views.ActionExit:
		return a.saveAndQuit()
	}
	return nil
}

func (a *App) openAction(kind views.TaskAction) tea.Cmd {
	if a.identity == nil {
		a.menu.SetStatus("You need to log in first.", true)
		return nil
	}
	a.action = views.NewTaskActionView(kind, a.tasks, a.identity)
	return a.open(ViewAction, a.action)
}

func (a *App) open(view View, m viewModel) tea.Cmd {
	a.currentView = view
	return tea.Batch(
		m.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

// SaveAll persists both stores. Failures are logged and reported but never
// abort the shutdown.
func (a *App) SaveAll() {
	if a.database == nil {
		slog.Warn("persistence unavailable, data not saved")
		return
	}
	if err := a.database.SaveUsers(a.registry.Snapshot()); err != nil {
		slog.Error("failed to save users", "error", err)
	}
	if err := a.database.SaveTasks(a.tasks.Snapshot()); err != nil {
		slog.Error("failed to save tasks", "error", err)
	}
}

func (a *App) saveAndQuit() tea.Cmd {
	a.SaveAll()
	return tea.Quit
}

func (a *App) View() string {
	switch a.currentView {
	case ViewLogin:
		return a.login.View()
	case ViewBrowse:
		return a.browse.View()
	case ViewTaskForm:
		return a.taskForm.View()
	case ViewAction:
		return a.action.View()
	case ViewUserForm:
		return a.userForm.View()
	case ViewConfirmWipe:
		return a.confirm.View()
	case ViewReminders:
		return a.reminders.View()
	}
	return a.menu.View()
}
