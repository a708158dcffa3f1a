package store

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/kgrigsby/taskden/internal/auth"
	"github.com/kgrigsby/taskden/internal/models"
)

var (
	ErrNotLoggedIn         = errors.New("you need to log in first")
	ErrPermissionDenied    = errors.New("you don't have permission for this task")
	ErrAdminOnly           = errors.New("admin privileges required")
	ErrInvalidIndex        = errors.New("invalid task number")
	ErrInvalidDate         = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidStatusChoice = errors.New("invalid status choice")
	ErrEmptyTitle          = errors.New("task title is required")
	ErrNotConfirmed        = errors.New("operation canceled")
)

// DateLayout is the operator-facing date format for deadlines.
const DateLayout = "2006-01-02"

// DeleteAllPhrase must be typed verbatim as the second confirmation before
// the store is wiped.
const DeleteAllPhrase = "DELETE ALL"

// StatusChoice selects one of the four status transitions, numbered the
// way the menu presents them.
type StatusChoice int

const (
	ChoiceInProgress StatusChoice = iota + 1
	ChoiceIdle
	ChoiceCompleted
	ChoiceDropped
)

// TaskSaver persists a snapshot of the task list. Create persists
// immediately through it; a nil saver skips that step.
type TaskSaver interface {
	SaveTasks(tasks []models.Task) error
}

// TaskView is what one caller is allowed to see of one task. When Full is
// false only Title and Creator may be shown.
type TaskView struct {
	Index int // 1-based position in the store
	Task  *models.Task
	Full  bool
}

// TaskStore is the ordered in-memory task list. Order is insertion order
// and only matters for the 1-based indices shown to the operator.
type TaskStore struct {
	tasks []*models.Task
	saver TaskSaver
}

// NewTaskStore creates an empty store that persists through saver.
func NewTaskStore(saver TaskSaver) *TaskStore {
	return &TaskStore{saver: saver}
}

// Create appends a new task. A logged-in identity is required; the
// authenticated username becomes the creator. An unparsable or empty
// deadline leaves the deadline unset, an unrecognized priority token falls
// back to MEDIUM, and collaborators are split on commas. The new list is
// persisted immediately.
func (s *TaskStore) Create(ident *auth.Identity, title, description, deadlineText, priorityText, collaboratorsText string) (*models.Task, error) {
	if ident == nil {
		return nil, ErrNotLoggedIn
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}

	var deadline *time.Time
	if deadlineText != "" {
		if d, err := time.Parse(DateLayout, deadlineText); err == nil {
			deadline = &d
		} else {
			slog.Info("unparsable deadline ignored", "input", deadlineText)
		}
	}

	priority, ok := models.ParsePriority(priorityText)
	if !ok && priorityText != "" {
		slog.Info("unrecognized priority, using MEDIUM", "input", priorityText)
	}

	task := models.NewTask(title, description, deadline, priority, splitCollaborators(collaboratorsText), ident.Username)
	s.tasks = append(s.tasks, task)

	if s.saver != nil {
		if err := s.saver.SaveTasks(s.Snapshot()); err != nil {
			slog.Warn("failed to persist tasks", "error", err)
		}
	}
	return task, nil
}

// List renders one view per task. Full detail goes to callers that either
// created the task or hold task-creation rights; everyone else, including
// logged-out callers, gets title and creator only.
func (s *TaskStore) List(ident *auth.Identity) []TaskView {
	views := make([]TaskView, 0, len(s.tasks))
	for i, t := range s.tasks {
		full := ident != nil && (ident.Has(models.PermCreateTasks) || ident.Username == t.Creator)
		views = append(views, TaskView{Index: i + 1, Task: t, Full: full})
	}
	return views
}

// Get returns the task at the given 1-based index.
func (s *TaskStore) Get(index int) (*models.Task, error) {
	if index < 1 || index > len(s.tasks) {
		return nil, ErrInvalidIndex
	}
	return s.tasks[index-1], nil
}

// Delete removes the task at the given 1-based index. Only the creator or
// a holder of the manage-users capability may delete; everyone else is
// rejected with the store unchanged.
func (s *TaskStore) Delete(ident *auth.Identity, index int) error {
	if _, err := s.authorize(ident, index, "delete"); err != nil {
		return err
	}
	s.tasks = append(s.tasks[:index-1], s.tasks[index:]...)
	return nil
}

// SetDueDate parses dateText and sets the deadline of the task at the
// given 1-based index. A malformed date is an error and leaves the task
// unchanged. Same authorization rule as Delete.
func (s *TaskStore) SetDueDate(ident *auth.Identity, index int, dateText string) error {
	task, err := s.authorize(ident, index, "set due date")
	if err != nil {
		return err
	}
	d, err := time.Parse(DateLayout, dateText)
	if err != nil {
		return ErrInvalidDate
	}
	task.Deadline = &d
	return nil
}

// MarkStatus applies the chosen status transition to the task at the given
// 1-based index, delegating legality of the transition to the task itself.
// Same authorization rule as Delete.
func (s *TaskStore) MarkStatus(ident *auth.Identity, index int, choice StatusChoice) error {
	task, err := s.authorize(ident, index, "mark status")
	if err != nil {
		return err
	}
	switch choice {
	case ChoiceInProgress:
		return task.MarkInProgress()
	case ChoiceIdle:
		return task.MarkIdle()
	case ChoiceCompleted:
		return task.MarkCompleted()
	case ChoiceDropped:
		return task.MarkDropped()
	}
	return ErrInvalidStatusChoice
}

// DeleteAll irreversibly clears the store. The caller must be an admin and
// must supply both confirmations: "yes" to the first prompt and the exact
// DeleteAllPhrase to the second. Anything else leaves the store untouched.
func (s *TaskStore) DeleteAll(ident *auth.Identity, confirm, phrase string) error {
	if ident == nil {
		return ErrNotLoggedIn
	}
	if !ident.IsAdmin() {
		slog.Warn("unauthorized attempt to delete all tasks", "username", ident.Username)
		return ErrAdminOnly
	}
	if !strings.EqualFold(confirm, "yes") || phrase != DeleteAllPhrase {
		return ErrNotConfirmed
	}
	slog.Info("all tasks deleted", "username", ident.Username, "count", len(s.tasks))
	s.tasks = nil
	return nil
}

// UpcomingReminders returns, in store order, every task whose deadline is
// strictly after now.
func (s *TaskStore) UpcomingReminders(now time.Time) []*models.Task {
	var upcoming []*models.Task
	for _, t := range s.tasks {
		if t.Deadline != nil && t.Deadline.After(now) {
			upcoming = append(upcoming, t)
		}
	}
	return upcoming
}

// Len returns the number of stored tasks.
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// Snapshot returns a copy of every task in store order.
func (s *TaskStore) Snapshot() []models.Task {
	tasks := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, *t)
	}
	return tasks
}

// Restore replaces the store contents with the given tasks, preserving
// their order.
func (s *TaskStore) Restore(tasks []models.Task) {
	s.tasks = make([]*models.Task, 0, len(tasks))
	for i := range tasks {
		t := tasks[i]
		s.tasks = append(s.tasks, &t)
	}
}

// authorize checks login, index range, and the ownership rule shared by
// Delete, SetDueDate, and MarkStatus: the creator or a manage-users holder.
func (s *TaskStore) authorize(ident *auth.Identity, index int, action string) (*models.Task, error) {
	if ident == nil {
		return nil, ErrNotLoggedIn
	}
	task, err := s.Get(index)
	if err != nil {
		return nil, err
	}
	if ident.Username != task.Creator && !ident.Has(models.PermManageUsers) {
		slog.Warn("unauthorized task operation", "action", action, "username", ident.Username, "task", task.Title)
		return nil, ErrPermissionDenied
	}
	return task, nil
}

func splitCollaborators(text string) []string {
	var collaborators []string
	for _, c := range strings.Split(text, ",") {
		if c = strings.TrimSpace(c); c != "" {
			collaborators = append(collaborators, c)
		}
	}
	return collaborators
}
