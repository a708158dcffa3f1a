package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kgrigsby/taskden/internal/auth"
	"github.com/kgrigsby/taskden/internal/models"
)

func identWithRole(username string, role models.Role) *auth.Identity {
	return &auth.Identity{
		Username:    username,
		Role:        role,
		Permissions: models.PermissionsFor(role),
	}
}

type recordingSaver struct {
	saves [][]models.Task
}

func (s *recordingSaver) SaveTasks(tasks []models.Task) error {
	s.saves = append(s.saves, tasks)
	return nil
}

func TestCreate(t *testing.T) {
	alice := identWithRole("alice", models.RoleAdmin)
	s := NewTaskStore(nil)

	task, err := s.Create(alice, "Buy milk", "", "2099-01-01", "HIGH", "bob,carol")
	require.NoError(t, err)

	require.Equal(t, "Buy milk", task.Title)
	require.Equal(t, models.PriorityHigh, task.Priority)
	require.NotNil(t, task.Deadline)
	require.Equal(t, "2099-01-01", task.Deadline.Format(DateLayout))
	require.Equal(t, []string{"bob", "carol"}, task.Collaborators)
	require.Equal(t, "alice", task.Creator)
	require.Equal(t, models.StatusIdle, task.Status)
	require.False(t, task.Completed)
}

func TestCreateRequiresLogin(t *testing.T) {
	s := NewTaskStore(nil)
	_, err := s.Create(nil, "Buy milk", "", "", "", "")
	require.ErrorIs(t, err, ErrNotLoggedIn)
	require.Equal(t, 0, s.Len())
}

func TestCreateRequiresTitle(t *testing.T) {
	s := NewTaskStore(nil)
	_, err := s.Create(identWithRole("alice", models.RoleUser), "", "", "", "", "")
	require.ErrorIs(t, err, ErrEmptyTitle)
}

func TestCreateLenientInputs(t *testing.T) {
	s := NewTaskStore(nil)
	alice := identWithRole("alice", models.RoleUser)

	// A bad deadline and an unmatched priority token do not fail the create
	task, err := s.Create(alice, "t", "", "not-a-date", "high", "")
	require.NoError(t, err)
	require.Nil(t, task.Deadline)
	require.Equal(t, models.PriorityMedium, task.Priority)
	require.Empty(t, task.Collaborators)
}

func TestCreatePersistsImmediately(t *testing.T) {
	saver := &recordingSaver{}
	s := NewTaskStore(saver)

	_, err := s.Create(identWithRole("alice", models.RoleUser), "t", "", "", "", "")
	require.NoError(t, err)
	require.Len(t, saver.saves, 1)
	require.Len(t, saver.saves[0], 1)
	require.Equal(t, "t", saver.saves[0][0].Title)
}

func TestListVisibility(t *testing.T) {
	s := NewTaskStore(nil)
	alice := identWithRole("alice", models.RoleUser)
	_, err := s.Create(alice, "secret plans", "", "", "", "")
	require.NoError(t, err)

	// The creator always sees the full record
	views := s.List(alice)
	require.Len(t, views, 1)
	require.True(t, views[0].Full)
	require.Equal(t, 1, views[0].Index)

	// Any identity with task-creation rights sees the full record too
	views = s.List(identWithRole("bob", models.RoleUser))
	require.True(t, views[0].Full)

	// Logged-out callers get the reduced view
	views = s.List(nil)
	require.False(t, views[0].Full)
}

func TestDeleteKeepsOrder(t *testing.T) {
	s := NewTaskStore(nil)
	alice := identWithRole("alice", models.RoleAdmin)
	for _, title := range []string{"one", "two", "three"} {
		_, err := s.Create(alice, title, "", "", "", "")
		require.NoError(t, err)
	}

	require.NoError(t, s.Delete(alice, 2))
	require.Equal(t, 2, s.Len())

	views := s.List(alice)
	require.Equal(t, "one", views[0].Task.Title)
	require.Equal(t, "three", views[1].Task.Title)
}

func TestDeleteAuthorization(t *testing.T) {
	s := NewTaskStore(nil)
	alice := identWithRole("alice", models.RoleUser)
	_, err := s.Create(alice, "alice's task", "", "", "", "")
	require.NoError(t, err)

	// A non-owner without manage-users is rejected, store unchanged
	bob := identWithRole("bob", models.RoleUser)
	require.ErrorIs(t, s.Delete(bob, 1), ErrPermissionDenied)
	require.Equal(t, 1, s.Len())

	// Logged-out and out-of-range are rejected too
	require.ErrorIs(t, s.Delete(nil, 1), ErrNotLoggedIn)
	require.ErrorIs(t, s.Delete(alice, 2), ErrInvalidIndex)
	require.ErrorIs(t, s.Delete(alice, 0), ErrInvalidIndex)

	// An admin may delete someone else's task
	root := identWithRole("root", models.RoleAdmin)
	require.NoError(t, s.Delete(root, 1))
	require.Equal(t, 0, s.Len())
}

func TestMarkStatus(t *testing.T) {
	s := NewTaskStore(nil)
	alice := identWithRole("alice", models.RoleUser)
	_, err := s.Create(alice, "t", "", "", "", "")
	require.NoError(t, err)

	require.NoError(t, s.MarkStatus(alice, 1, ChoiceInProgress))
	task, err := s.Get(1)
	require.NoError(t, err)
	require.Equal(t, models.StatusInProgress, task.Status)

	require.NoError(t, s.MarkStatus(alice, 1, ChoiceCompleted))
	require.Equal(t, models.StatusCompleted, task.Status)

	// Terminal: the illegal transition is reported and nothing changes
	require.ErrorIs(t, s.MarkStatus(alice, 1, ChoiceDropped), models.ErrTaskCompleted)
	require.Equal(t, models.StatusCompleted, task.Status)
	require.True(t, task.Completed)

	require.ErrorIs(t, s.MarkStatus(alice, 1, StatusChoice(7)), ErrInvalidStatusChoice)
}

func TestMarkStatusAuthorization(t *testing.T) {
	s := NewTaskStore(nil)
	alice := identWithRole("alice", models.RoleUser)
	_, err := s.Create(alice, "t", "", "", "", "")
	require.NoError(t, err)

	bob := identWithRole("bob", models.RoleUser)
	require.ErrorIs(t, s.MarkStatus(bob, 1, ChoiceCompleted), ErrPermissionDenied)

	task, err := s.Get(1)
	require.NoError(t, err)
	require.Equal(t, models.StatusIdle, task.Status)
}

func TestSetDueDate(t *testing.T) {
	s := NewTaskStore(nil)
	alice := identWithRole("alice", models.RoleUser)
	_, err := s.Create(alice, "t", "", "", "", "")
	require.NoError(t, err)

	require.NoError(t, s.SetDueDate(alice, 1, "2099-06-15"))
	task, err := s.Get(1)
	require.NoError(t, err)
	require.Equal(t, "2099-06-15", task.Deadline.Format(DateLayout))

	// A malformed date is an error and leaves the deadline unchanged
	require.ErrorIs(t, s.SetDueDate(alice, 1, "15/06/2099"), ErrInvalidDate)
	require.Equal(t, "2099-06-15", task.Deadline.Format(DateLayout))
}

func TestDeleteAll(t *testing.T) {
	s := NewTaskStore(nil)
	root := identWithRole("root", models.RoleAdmin)
	for _, title := range []string{"one", "two"} {
		_, err := s.Create(root, title, "", "", "", "")
		require.NoError(t, err)
	}

	// Non-admins are rejected outright
	require.ErrorIs(t, s.DeleteAll(identWithRole("bob", models.RoleUser), "yes", DeleteAllPhrase), ErrAdminOnly)
	require.ErrorIs(t, s.DeleteAll(nil, "yes", DeleteAllPhrase), ErrNotLoggedIn)

	// Any deviation in either confirmation leaves the store untouched
	require.ErrorIs(t, s.DeleteAll(root, "no", DeleteAllPhrase), ErrNotConfirmed)
	require.ErrorIs(t, s.DeleteAll(root, "yes", "delete all"), ErrNotConfirmed)
	require.ErrorIs(t, s.DeleteAll(root, "yes", ""), ErrNotConfirmed)
	require.Equal(t, 2, s.Len())

	require.NoError(t, s.DeleteAll(root, "yes", DeleteAllPhrase))
	require.Equal(t, 0, s.Len())
}

func TestUpcomingReminders(t *testing.T) {
	s := NewTaskStore(nil)
	alice := identWithRole("alice", models.RoleUser)

	_, err := s.Create(alice, "past", "", "2001-01-01", "", "")
	require.NoError(t, err)
	_, err = s.Create(alice, "future-b", "", "2099-12-01", "", "")
	require.NoError(t, err)
	_, err = s.Create(alice, "no deadline", "", "", "", "")
	require.NoError(t, err)
	_, err = s.Create(alice, "future-a", "", "2099-01-01", "", "")
	require.NoError(t, err)

	upcoming := s.UpcomingReminders(time.Now())
	require.Len(t, upcoming, 2)
	// Store order, not deadline order
	require.Equal(t, "future-b", upcoming[0].Title)
	require.Equal(t, "future-a", upcoming[1].Title)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := NewTaskStore(nil)
	alice := identWithRole("alice", models.RoleUser)
	_, err := s.Create(alice, "one", "d", "2099-01-01", "LOW", "bob")
	require.NoError(t, err)
	task, err := s.Get(1)
	require.NoError(t, err)
	task.AddNote("remember")

	restored := NewTaskStore(nil)
	restored.Restore(s.Snapshot())
	require.Equal(t, 1, restored.Len())

	got, err := restored.Get(1)
	require.NoError(t, err)
	require.Equal(t, "one", got.Title)
	require.Equal(t, []string{"remember"}, got.Notes)

	// The restored store owns its tasks
	got.AddNote("only here")
	require.Len(t, task.Notes, 1)
}
