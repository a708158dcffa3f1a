package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kgrigsby/taskden/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestLoadFromFreshDatabase(t *testing.T) {
	database := newTestDB(t)

	users, err := database.LoadUsers()
	require.NoError(t, err)
	require.Empty(t, users)

	tasks, err := database.LoadTasks()
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestUserRoundTrip(t *testing.T) {
	database := newTestDB(t)

	saved := []models.User{
		*models.NewUser("alice", "digest-a", models.RoleAdmin),
		*models.NewUser("bob", "digest-b", models.RoleUser),
	}
	require.NoError(t, database.SaveUsers(saved))

	loaded, err := database.LoadUsers()
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestLoadSkipsUnknownRole(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.SaveUsers([]models.User{
		*models.NewUser("alice", "digest", models.RoleAdmin),
	}))
	_, err := database.Exec(
		"INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)",
		"mallory", "digest", 9)
	require.NoError(t, err)

	loaded, err := database.LoadUsers()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "alice", loaded[0].Username)
}

func TestTaskRoundTrip(t *testing.T) {
	database := newTestDB(t)

	deadline := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	full := models.Task{
		Title:         "Buy milk",
		Description:   "from the corner shop",
		Deadline:      &deadline,
		Priority:      models.PriorityHigh,
		Collaborators: []string{"bob", "carol"},
		Creator:       "alice",
		Completed:     true,
		Status:        models.StatusCompleted,
		Checklist:     []string{"first", "second"},
		Notes:         []string{"a note"},
		Attachments:   []string{"/tmp/receipt.pdf"},
	}
	bare := models.Task{
		Title:    "bare",
		Priority: models.PriorityMedium,
		Creator:  "bob",
		Status:   models.StatusIdle,
	}
	require.NoError(t, database.SaveTasks([]models.Task{full, bare}))

	loaded, err := database.LoadTasks()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	got := loaded[0]
	require.Equal(t, full.Title, got.Title)
	require.Equal(t, full.Description, got.Description)
	require.NotNil(t, got.Deadline)
	require.True(t, got.Deadline.Equal(deadline))
	require.Equal(t, full.Priority, got.Priority)
	require.Equal(t, full.Collaborators, got.Collaborators)
	require.Equal(t, full.Creator, got.Creator)
	require.Equal(t, full.Completed, got.Completed)
	require.Equal(t, full.Status, got.Status)
	require.Equal(t, full.Checklist, got.Checklist)
	require.Equal(t, full.Notes, got.Notes)
	require.Equal(t, full.Attachments, got.Attachments)

	got = loaded[1]
	require.Equal(t, "bare", got.Title)
	require.Nil(t, got.Deadline)
	require.Empty(t, got.Collaborators)
	require.Empty(t, got.Checklist)
}

func TestSaveReplacesSnapshot(t *testing.T) {
	database := newTestDB(t)

	first := []models.Task{
		{Title: "one", Priority: models.PriorityMedium, Creator: "a", Status: models.StatusIdle},
		{Title: "two", Priority: models.PriorityMedium, Creator: "a", Status: models.StatusIdle},
		{Title: "three", Priority: models.PriorityMedium, Creator: "a", Status: models.StatusIdle},
	}
	require.NoError(t, database.SaveTasks(first))

	second := []models.Task{
		{Title: "only", Priority: models.PriorityLow, Creator: "b", Status: models.StatusInProgress, Notes: []string{"n"}},
	}
	require.NoError(t, database.SaveTasks(second))

	loaded, err := database.LoadTasks()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "only", loaded[0].Title)

	// No orphaned entries survive the replace
	var count int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM task_entries").Scan(&count))
	require.Equal(t, 1, count)
}

func TestTaskOrderPreserved(t *testing.T) {
	database := newTestDB(t)

	var tasks []models.Task
	for _, title := range []string{"z", "a", "m"} {
		tasks = append(tasks, models.Task{
			Title: title, Priority: models.PriorityMedium, Creator: "a", Status: models.StatusIdle,
		})
	}
	require.NoError(t, database.SaveTasks(tasks))

	loaded, err := database.LoadTasks()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	for i, title := range []string{"z", "a", "m"} {
		require.Equal(t, title, loaded[i].Title)
	}
}
