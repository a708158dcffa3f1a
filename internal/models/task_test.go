package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTaskDefaults(t *testing.T) {
	deadline := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	task := NewTask("Buy milk", "from the corner shop", &deadline, PriorityHigh, []string{"bob", "carol"}, "alice")

	require.Equal(t, "Buy milk", task.Title)
	require.Equal(t, StatusIdle, task.Status)
	require.False(t, task.Completed)
	require.Equal(t, PriorityHigh, task.Priority)
	require.Equal(t, []string{"bob", "carol"}, task.Collaborators)
	require.Equal(t, "alice", task.Creator)
	require.Empty(t, task.Checklist)
	require.Empty(t, task.Notes)
	require.Empty(t, task.Attachments)
}

func TestStatusTransitions(t *testing.T) {
	task := NewTask("t", "", nil, PriorityMedium, nil, "alice")

	require.NoError(t, task.MarkInProgress())
	require.Equal(t, StatusInProgress, task.Status)
	require.False(t, task.Completed)

	require.NoError(t, task.MarkIdle())
	require.Equal(t, StatusIdle, task.Status)

	require.NoError(t, task.MarkCompleted())
	require.Equal(t, StatusCompleted, task.Status)
	require.True(t, task.Completed)
}

func TestCompletedIsTerminal(t *testing.T) {
	task := NewTask("t", "", nil, PriorityMedium, nil, "alice")
	require.NoError(t, task.MarkCompleted())

	// Every further transition is rejected and changes nothing
	require.ErrorIs(t, task.MarkInProgress(), ErrTaskCompleted)
	require.ErrorIs(t, task.MarkIdle(), ErrTaskCompleted)
	require.ErrorIs(t, task.MarkCompleted(), ErrTaskCompleted)
	require.ErrorIs(t, task.MarkDropped(), ErrTaskCompleted)
	require.Equal(t, StatusCompleted, task.Status)
	require.True(t, task.Completed)
}

func TestDroppedIsTerminal(t *testing.T) {
	task := NewTask("t", "", nil, PriorityMedium, nil, "alice")
	require.NoError(t, task.MarkDropped())
	require.Equal(t, StatusDropped, task.Status)
	require.True(t, task.Completed)

	require.ErrorIs(t, task.MarkInProgress(), ErrTaskCompleted)
	require.Equal(t, StatusDropped, task.Status)
}

func TestAppendsAreUnrestricted(t *testing.T) {
	task := NewTask("t", "", nil, PriorityMedium, nil, "alice")
	require.NoError(t, task.MarkCompleted())

	// Appends work even on a completed task and keep insertion order
	task.AddChecklistItem("first")
	task.AddChecklistItem("second")
	task.AddNote("a note")
	task.AddAttachment("/tmp/file.pdf")

	require.Equal(t, []string{"first", "second"}, task.Checklist)
	require.Equal(t, []string{"a note"}, task.Notes)
	require.Equal(t, []string{"/tmp/file.pdf"}, task.Attachments)
}

func TestParsePriority(t *testing.T) {
	p, ok := ParsePriority("HIGH")
	require.True(t, ok)
	require.Equal(t, PriorityHigh, p)

	// Matching is case-sensitive; anything else falls back to MEDIUM
	p, ok = ParsePriority("high")
	require.False(t, ok)
	require.Equal(t, PriorityMedium, p)

	p, ok = ParsePriority("")
	require.False(t, ok)
	require.Equal(t, PriorityMedium, p)
}
