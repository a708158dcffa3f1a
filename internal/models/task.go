package models

import (
	"errors"
	"time"
)

// Priority of a task.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityHigh:
		return "HIGH"
	}
	return "MEDIUM"
}

// ParsePriority matches a priority token (case-sensitive). The second
// return value reports whether the token was recognized; unrecognized
// tokens fall back to MEDIUM.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "LOW":
		return PriorityLow, true
	case "MEDIUM":
		return PriorityMedium, true
	case "HIGH":
		return PriorityHigh, true
	}
	return PriorityMedium, false
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusIdle       TaskStatus = "Idle"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
	StatusDropped    TaskStatus = "Dropped"
)

// ErrTaskCompleted is returned by status transitions attempted on a task
// that has already reached a terminal state (Completed or Dropped). The
// task is left unchanged.
var ErrTaskCompleted = errors.New("cannot change status of a completed task")

// Task is the unit of tracked work. Title is set at creation and not
// changed afterwards. Completed is derived state: it is true exactly when
// Status is Completed or Dropped, and once true only deletion removes the
// task from play.
type Task struct {
	Title         string
	Description   string
	Deadline      *time.Time
	Priority      Priority
	Collaborators []string
	Creator       string
	Completed     bool
	Status        TaskStatus
	Checklist     []string
	Notes         []string
	Attachments   []string
}

// NewTask builds a task in the initial Idle state.
func NewTask(title, description string, deadline *time.Time, priority Priority, collaborators []string, creator string) *Task {
	return &Task{
		Title:         title,
		Description:   description,
		Deadline:      deadline,
		Priority:      priority,
		Collaborators: collaborators,
		Creator:       creator,
		Status:        StatusIdle,
	}
}

// MarkInProgress moves the task to In Progress. Illegal once completed.
func (t *Task) MarkInProgress() error {
	if t.Completed {
		return ErrTaskCompleted
	}
	t.Status = StatusInProgress
	return nil
}

// MarkIdle moves the task back to Idle. Illegal once completed.
func (t *Task) MarkIdle() error {
	if t.Completed {
		return ErrTaskCompleted
	}
	t.Status = StatusIdle
	return nil
}

// MarkCompleted moves the task to Completed. Terminal.
func (t *Task) MarkCompleted() error {
	if t.Completed {
		return ErrTaskCompleted
	}
	t.Status = StatusCompleted
	t.Completed = true
	return nil
}

// MarkDropped moves the task to Dropped. Terminal.
func (t *Task) MarkDropped() error {
	if t.Completed {
		return ErrTaskCompleted
	}
	t.Status = StatusDropped
	t.Completed = true
	return nil
}

// AddChecklistItem appends an item to the checklist. Unrestricted.
func (t *Task) AddChecklistItem(item string) {
	t.Checklist = append(t.Checklist, item)
}

// AddNote appends a note. Unrestricted.
func (t *Task) AddNote(note string) {
	t.Notes = append(t.Notes, note)
}

// AddAttachment appends an attachment path. Unrestricted.
func (t *Task) AddAttachment(path string) {
	t.Attachments = append(t.Attachments, path)
}
