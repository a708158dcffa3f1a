package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/kgrigsby/taskden/internal/models"
)

// Entry kinds for the checklist/notes/attachments sub-lists. Each list is
// ordered and append-only, so insertion order (rowid) is the list order.
const (
	entryChecklist  = "checklist"
	entryNote       = "note"
	entryAttachment = "attachment"
)

// SaveTasks replaces the stored task snapshot with the given tasks,
// preserving their order.
func (db *DB) SaveTasks(tasks []models.Task) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM task_entries"); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}

	for i, t := range tasks {
		var deadline sql.NullTime
		if t.Deadline != nil {
			deadline = sql.NullTime{Time: *t.Deadline, Valid: true}
		}
		result, err := tx.Exec(`
			INSERT INTO tasks (position, title, description, deadline, priority, collaborators, creator, completed, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, i, t.Title, t.Description, deadline, int(t.Priority),
			strings.Join(t.Collaborators, ","), t.Creator, t.Completed, string(t.Status))
		if err != nil {
			return fmt.Errorf("saving task %q: %w", t.Title, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("saving task %q: %w", t.Title, err)
		}
		if err := insertEntries(tx, id, entryChecklist, t.Checklist); err != nil {
			return fmt.Errorf("saving task %q: %w", t.Title, err)
		}
		if err := insertEntries(tx, id, entryNote, t.Notes); err != nil {
			return fmt.Errorf("saving task %q: %w", t.Title, err)
		}
		if err := insertEntries(tx, id, entryAttachment, t.Attachments); err != nil {
			return fmt.Errorf("saving task %q: %w", t.Title, err)
		}
	}
	return tx.Commit()
}

func insertEntries(tx *sql.Tx, taskID int64, kind string, items []string) error {
	for _, item := range items {
		if _, err := tx.Exec(`
			INSERT INTO task_entries (task_id, kind, content) VALUES (?, ?, ?)
		`, taskID, kind, item); err != nil {
			return err
		}
	}
	return nil
}

// LoadTasks reads back the stored task snapshot in its saved order.
func (db *DB) LoadTasks() ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT id, title, description, deadline, priority, collaborators, creator, completed, status
		FROM tasks ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		tasks []models.Task
		ids   []int64
	)
	for rows.Next() {
		var (
			t             models.Task
			id            int64
			deadline      sql.NullTime
			priority      int
			collaborators string
			status        string
		)
		if err := rows.Scan(&id, &t.Title, &t.Description, &deadline, &priority, &collaborators, &t.Creator, &t.Completed, &status); err != nil {
			return nil, err
		}
		if deadline.Valid {
			d := deadline.Time
			t.Deadline = &d
		}
		t.Priority = models.Priority(priority)
		t.Status = models.TaskStatus(status)
		if collaborators != "" {
			t.Collaborators = strings.Split(collaborators, ",")
		}
		tasks = append(tasks, t)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tasks {
		if err := db.loadEntries(&tasks[i], ids[i]); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (db *DB) loadEntries(t *models.Task, taskID int64) error {
	rows, err := db.Query("SELECT kind, content FROM task_entries WHERE task_id = ? ORDER BY id", taskID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var kind, content string
		if err := rows.Scan(&kind, &content); err != nil {
			return err
		}
		switch kind {
		case entryChecklist:
			t.Checklist = append(t.Checklist, content)
		case entryNote:
			t.Notes = append(t.Notes, content)
		case entryAttachment:
			t.Attachments = append(t.Attachments, content)
		}
	}
	return rows.Err()
}
