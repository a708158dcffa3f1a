package db

import (
	"fmt"
	"log/slog"

	"github.com/kgrigsby/taskden/internal/models"
)

// SaveUsers replaces the stored account table with the given records.
func (db *DB) SaveUsers(users []models.User) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("saving users: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM users"); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}
	for _, u := range users {
		_, err := tx.Exec(`
			INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)
		`, u.Username, u.PasswordHash, int(u.Role))
		if err != nil {
			return fmt.Errorf("saving user %q: %w", u.Username, err)
		}
	}
	return tx.Commit()
}

// LoadUsers reads back every stored account. A row whose role value falls
// outside the known set is skipped with a warning rather than failing the
// whole load.
func (db *DB) LoadUsers() ([]models.User, error) {
	rows, err := db.Query("SELECT username, password_hash, role FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var (
			username, hash string
			role           int
		)
		if err := rows.Scan(&username, &hash, &role); err != nil {
			return nil, err
		}
		if !models.Role(role).Valid() {
			slog.Warn("skipping user with unknown role", "username", username, "role", role)
			continue
		}
		users = append(users, *models.NewUser(username, hash, models.Role(role)))
	}
	return users, rows.Err()
}
