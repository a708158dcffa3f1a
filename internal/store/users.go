// Package store holds the in-memory user registry and task store together
// with the authorization rules applied to each operation. Persistence is a
// wholesale snapshot/restore handled by the db package; the stores
// themselves never touch the disk directly.
package store

import (
	"errors"
	"sort"

	"github.com/kgrigsby/taskden/internal/auth"
	"github.com/kgrigsby/taskden/internal/models"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrUsernameTaken = errors.New("username already exists")
)

// UserRegistry is the in-memory table of accounts, keyed by username.
// There is no delete operation; records live until the process exits
// without saving.
type UserRegistry struct {
	users map[string]*models.User
}

// NewUserRegistry creates an empty registry.
func NewUserRegistry() *UserRegistry {
	return &UserRegistry{users: make(map[string]*models.User)}
}

// Add hashes the password, derives permissions from the role, and stores
// the record. Duplicate usernames are rejected rather than overwritten.
func (r *UserRegistry) Add(username, password string, role models.Role) (*models.User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if _, exists := r.users[username]; exists {
		return nil, ErrUsernameTaken
	}
	digest, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := models.NewUser(username, digest, role)
	r.users[username] = u
	return u, nil
}

// Find returns the stored account for username, if any.
func (r *UserRegistry) Find(username string) (*models.User, bool) {
	u, ok := r.users[username]
	return u, ok
}

// Len returns the number of stored accounts.
func (r *UserRegistry) Len() int {
	return len(r.users)
}

// Snapshot returns a copy of every record, ordered by username so saves
// are deterministic.
func (r *UserRegistry) Snapshot() []models.User {
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

// Restore replaces the registry contents with the given records,
// re-deriving each permission set from its role.
func (r *UserRegistry) Restore(users []models.User) {
	r.users = make(map[string]*models.User, len(users))
	for _, u := range users {
		r.users[u.Username] = models.NewUser(u.Username, u.PasswordHash, u.Role)
	}
}
