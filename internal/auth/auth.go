// Package auth implements credential hashing and the login check that
// turns a username/password pair into an authenticated identity.
package auth

import (
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/kgrigsby/taskden/internal/models"
)

// ErrInvalidCredentials is returned for every failed login. An unknown
// username and a wrong password are deliberately indistinguishable to the
// caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// HashPassword derives a one-way digest of the plaintext. Empty strings
// hash normally.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches the stored digest.
func VerifyPassword(digest, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// Identity is the result of a successful login: the username plus the
// role-resolved capability set.
type Identity struct {
	Username    string
	Role        models.Role
	Permissions models.PermissionSet
}

// Has reports whether the identity holds the given capability. Safe on a
// nil identity, which holds nothing.
func (id *Identity) Has(p models.Permission) bool {
	return id != nil && id.Permissions.Has(p)
}

// IsAdmin reports whether the identity carries the admin role.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == models.RoleAdmin
}

// UserFinder looks up a stored account by username.
type UserFinder interface {
	Find(username string) (*models.User, bool)
}

// Authenticate verifies the credentials against the registry and returns
// the authenticated identity, or ErrInvalidCredentials.
func Authenticate(users UserFinder, username, password string) (*Identity, error) {
	u, ok := users.Find(username)
	if !ok || !VerifyPassword(u.PasswordHash, password) {
		slog.Warn("login failed", "username", username)
		return nil, ErrInvalidCredentials
	}
	slog.Info("login successful", "username", u.Username, "role", u.Role.String())
	return &Identity{
		Username:    u.Username,
		Role:        u.Role,
		Permissions: models.PermissionsFor(u.Role),
	}, nil
}
