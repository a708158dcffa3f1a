package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kgrigsby/taskden/internal/auth"
	"github.com/kgrigsby/taskden/internal/models"
)

func TestRegistryAddAndFind(t *testing.T) {
	r := NewUserRegistry()

	u, err := r.Add("alice", "pw1", models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.NotEqual(t, "pw1", u.PasswordHash)
	require.True(t, auth.VerifyPassword(u.PasswordHash, "pw1"))
	require.Equal(t, models.PermissionsFor(models.RoleAdmin), u.Permissions)

	found, ok := r.Find("alice")
	require.True(t, ok)
	require.Equal(t, u, found)

	_, ok = r.Find("bob")
	require.False(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewUserRegistry()

	_, err := r.Add("alice", "pw1", models.RoleUser)
	require.NoError(t, err)

	_, err = r.Add("alice", "other", models.RoleAdmin)
	require.ErrorIs(t, err, ErrUsernameTaken)
	require.Equal(t, 1, r.Len())

	// The original record is untouched
	u, _ := r.Find("alice")
	require.Equal(t, models.RoleUser, u.Role)
}

func TestRegistryRejectsEmptyUsername(t *testing.T) {
	r := NewUserRegistry()
	_, err := r.Add("", "pw", models.RoleUser)
	require.ErrorIs(t, err, ErrEmptyUsername)
}

func TestRegistrySnapshotRestore(t *testing.T) {
	r := NewUserRegistry()
	_, err := r.Add("bob", "x", models.RoleUser)
	require.NoError(t, err)
	_, err = r.Add("alice", "y", models.RoleAdmin)
	require.NoError(t, err)

	snapshot := r.Snapshot()
	require.Len(t, snapshot, 2)
	// Deterministic order
	require.Equal(t, "alice", snapshot[0].Username)
	require.Equal(t, "bob", snapshot[1].Username)

	restored := NewUserRegistry()
	restored.Restore(snapshot)
	require.Equal(t, 2, restored.Len())

	u, ok := restored.Find("alice")
	require.True(t, ok)
	require.Equal(t, models.RoleAdmin, u.Role)
	require.True(t, auth.VerifyPassword(u.PasswordHash, "y"))
}

func TestRestoreRederivesPermissions(t *testing.T) {
	// A tampered permission set in a stored record must not survive a
	// restore; permissions always derive from the role.
	tampered := models.User{
		Username:     "mallory",
		PasswordHash: "digest",
		Role:         models.RoleUser,
		Permissions:  models.PermissionsFor(models.RoleAdmin),
	}

	r := NewUserRegistry()
	r.Restore([]models.User{tampered})

	u, ok := r.Find("mallory")
	require.True(t, ok)
	require.Equal(t, models.PermissionsFor(models.RoleUser), u.Permissions)
	require.False(t, u.HasPermission(models.PermManageUsers))
}
