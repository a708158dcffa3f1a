package models

// Role classifies an account and determines its default capabilities.
// The set is closed: anything else found in a stored row is invalid.
type Role int

const (
	RoleAdmin Role = 1
	RoleUser  Role = 2
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleUser:
		return "USER"
	}
	return "UNKNOWN"
}

// ParseRole matches a role token (case-sensitive). The second return value
// reports whether the token was recognized.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "ADMIN":
		return RoleAdmin, true
	case "USER":
		return RoleUser, true
	}
	return RoleUser, false
}

// Permission is a single grantable capability.
type Permission uint8

const (
	PermCreateTasks Permission = 1 << iota
	PermUpdateTasks
	PermDeleteTasks
	PermManageUsers
)

// PermissionSet is a bitmask of capabilities.
type PermissionSet uint8

// Has reports whether the set contains p.
func (s PermissionSet) Has(p Permission) bool {
	return s&PermissionSet(p) != 0
}

// PermissionsFor resolves a role to its capability set. Admin capabilities
// are a strict superset of user capabilities; the sets are derived here and
// nowhere else.
func PermissionsFor(role Role) PermissionSet {
	switch role {
	case RoleAdmin:
		return PermissionSet(PermCreateTasks | PermUpdateTasks | PermDeleteTasks | PermManageUsers)
	default:
		return PermissionSet(PermCreateTasks | PermUpdateTasks)
	}
}

// User is a stored account. PasswordHash is an opaque digest, never the
// plaintext. Permissions are derived from Role at construction and are not
// independently settable.
type User struct {
	Username     string
	PasswordHash string
	Role         Role
	Permissions  PermissionSet
}

// NewUser builds an account record with permissions derived from the role.
func NewUser(username, passwordHash string, role Role) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		Permissions:  PermissionsFor(role),
	}
}

// HasPermission reports whether the account holds the given capability.
func (u *User) HasPermission(p Permission) bool {
	return u.Permissions.Has(p)
}
