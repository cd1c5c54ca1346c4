package models

// Role governs which routes and controls a user can reach.
type Role string

const (
	// RoleAdmin can manage editions, tribes and sectors in addition to
	// everything an editor can do.
	RoleAdmin Role = "admin"

	// RoleEditor can register and edit people and payments.
	RoleEditor Role = "editor"

	// RoleViewer has read-only access. It is also the fail-safe default
	// when a role cannot be resolved.
	RoleViewer Role = "viewer"
)

// ParseRole maps a stored role string to a Role, defaulting to the most
// restrictive role for anything unrecognized.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleViewer:
		return Role(s)
	default:
		return RoleViewer
	}
}

// Profile associates a login account with its role. One row per user,
// created out of band (there is no self-service role assignment).
type Profile struct {
	// UserID is the login account this profile belongs to.
	UserID string

	// Role is the access level granted to the account.
	Role Role
}
