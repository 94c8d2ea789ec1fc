package models

// Role defines the user role type
type Role string

const (
	RoleEntrepreneur Role = "entrepreneur"
	RoleStartup      Role = "startup"
	RoleMentor       Role = "mentor"
	RoleInvestor     Role = "investor"

	// RoleUnknown is the fallback when a user id matches none of the
	// four role collections.
	RoleUnknown Role = "unknown"
)

// Roles lists the four registrable roles in the fixed scan order used by
// the matcher and by role detection.
var Roles = []Role{RoleEntrepreneur, RoleStartup, RoleMentor, RoleInvestor}

// Valid reports whether r is one of the four registrable roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEntrepreneur, RoleStartup, RoleMentor, RoleInvestor:
		return true
	}
	return false
}
