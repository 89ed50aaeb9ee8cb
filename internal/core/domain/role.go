package domain

import "fmt"

// Role is the closed set of role keys gating pages, menus and API routes.
// The string values are part of the wire contract (token claims, store rows,
// JSON payloads) and must not be changed, including the "Colaborator" spelling.
type Role string

const (
	RoleAdministrator  Role = "Administrator"
	RoleProjectManager Role = "Project_Manager"
	RoleCollaborator   Role = "Colaborator"
)

// Roles returns every known role in display order.
func Roles() []Role {
	return []Role{RoleAdministrator, RoleProjectManager, RoleCollaborator}
}

// Valid reports whether r is one of the known role keys.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleProjectManager, RoleCollaborator:
		return true
	default:
		return false
	}
}

// ParseRole converts a wire string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// In reports whether r is a member of roles.
func (r Role) In(roles []Role) bool {
	for _, allowed := range roles {
		if allowed == r {
			return true
		}
	}
	return false
}
