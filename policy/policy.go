package policy

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent    Role = "Student"
	RoleInstructor Role = "Instructor"
	RoleAdmin      Role = "Admin"
)

// ParseRole maps a role string to its canonical Role. Only the exact
// spellings Student, Instructor and Admin are accepted.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// Principal is the authenticated actor making a request.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

// Decision is the outcome of an authorization check. A denied decision
// carries the reason so handlers can report 403 distinctly from 404.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Authorize decides whether p may mutate a resource owned by ownerID.
// Admins may mutate anything; everyone else only resources they own.
// Resources without an owner (ownerID == uuid.Nil) are admin-only.
func Authorize(p Principal, ownerID uuid.UUID) Decision {
	if p.Role == RoleAdmin {
		return allow()
	}
	if ownerID == uuid.Nil {
		return deny("resource has no owner")
	}
	if p.ID == ownerID {
		return allow()
	}
	return deny("you do not own this resource")
}
