package user

import (
	"hotel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidRole = errs.Validation("invalid role")

type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Actor is the already-authenticated caller of an operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanActOn reports whether the actor may operate on a record owned by ownerID.
func (a Actor) CanActOn(ownerID uuid.UUID) bool {
	return a.IsAdmin() || a.ID == ownerID
}
