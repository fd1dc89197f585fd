// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization guards,
// conditional persistence, and event publication.
package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
)

// Role classifies the actor requesting an operation. Authentication happens
// upstream; commands only consume the already-established identity and role
// to apply ownership and assignment guards.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// Validate reports whether the role is one of the known values.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return nil
	}
	return ErrRoleIsInvalid
}

var (
	ErrRoleIsInvalid = errors.New("role must be customer, staff or admin")

	// ErrForbidden is returned when the actor's role or identity does not
	// permit the requested operation on the target order.
	ErrForbidden = errors.New("operation is not permitted for this actor")
)

// Actor is the identity on whose behalf a command executes.
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor creates an actor from an already-authenticated identity.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the actor's unique identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}
