// Package actor defines the identity acting on an order and the closed set of
// roles the platform recognizes. All role-gated decisions in the domain take a
// Role value rather than comparing raw strings at call sites.
package actor

import (
	"fmt"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/pkg/errs"
)

// Role is the closed enumeration of actor roles.
//
// Role gates two kinds of decisions: whether an actor may act on a student's
// orders at all (see the Authorizer), and which status transitions the actor
// may request (see the order status state machine).
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleParent is a parent or guardian ordering for their own student.
	RoleParent

	// RoleStaff is school kitchen or office staff operating on orders for
	// students of schools they have an access grant for.
	RoleStaff

	// RoleAdmin is a platform administrator with unconditional access.
	RoleAdmin

	// RoleSystem is an internal machine identity. Payment capture and
	// RFID delivery confirmation act under this role.
	RoleSystem
)

func roleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleParent:  "parent",
		RoleStaff:   "staff",
		RoleAdmin:   "admin",
		RoleSystem:  "system",
	}
}

// RoleFromString parses a role name into the closed enum.
// Unrecognized names yield an error, never a silent RoleUnknown.
func RoleFromString(s string) (Role, error) {
	for role, name := range roleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a recognized role", s),
	)
}

// String returns the lowercase role name, or "unknown" for invalid values.
func (r Role) String() string {
	if s, ok := roleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate returns an error unless the role is one of the defined values.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidError("role")
	}
	if _, ok := roleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// IsElevated reports whether the role may operate on orders it does not own.
// Elevated roles also drive the staff-side status transitions.
func (r Role) IsElevated() bool {
	return r == RoleStaff || r == RoleAdmin || r == RoleSystem
}

// Actor is the authenticated identity a request acts under. It is established
// by the external authentication service; this core only consumes it.
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor creates an Actor from a validated identity and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, role: role}, nil
}

// ID returns the actor's user identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Validate returns an error if the Actor is the zero value.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return errs.NewValueIsRequiredError("Actor must be created via NewActor")
	}
	return a.role.Validate()
}
