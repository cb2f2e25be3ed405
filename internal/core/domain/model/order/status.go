package order

import (
	"fmt"

	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	pending ──> confirmed ──> preparing ──> ready ──> delivered
//	   │            │             │
//	   └────────────┴─────────────┴──> cancelled
//
// delivered and cancelled are terminal; no transition leaves them.
// cancelled is not reachable from ready or delivered.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when an order is first created.
	StatusPending

	// StatusConfirmed indicates school staff accepted the order.
	StatusConfirmed

	// StatusPreparing indicates the kitchen started preparing the meal.
	StatusPreparing

	// StatusReady indicates the meal is ready for handover.
	StatusReady

	// StatusDelivered indicates RFID-verified handover to the student.
	// Terminal.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled before handover.
	// Terminal.
	StatusCancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusConfirmed: "confirmed",
		StatusPreparing: "preparing",
		StatusReady:     "ready",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
	}
}

// allowedTransitions is the authoritative transition table: for each current
// status, the set of statuses a transition may move to.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusPreparing, StatusCancelled},
		StatusPreparing: {StatusReady, StatusCancelled},
		StatusReady:     {StatusDelivered},
		StatusDelivered: {},
		StatusCancelled: {},
	}
}

// StatusFromString parses a status name into the enum.
func StatusFromString(s string) (Status, error) {
	for status, name := range statusStrings() {
		if status != StatusUnknown && name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a recognized order status", s),
	)
}

// String returns the lowercase status name, or "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate returns an error unless the status is one of the defined values.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidError("status")
	}
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo checks the transition table without role gating.
// Returns a ValidationError with code INVALID_TRANSITION, reporting the
// current and requested status, when the move is not in the allowed set.
func (s Status) CanTransitionTo(next Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	for _, allowed := range allowedTransitions()[s] {
		if allowed == next {
			return nil
		}
	}

	return errs.NewValidationError(
		"INVALID_TRANSITION",
		fmt.Sprintf("cannot transition order from %s to %s", s, next),
	)
}

// AuthorizeTransition applies role gating on top of the transition table.
//
// Staff and admin drive the fulfilment flow (confirmed, preparing, ready).
// Delivered is reachable only through the RFID delivery confirmation path,
// which acts under the system role. Cancellation is open to staff, admin and
// system, and additionally to the order's owning actor while the order is
// still pending.
func (s Status) AuthorizeTransition(next Status, role actor.Role, isOwner bool) error {
	if err := s.CanTransitionTo(next); err != nil {
		return err
	}

	switch next {
	case StatusConfirmed, StatusPreparing, StatusReady:
		if role == actor.RoleStaff || role == actor.RoleAdmin {
			return nil
		}
	case StatusDelivered:
		if role == actor.RoleSystem {
			return nil
		}
		return errs.NewAuthorizationError(
			"NOT_AUTHORIZED",
			"delivered is set only by verified delivery confirmation",
		)
	case StatusCancelled:
		if role.IsElevated() {
			return nil
		}
		if isOwner && s == StatusPending {
			return nil
		}
	case StatusUnknown, StatusPending:
		// unreachable: the transition table never targets these
	}

	return errs.NewAuthorizationError(
		"NOT_AUTHORIZED",
		fmt.Sprintf("role %s may not transition order from %s to %s", role, s, next),
	)
}
