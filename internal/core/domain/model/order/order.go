package order

import (
	"errors"
	"fmt"
	"time"

	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly
// validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a meal purchase. It owns its items and
// maintains these invariants:
//   - Total equals the sum of its items' line totals at creation time and is
//     never recomputed (snapshot semantics).
//   - Status only takes values reachable via the transition table from
//     pending and never regresses from a terminal state.
//   - Items never change after creation.
//   - Payment status moves independently of order status.
type Order struct {
	id            kernel.UUID
	userID        kernel.UUID
	studentID     kernel.UUID
	schoolID      kernel.UUID
	deliveryDate  kernel.DeliveryDate
	status        Status
	paymentStatus PaymentStatus
	total         kernel.Money
	instructions  string
	allergyNotes  string
	metadata      map[string]string
	items         []Item
	createdAt     time.Time
	updatedAt     time.Time

	isConstructed bool
}

// NewOrder creates a new pending Order from priced items, computing the total
// from the items' line totals. All items must carry the same currency. The
// items slice must hold between 1 and MaxOrderItems lines; per-line rules are
// enforced by NewItem.
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	studentID kernel.UUID,
	schoolID kernel.UUID,
	deliveryDate kernel.DeliveryDate,
	items []Item,
	instructions string,
	allergyNotes string,
	metadata map[string]string,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		paymentStatus: PaymentPending,
		instructions:  instructions,
		allergyNotes:  allergyNotes,
		metadata:      metadata,
		createdAt:     time.Now().UTC(),
		updatedAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setStudentID(studentID),
		o.setSchoolID(schoolID),
		o.setDeliveryDate(deliveryDate),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running
// creation-time policy, but still verifying structural invariants (the total
// must equal the sum of line totals).
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	studentID kernel.UUID,
	schoolID kernel.UUID,
	deliveryDate kernel.DeliveryDate,
	status Status,
	paymentStatus PaymentStatus,
	total kernel.Money,
	items []Item,
	instructions string,
	allergyNotes string,
	metadata map[string]string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, userID, studentID, schoolID, deliveryDate, items, instructions, allergyNotes, metadata)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(status.Validate(), paymentStatus.Validate()); err != nil {
		return nil, err
	}

	if !o.total.IsEqual(total) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"totalAmount",
			fmt.Errorf("stored total %s does not equal sum of line totals %s", total, o.total),
		)
	}

	o.status = status
	o.paymentStatus = paymentStatus
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order was constructed through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// UserID returns the owning user's identifier (the parent who placed the order).
func (o *Order) UserID() kernel.UUID { return o.userID }

// StudentID returns the student the order is attributed to.
func (o *Order) StudentID() kernel.UUID { return o.studentID }

// SchoolID returns the school the order will be delivered at.
func (o *Order) SchoolID() kernel.UUID { return o.schoolID }

// DeliveryDate returns the calendar day the order is to be delivered.
func (o *Order) DeliveryDate() kernel.DeliveryDate { return o.deliveryDate }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// Total returns the order total, a snapshot of the sum of line totals at
// creation time.
func (o *Order) Total() kernel.Money { return o.total }

// Instructions returns the special delivery instructions.
func (o *Order) Instructions() string { return o.instructions }

// AllergyNotes returns the allergy notes.
func (o *Order) AllergyNotes() string { return o.allergyNotes }

// Metadata returns a copy of the free-form metadata.
func (o *Order) Metadata() map[string]string {
	if o.metadata == nil {
		return nil
	}
	m := make(map[string]string, len(o.metadata))
	for k, v := range o.metadata {
		m[k] = v
	}
	return m
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// IsOwnedBy reports whether userID is the order's owning actor.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.userID.IsEqual(userID)
}

// TransitionTo advances the order status, enforcing the transition table and
// role gating. isOwner tells the state machine whether the acting identity
// owns this order (relevant only for owner cancellation while pending).
//
// The caller persists the new status with a conditional update against the
// status this transition was evaluated from.
func (o *Order) TransitionTo(next Status, role actor.Role, isOwner bool) error {
	if err := o.status.AuthorizeTransition(next, role, isOwner); err != nil {
		return err
	}

	o.status = next
	o.updatedAt = time.Now().UTC()
	return nil
}

// RecordPaymentResult updates the payment status from a verified gateway
// callback. It never touches the order status.
func (o *Order) RecordPaymentResult(result PaymentStatus) error {
	if err := result.Validate(); err != nil {
		return err
	}

	o.paymentStatus = result
	o.updatedAt = time.Now().UTC()
	return nil
}

// UpdateDetails replaces the editable fields. Orders are editable only while
// pending; afterwards the attempt fails with a conflict and nothing changes.
func (o *Order) UpdateDetails(instructions, allergyNotes string, metadata map[string]string) error {
	if o.status != StatusPending {
		return errs.NewConflictError(
			fmt.Sprintf("order in status %s is no longer editable", o.status),
		)
	}

	o.instructions = instructions
	o.allergyNotes = allergyNotes
	o.metadata = metadata
	o.updatedAt = time.Now().UTC()
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setStudentID(studentID kernel.UUID) error {
	if err := studentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("studentId", err)
	}
	o.studentID = studentID
	return nil
}

func (o *Order) setSchoolID(schoolID kernel.UUID) error {
	if err := schoolID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("schoolId", err)
	}
	o.schoolID = schoolID
	return nil
}

func (o *Order) setDeliveryDate(deliveryDate kernel.DeliveryDate) error {
	if err := deliveryDate.Validate(); err != nil {
		return err
	}
	o.deliveryDate = deliveryDate
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("orderItems")
	}
	if len(items) > MaxOrderItems {
		return errs.NewValueIsOutOfRangeError("orderItems", len(items), 1, MaxOrderItems)
	}

	total, err := kernel.NewMoney(0, items[0].UnitPrice().Currency())
	if err != nil {
		return err
	}
	for _, item := range items {
		total, err = total.Add(item.LineTotal())
		if err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.total = total
	return nil
}
