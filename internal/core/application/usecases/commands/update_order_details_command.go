package commands

import (
	"errors"

	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/pkg/guard"
)

var ErrUpdateOrderDetailsCommandIsNotConstructed = errors.New(
	"UpdateOrderDetailsCommand must be created via NewUpdateOrderDetailsCommand constructor",
)

// UpdateOrderDetailsCommand replaces an order's editable fields: special
// instructions, allergy notes and free-form metadata. Orders are editable
// only while pending.
type UpdateOrderDetailsCommand struct {
	orderID      kernel.UUID
	act          actor.Actor
	instructions string
	allergyNotes string
	metadata     map[string]string

	guard guard.ConstructorGuard
}

// NewUpdateOrderDetailsCommand creates a command to edit an order's details.
func NewUpdateOrderDetailsCommand(
	orderID kernel.UUID,
	act actor.Actor,
	instructions string,
	allergyNotes string,
	metadata map[string]string,
) (UpdateOrderDetailsCommand, error) {
	if err := errors.Join(orderID.Validate(), act.Validate()); err != nil {
		return UpdateOrderDetailsCommand{}, err
	}

	return UpdateOrderDetailsCommand{
		orderID:      orderID,
		act:          act,
		instructions: instructions,
		allergyNotes: allergyNotes,
		metadata:     metadata,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailsCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c UpdateOrderDetailsCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the acting identity.
func (c UpdateOrderDetailsCommand) Actor() actor.Actor { return c.act }

// Instructions returns the replacement special instructions.
func (c UpdateOrderDetailsCommand) Instructions() string { return c.instructions }

// AllergyNotes returns the replacement allergy notes.
func (c UpdateOrderDetailsCommand) AllergyNotes() string { return c.allergyNotes }

// Metadata returns the replacement metadata.
func (c UpdateOrderDetailsCommand) Metadata() map[string]string { return c.metadata }
