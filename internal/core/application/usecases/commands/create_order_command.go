package commands

import (
	"errors"

	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/core/domain/services"
	"mealorder/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand carries a raw order creation request together with the
// acting identity. The request body is deliberately kept unvalidated here:
// the handler runs the full rule set so that validation failures carry the
// boundary's machine-readable codes.
type CreateOrderCommand struct {
	act     actor.Actor
	request services.OrderRequest

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new meal order.
// The actor must be a valid authenticated identity.
func NewCreateOrderCommand(act actor.Actor, request services.OrderRequest) (CreateOrderCommand, error) {
	if err := act.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		act:     act,
		request: request,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c CreateOrderCommand) Actor() actor.Actor {
	return c.act
}

// Request returns the raw order creation request.
func (c CreateOrderCommand) Request() services.OrderRequest {
	return c.request
}
