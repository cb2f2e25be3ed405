package commands

import (
	"context"
	"errors"

	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler advances an order through the status state
// machine with optimistic concurrency.
//
// The persisted update is conditioned on the status the state machine
// evaluated; losing that race to a concurrent transition yields a
// ConflictError. The benign case of two staff members acting at once is
// absorbed by one re-read and re-evaluation before the conflict surfaces.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle processes the transition and returns the updated order.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	updated, err := h.attempt(ctx, cmd)
	if err != nil && errors.Is(err, errs.ErrConflict) {
		// One retry covers the benign race of two concurrent transitions;
		// the state machine re-evaluates against the fresh status.
		updated, err = h.attempt(ctx, cmd)
	}

	return updated, err
}

func (h *UpdateOrderStatusCommandHandler) attempt(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	target, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	expected := target.Status()
	isOwner := target.IsOwnedBy(cmd.Actor().ID())
	if err = target.TransitionTo(cmd.NewStatus(), cmd.Actor().Role(), isOwner); err != nil {
		return nil, err
	}

	if err = repo.UpdateStatus(ctx, target, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
