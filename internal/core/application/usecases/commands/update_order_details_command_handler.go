package commands

import (
	"context"

	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/core/domain/services"
	"mealorder/internal/pkg/errs"
)

// UpdateOrderDetailsCommandHandler edits an order's bounded set of editable
// fields. Only the order's owner or an elevated role may edit, and only while
// the order is pending; the persisted update is conditioned on the row still
// being pending, so a concurrent confirmation surfaces as a conflict rather
// than a silent overwrite.
type UpdateOrderDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderDetailsCommandHandler creates a handler for order edits.
func NewUpdateOrderDetailsCommandHandler(uowFactory OrderUoWFactory) UpdateOrderDetailsCommandHandler {
	return UpdateOrderDetailsCommandHandler{uowFactory: uowFactory}
}

// Handle processes the edit and returns the updated order.
func (h *UpdateOrderDetailsCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderDetailsCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

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

	if !target.IsOwnedBy(cmd.Actor().ID()) && !cmd.Actor().Role().IsElevated() {
		return nil, errs.NewAuthorizationError(
			services.CodeNotAuthorized,
			"only the order's owner or school staff may edit an order",
		)
	}

	if err = target.UpdateDetails(cmd.Instructions(), cmd.AllergyNotes(), cmd.Metadata()); err != nil {
		return nil, err
	}

	if err = repo.UpdateDetails(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
