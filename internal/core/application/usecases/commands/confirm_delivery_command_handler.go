package commands

import (
	"context"
	"errors"

	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/pkg/errs"
)

// ConfirmDeliveryCommandHandler transitions an order from ready to delivered
// on behalf of the delivery confirmation pipeline. The transition runs as the
// system role and is conditioned on the order still being ready, so a double
// scan of the same meal surfaces as a conflict instead of a second delivery.
type ConfirmDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmations.
func NewConfirmDeliveryCommandHandler(uowFactory OrderUoWFactory) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle marks the order delivered and returns the updated order.
func (h *ConfirmDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmDeliveryCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	updated, err := h.attempt(ctx, cmd)
	if err != nil && errors.Is(err, errs.ErrConflict) {
		updated, err = h.attempt(ctx, cmd)
	}

	return updated, err
}

func (h *ConfirmDeliveryCommandHandler) attempt(
	ctx context.Context,
	cmd ConfirmDeliveryCommand,
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
	if err = target.TransitionTo(order.StatusDelivered, actor.RoleSystem, false); err != nil {
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
