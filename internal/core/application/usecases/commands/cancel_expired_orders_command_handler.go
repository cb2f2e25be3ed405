package commands

import (
	"context"
	"errors"

	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/pkg/errs"
)

// CancelExpiredOrdersCommandHandler cancels pending orders whose delivery
// date is already behind us. A pending order for a past date can never be
// confirmed or served, so the sweep closes it out as a system-initiated
// cancellation.
//
// Each order is cancelled in its own transaction: a conflict on one order
// (someone confirmed or cancelled it mid-sweep) skips that order and the
// sweep moves on.
type CancelExpiredOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

// NewCancelExpiredOrdersCommandHandler creates a handler for the expiry sweep.
func NewCancelExpiredOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	clock Clock,
) CancelExpiredOrdersCommandHandler {
	return CancelExpiredOrdersCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle cancels all stale pending orders and returns how many were cancelled.
func (h *CancelExpiredOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd CancelExpiredOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff, err := kernel.NewDeliveryDate(h.clock())
	if err != nil {
		return 0, err
	}

	stale, err := h.findStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, target := range stale {
		if err = h.cancel(ctx, target); err != nil {
			if errors.Is(err, errs.ErrConflict) || errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			return cancelled, err
		}
		cancelled++
	}

	return cancelled, nil
}

func (h *CancelExpiredOrdersCommandHandler) findStale(
	ctx context.Context,
	cutoff kernel.DeliveryDate,
) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.OrderRepository().GetPendingWithDeliveryBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stale, nil
}

func (h *CancelExpiredOrdersCommandHandler) cancel(ctx context.Context, target *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expected := target.Status()
	if err := target.TransitionTo(order.StatusCancelled, actor.RoleSystem, false); err != nil {
		return err
	}

	if err := uow.OrderRepository().UpdateStatus(ctx, target, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
