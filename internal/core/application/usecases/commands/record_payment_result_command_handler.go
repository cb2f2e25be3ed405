package commands

import (
	"context"

	"mealorder/internal/core/domain/model/order"
)

// RecordPaymentResultCommandHandler applies a verified payment outcome to an
// order. Driven by the payment service's webhook after signature
// verification; this core trusts the caller's verification.
type RecordPaymentResultCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordPaymentResultCommandHandler creates a handler for payment results.
func NewRecordPaymentResultCommandHandler(uowFactory OrderUoWFactory) RecordPaymentResultCommandHandler {
	return RecordPaymentResultCommandHandler{uowFactory: uowFactory}
}

// Handle records the payment outcome and returns the updated order.
func (h *RecordPaymentResultCommandHandler) Handle(
	ctx context.Context,
	cmd RecordPaymentResultCommand,
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

	if err = target.RecordPaymentResult(cmd.Result()); err != nil {
		return nil, err
	}

	if err = repo.UpdatePaymentStatus(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
