package commands

import (
	"errors"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/pkg/guard"
)

var ErrRecordPaymentResultCommandIsNotConstructed = errors.New(
	"RecordPaymentResultCommand must be created via NewRecordPaymentResultCommand constructor",
)

// RecordPaymentResultCommand carries a verified payment gateway callback.
// It updates the order's payment status only; the order status state machine
// is never driven from here.
type RecordPaymentResultCommand struct {
	orderID kernel.UUID
	result  order.PaymentStatus

	guard guard.ConstructorGuard
}

// NewRecordPaymentResultCommand creates a command to record a payment result.
func NewRecordPaymentResultCommand(
	orderID kernel.UUID,
	result order.PaymentStatus,
) (RecordPaymentResultCommand, error) {
	if err := errors.Join(orderID.Validate(), result.Validate()); err != nil {
		return RecordPaymentResultCommand{}, err
	}

	return RecordPaymentResultCommand{
		orderID: orderID,
		result:  result,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentResultCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentResultCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c RecordPaymentResultCommand) OrderID() kernel.UUID { return c.orderID }

// Result returns the verified payment outcome.
func (c RecordPaymentResultCommand) Result() order.PaymentStatus { return c.result }
