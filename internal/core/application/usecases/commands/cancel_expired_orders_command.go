package commands

import (
	"errors"

	"mealorder/internal/pkg/guard"
)

var ErrCancelExpiredOrdersCommandIsNotConstructed = errors.New(
	"CancelExpiredOrdersCommand must be created via NewCancelExpiredOrdersCommand constructor",
)

// CancelExpiredOrdersCommand sweeps pending orders whose delivery date has
// passed and cancels them. Issued by the background sweep job.
type CancelExpiredOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewCancelExpiredOrdersCommand creates a command to cancel stale pending orders.
func NewCancelExpiredOrdersCommand() (CancelExpiredOrdersCommand, error) {
	return CancelExpiredOrdersCommand{guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelExpiredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelExpiredOrdersCommandIsNotConstructed)
}
