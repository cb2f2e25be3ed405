package commands_test

import (
	"testing"

	"mealorder/internal/core/application/usecases/commands"
	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordPaymentResultCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewRecordPaymentResultCommand(id, order.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, order.PaymentPaid, cmd.Result())
}

func TestNewRecordPaymentResultCommand_UnknownResult(t *testing.T) {
	_, err := commands.NewRecordPaymentResultCommand(kernel.NewUUID(), order.PaymentUnknown)
	require.Error(t, err)
}

func TestNewRecordPaymentResultCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewRecordPaymentResultCommand(kernel.UUID{}, order.PaymentPaid)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
