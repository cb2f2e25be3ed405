package commands_test

import (
	"testing"

	"mealorder/internal/core/application/usecases/commands"
	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderDetailsCommandHandler_Handle_OwnerEdits(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	target := storedOrder(t, ownerID, order.StatusPending)
	cmd, err := commands.NewUpdateOrderDetailsCommand(
		target.ID(), mustActor(t, ownerID, actor.RoleParent),
		"no onions", "peanut allergy", map[string]string{"lunchbox": "blue"},
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		repo.On("UpdateDetails", mock.Anything, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderDetailsCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, "no onions", updated.Instructions())
	require.Equal(t, "peanut allergy", updated.AllergyNotes())
	require.Equal(t, "blue", updated.Metadata()["lunchbox"])
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateOrderDetailsCommandHandler_Handle_StrangerRejected(t *testing.T) {
	ctx := t.Context()
	target := storedOrder(t, kernel.NewUUID(), order.StatusPending)
	cmd, err := commands.NewUpdateOrderDetailsCommand(
		target.ID(), mustActor(t, kernel.NewUUID(), actor.RoleParent),
		"no onions", "", nil,
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderDetailsCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	require.Empty(t, target.Instructions())
	repo.AssertExpectations(t)
}

func TestUpdateOrderDetailsCommandHandler_Handle_NonPendingRejected(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	target := storedOrder(t, ownerID, order.StatusConfirmed)
	cmd, err := commands.NewUpdateOrderDetailsCommand(
		target.ID(), mustActor(t, ownerID, actor.RoleParent),
		"no onions", "", nil,
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderDetailsCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	require.Empty(t, target.Instructions())
	repo.AssertExpectations(t)
}

func TestUpdateOrderDetailsCommandHandler_Handle_NotConstructed(t *testing.T) {
	h := commands.NewUpdateOrderDetailsCommandHandler(new(MockOrderUoWFactory))
	_, err := h.Handle(t.Context(), commands.UpdateOrderDetailsCommand{})
	require.ErrorIs(t, err, commands.ErrUpdateOrderDetailsCommandIsNotConstructed)
}
