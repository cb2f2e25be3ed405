package commands

import (
	"context"
	"fmt"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/core/domain/services"
	"mealorder/internal/core/ports"
	"mealorder/internal/pkg/errs"
)

// CodeMenuItemUnavailable is returned when a referenced menu item exists but
// cannot currently be ordered. The whole order fails; there are no partial
// orders.
const CodeMenuItemUnavailable = "MENU_ITEM_UNAVAILABLE"

// CreateOrderCommandHandler implements the order creation use case:
// validate, authorize, price against the menu catalog, persist atomically.
//
// Steps run strictly in that sequence so that a failing step leaves no side
// effects: validation and authorization failures return before any catalog
// call, and any pricing failure returns before the transaction opens. Prices
// always come from the catalog snapshot, never from the client.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	validator  services.OrderValidator
	authorizer services.Authorizer
	catalog    ports.MenuCatalog
	clock      Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// A nil clock falls back to SystemClock.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	validator services.OrderValidator,
	authorizer services.Authorizer,
	catalog ports.MenuCatalog,
	clock Clock,
) CreateOrderCommandHandler {
	if clock == nil {
		clock = SystemClock
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		validator:  validator,
		authorizer: authorizer,
		catalog:    catalog,
		clock:      clock,
	}
}

// Handle processes the order creation command and returns the stored order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	validated, err := h.validator.Validate(cmd.Request(), h.clock())
	if err != nil {
		return nil, err
	}

	target, err := h.authorizer.AuthorizeForStudent(ctx, cmd.Actor(), validated.StudentID)
	if err != nil {
		return nil, err
	}

	items, err := h.priceItems(ctx, validated.Items)
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		target.ParentID(),
		target.ID(),
		target.SchoolID(),
		validated.DeliveryDate,
		items,
		validated.SpecialInstructions,
		validated.AllergyNotes,
		validated.Metadata,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}

// priceItems snapshots each requested line against the menu catalog. A
// missing or unavailable item fails the whole order.
func (h *CreateOrderCommandHandler) priceItems(
	ctx context.Context,
	requested []services.ValidatedItem,
) ([]order.Item, error) {
	items := make([]order.Item, 0, len(requested))
	for _, req := range requested {
		snapshot, err := h.catalog.GetItem(ctx, req.MenuItemID)
		if err != nil {
			return nil, err
		}

		if !snapshot.IsAvailable() {
			return nil, errs.NewValidationError(
				CodeMenuItemUnavailable,
				fmt.Sprintf("menu item %s (%s) is not available for ordering", snapshot.ID(), snapshot.Name()),
			)
		}

		item, err := order.NewItem(
			snapshot.ID(),
			snapshot.Name(),
			req.Quantity,
			snapshot.UnitPrice(),
			req.Notes,
			req.Customization,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}
