package order

import (
	"encoding/json"
	"fmt"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/pkg/errs"
)

const (
	// MinItemQuantity is the smallest quantity one order line may carry.
	MinItemQuantity = 1

	// MaxItemQuantity is the largest quantity one order line may carry.
	MaxItemQuantity = 10

	// MaxOrderItems is the largest number of lines one order may carry.
	MaxOrderItems = 20
)

// Item is one line of an order: a menu item reference, a quantity, and an
// immutable price snapshot taken from the menu catalog at order time.
//
// Invariant: lineTotal = quantity × unitPrice. Items never change after the
// order is created; they are cascade-deleted with their order.
type Item struct {
	menuItemID    kernel.UUID
	name          string
	quantity      int
	unitPrice     kernel.Money
	lineTotal     kernel.Money
	notes         string
	customization json.RawMessage
}

// NewItem creates an order line from a menu catalog snapshot, computing the
// line total. Quantity must be an integer in [MinItemQuantity, MaxItemQuantity].
// The customization payload is opaque structured data passed through to the
// kitchen; it is stored as provided, never interpreted.
func NewItem(
	menuItemID kernel.UUID,
	name string,
	quantity int,
	unitPrice kernel.Money,
	notes string,
	customization json.RawMessage,
) (Item, error) {
	if err := menuItemID.Validate(); err != nil {
		return Item{}, errs.NewValueIsRequiredErrorWithCause("menuItemId", err)
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity < MinItemQuantity || quantity > MaxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, MinItemQuantity, MaxItemQuantity)
	}
	if err := unitPrice.Validate(); err != nil {
		return Item{}, err
	}

	lineTotal, err := unitPrice.MultiplyBy(quantity)
	if err != nil {
		return Item{}, err
	}

	return Item{
		menuItemID:    menuItemID,
		name:          name,
		quantity:      quantity,
		unitPrice:     unitPrice,
		lineTotal:     lineTotal,
		notes:         notes,
		customization: customization,
	}, nil
}

// RestoreItem reconstructs an order line from persistence, verifying the
// quantity × unit price = line total invariant survived storage.
func RestoreItem(
	menuItemID kernel.UUID,
	name string,
	quantity int,
	unitPrice kernel.Money,
	lineTotal kernel.Money,
	notes string,
	customization json.RawMessage,
) (Item, error) {
	item, err := NewItem(menuItemID, name, quantity, unitPrice, notes, customization)
	if err != nil {
		return Item{}, err
	}

	if !item.lineTotal.IsEqual(lineTotal) {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"lineTotal",
			fmt.Errorf("stored %s does not equal %d x %s", lineTotal, quantity, unitPrice),
		)
	}

	return item, nil
}

// MenuItemID returns the referenced menu item's identifier.
func (i Item) MenuItemID() kernel.UUID { return i.menuItemID }

// Name returns the menu item name snapshot.
func (i Item) Name() string { return i.name }

// Quantity returns the ordered quantity.
func (i Item) Quantity() int { return i.quantity }

// UnitPrice returns the per-unit price snapshot.
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }

// LineTotal returns quantity × unit price.
func (i Item) LineTotal() kernel.Money { return i.lineTotal }

// Notes returns the free-form line notes.
func (i Item) Notes() string { return i.notes }

// Customization returns the opaque customization payload, or nil.
func (i Item) Customization() json.RawMessage { return i.customization }
