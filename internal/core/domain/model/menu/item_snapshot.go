// Package menu holds the read-only view of menu catalog items this core
// consumes. The catalog itself (search, caching, administration) lives
// elsewhere; order creation only needs a per-item price and availability
// snapshot taken at order time.
package menu

import (
	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/pkg/errs"
)

// ItemSnapshot is the catalog's view of a menu item at a point in time.
// The snapshot is copied into order items on creation; later catalog changes
// never affect existing orders.
type ItemSnapshot struct {
	id        kernel.UUID
	name      string
	unitPrice kernel.Money
	available bool
}

// NewItemSnapshot builds the read model from catalog data.
func NewItemSnapshot(id kernel.UUID, name string, unitPrice kernel.Money, available bool) (ItemSnapshot, error) {
	if err := id.Validate(); err != nil {
		return ItemSnapshot{}, errs.NewValueIsRequiredErrorWithCause("menu item id", err)
	}
	if name == "" {
		return ItemSnapshot{}, errs.NewValueIsRequiredError("menu item name")
	}
	if err := unitPrice.Validate(); err != nil {
		return ItemSnapshot{}, err
	}

	return ItemSnapshot{
		id:        id,
		name:      name,
		unitPrice: unitPrice,
		available: available,
	}, nil
}

// ID returns the menu item's identifier.
func (s ItemSnapshot) ID() kernel.UUID { return s.id }

// Name returns the menu item's display name at snapshot time.
func (s ItemSnapshot) Name() string { return s.name }

// UnitPrice returns the per-unit price at snapshot time.
func (s ItemSnapshot) UnitPrice() kernel.Money { return s.unitPrice }

// IsAvailable reports whether the item could be ordered at snapshot time.
func (s ItemSnapshot) IsAvailable() bool { return s.available }
