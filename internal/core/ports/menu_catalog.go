package ports

import (
	"context"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/menu"
)

// MenuCatalog supplies per-item price and availability snapshots at order
// time. The snapshot is copied into the order; the catalog itself is owned
// elsewhere.
type MenuCatalog interface {
	// GetItem retrieves a menu item snapshot. A missing item surfaces as an
	// ObjectNotFoundError with code MENU_ITEM_NOT_FOUND; an unreachable
	// catalog as a DependencyError.
	GetItem(ctx context.Context, id kernel.UUID) (menu.ItemSnapshot, error)
}
