// Package ports defines the contracts between the application core and its
// adapters: the transactional order store and the read-only external
// collaborators (student directory, staff access grants, menu catalog).
package ports

import (
	"context"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"
)

// Page describes a pagination window for list reads.
type Page struct {
	Number int
	Size   int
}

// Offset returns the row offset of the window's first row.
func (p Page) Offset() int {
	number := p.Number
	if number < 1 {
		number = 1
	}
	return (number - 1) * p.Size
}

// OrderRepository defines the persistence contract for order aggregates.
//
// Status and detail updates use optimistic concurrency: the write is
// conditioned on the row's current status still matching what the caller
// read, and a lost race surfaces as a ConflictError rather than a silent
// overwrite. Transient storage failures surface as StorageError so the
// orchestrator can decide whether to retry; uniqueness violations surface as
// ConflictError.
type OrderRepository interface {
	// Add persists a new order together with all of its items in the ambient
	// transaction. On any failure no rows become visible.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllForUser retrieves a page of a user's orders with their items,
	// ordered by creation time descending. The sequence is restartable: the
	// same page yields the same rows absent intervening writes.
	GetAllForUser(ctx context.Context, userID kernel.UUID, page Page) ([]*order.Order, error)

	// UpdateStatus conditionally moves an order from expectedCurrent to the
	// aggregate's current status. If the row's status no longer equals
	// expectedCurrent the update fails with a ConflictError and the stored
	// status is left intact.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expectedCurrent order.Status) error

	// UpdatePaymentStatus persists the aggregate's payment status. It never
	// touches the order status column.
	UpdatePaymentStatus(ctx context.Context, aggregate *order.Order) error

	// UpdateDetails persists the editable fields (special instructions,
	// allergy notes, metadata), conditioned on the row still being pending.
	// A non-pending row fails with a ConflictError.
	UpdateDetails(ctx context.Context, aggregate *order.Order) error

	// GetPendingWithDeliveryBefore retrieves pending orders whose delivery
	// date is before the cutoff. Used by the expiry sweep.
	GetPendingWithDeliveryBefore(ctx context.Context, cutoff kernel.DeliveryDate) ([]*order.Order, error)
}
