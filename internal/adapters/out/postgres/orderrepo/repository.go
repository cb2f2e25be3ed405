package orderrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/core/ports"
	"mealorder/internal/pkg/errs"

	"gorm.io/gorm"
)

// CodeOrderNotFound is the machine-readable code for missing orders.
const CodeOrderNotFound = "ORDER_NOT_FOUND"

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// Concurrent status and detail updates rely on conditional writes: the UPDATE
// carries the caller's expected status in its WHERE clause and a zero
// rows-affected count is resolved into either not-found or conflict by
// re-reading the row. The database row, not in-memory state, is the
// authority.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository bound to the given connection
// or transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add persists a new order together with its items. GORM inserts the item
// rows through the association, so within a transaction the order and its
// items become visible together or not at all.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(
				fmt.Sprintf("order %s already exists", aggregate.ID()), err,
			)
		}
		return errs.NewStorageError("insert order", err)
	}

	return nil
}

// Get retrieves an order with its items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(CodeOrderNotFound, "orderId", id.String())
		}
		return nil, errs.NewStorageError("select order", err)
	}

	return toDomain(dto)
}

// GetAllForUser retrieves a page of a user's orders, newest first. The id
// tie-breaker keeps the sequence restartable when orders share a creation
// timestamp.
func (r *GormOrderRepository) GetAllForUser(
	ctx context.Context,
	userID kernel.UUID,
	page ports.Page,
) ([]*order.Order, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID.Bytes()).
		Order("created_at DESC, id DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewStorageError("select orders for user", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// UpdateStatus conditionally moves the row from expectedCurrent to the
// aggregate's status.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	aggregate *order.Order,
	expectedCurrent order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), int(expectedCurrent)).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return errs.NewStorageError("update order status", result.Error)
	}

	if result.RowsAffected == 0 {
		return r.resolveMissedUpdate(ctx, aggregate.ID(),
			fmt.Sprintf("order %s is no longer %s", aggregate.ID(), expectedCurrent))
	}

	return nil
}

// UpdatePaymentStatus persists the aggregate's payment status. The order
// status column is never part of this write.
func (r *GormOrderRepository) UpdatePaymentStatus(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("payment_status", int(aggregate.PaymentStatus()))
	if result.Error != nil {
		return errs.NewStorageError("update order payment status", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(CodeOrderNotFound, "orderId", aggregate.ID().String())
	}

	return nil
}

// UpdateDetails persists the editable fields, conditioned on the row still
// being pending.
func (r *GormOrderRepository) UpdateDetails(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var metadata []byte
	if len(aggregate.Metadata()) > 0 {
		raw, err := json.Marshal(aggregate.Metadata())
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("metadata", err)
		}
		metadata = raw
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), int(order.StatusPending)).
		Updates(map[string]any{
			"special_instructions": aggregate.Instructions(),
			"allergy_notes":        aggregate.AllergyNotes(),
			"metadata":             metadata,
		})
	if result.Error != nil {
		return errs.NewStorageError("update order details", result.Error)
	}

	if result.RowsAffected == 0 {
		return r.resolveMissedUpdate(ctx, aggregate.ID(),
			fmt.Sprintf("order %s is no longer pending", aggregate.ID()))
	}

	return nil
}

// GetPendingWithDeliveryBefore retrieves pending orders whose delivery date is
// strictly before the cutoff day.
func (r *GormOrderRepository) GetPendingWithDeliveryBefore(
	ctx context.Context,
	cutoff kernel.DeliveryDate,
) ([]*order.Order, error) {
	if err := cutoff.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ? AND delivery_date < ?", int(order.StatusPending), cutoff.Time()).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewStorageError("select stale pending orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// resolveMissedUpdate decides whether a zero rows-affected conditional update
// means the order is gone or that its status changed under us.
func (r *GormOrderRepository) resolveMissedUpdate(
	ctx context.Context,
	id kernel.UUID,
	conflictMessage string,
) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error
	if err != nil {
		return errs.NewStorageError("recheck order", err)
	}

	if count == 0 {
		return errs.NewObjectNotFoundError(CodeOrderNotFound, "orderId", id.String())
	}

	return errs.NewConflictError(conflictMessage)
}
