package queries

import (
	"context"
	"time"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler serves the order-history read model directly from
// the database.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order-history reads.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle retrieves one page of the user's orders, newest first. The id
// tie-break keeps the sequence restartable when orders share a creation
// timestamp. A page past the end of the history is an empty slice, not an
// error.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			student_id,
			delivery_date,
			status,
			payment_status,
			total_amount,
			currency,
			created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, query.UserID().Bytes(), query.Size(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var resp ListOrdersQueryResponse
		var id, studentID uuid.UUID
		var deliveryDate time.Time
		var status, paymentStatus int

		err = rows.Scan(
			&id,
			&studentID,
			&deliveryDate,
			&status,
			&paymentStatus,
			&resp.TotalAmount,
			&resp.Currency,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.StudentID, err = kernel.UUIDFromBytes(studentID[:]); err != nil {
			return nil, err
		}
		if resp.DeliveryDate, err = kernel.NewDeliveryDate(deliveryDate); err != nil {
			return nil, err
		}
		resp.Status = order.Status(status).String()
		resp.PaymentStatus = order.PaymentStatus(paymentStatus).String()

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
