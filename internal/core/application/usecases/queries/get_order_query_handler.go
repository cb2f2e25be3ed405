package queries

import (
	"context"
	"encoding/json"
	"time"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CodeOrderNotFound is the machine-readable code reported when an order does
// not exist or is outside the asking actor's visibility scope.
const CodeOrderNotFound = "ORDER_NOT_FOUND"

// GetOrderQueryHandler serves the single-order read model directly from the
// database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle retrieves the order and its items. A missing order and an order the
// actor may not see are indistinguishable: both return an ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			student_id,
			school_id,
			delivery_date,
			status,
			payment_status,
			total_amount,
			currency,
			special_instructions,
			allergy_notes,
			metadata,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError(
			CodeOrderNotFound, "orderId", query.OrderID().String(),
		)
	}

	var (
		resp                            GetOrderQueryResponse
		id, userID, studentID, schoolID uuid.UUID
		deliveryDate                    time.Time
		status, paymentStatus           int
		metadata                        []byte
	)

	err = rows.Scan(
		&id,
		&userID,
		&studentID,
		&schoolID,
		&deliveryDate,
		&status,
		&paymentStatus,
		&resp.TotalAmount,
		&resp.Currency,
		&resp.SpecialInstructions,
		&resp.AllergyNotes,
		&metadata,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	// Scope check before anything derived from the row is returned. Out of
	// scope reads exactly like a missing order.
	ownerID, err := kernel.UUIDFromBytes(userID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if !query.Actor().Role().IsElevated() && !query.Actor().ID().IsEqual(ownerID) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError(
			CodeOrderNotFound, "orderId", query.OrderID().String(),
		)
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.UserID = ownerID
	if resp.StudentID, err = kernel.UUIDFromBytes(studentID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.SchoolID, err = kernel.UUIDFromBytes(schoolID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.DeliveryDate, err = kernel.NewDeliveryDate(deliveryDate); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Status = order.Status(status).String()
	resp.PaymentStatus = order.PaymentStatus(paymentStatus).String()

	if len(metadata) > 0 {
		if err = json.Unmarshal(metadata, &resp.Metadata); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	resp.Items, err = h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]GetOrderQueryItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			menu_item_id,
			name,
			quantity,
			unit_price,
			line_total,
			notes,
			customization
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetOrderQueryItemResponse, 0)
	for rows.Next() {
		var item GetOrderQueryItemResponse
		var menuItemID uuid.UUID
		var customization []byte

		err = rows.Scan(
			&menuItemID,
			&item.Name,
			&item.Quantity,
			&item.UnitPrice,
			&item.LineTotal,
			&item.Notes,
			&customization,
		)
		if err != nil {
			return nil, err
		}

		item.MenuItemID, err = kernel.UUIDFromBytes(menuItemID[:])
		if err != nil {
			return nil, err
		}
		item.Customization = customization
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
