// Package orderrepo persists order aggregates in Postgres via GORM, mapping
// between the domain model and the orders/order_items tables.
package orderrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/pkg/errs"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate. Items are a
// separate table, cascade-deleted with their order. Monetary amounts are
// stored in currency minor units with a single currency per order.
type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID `gorm:"type:uuid;index"`
	StudentID           uuid.UUID `gorm:"type:uuid;index"`
	SchoolID            uuid.UUID `gorm:"type:uuid;index"`
	DeliveryDate        time.Time `gorm:"type:date;index"`
	Status              int       `gorm:"index"`
	PaymentStatus       int
	TotalAmount         int64
	Currency            string
	SpecialInstructions string
	AllergyNotes        string
	Metadata            []byte         `gorm:"type:jsonb"`
	Items               []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is the database representation of one order line with its
// immutable price snapshot.
type OrderItemDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID    uuid.UUID `gorm:"type:uuid"`
	Name          string
	Quantity      int
	UnitPrice     int64
	LineTotal     int64
	Notes         string
	Customization []byte `gorm:"type:jsonb"`
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	var metadata []byte
	if len(aggregate.Metadata()) > 0 {
		raw, err := json.Marshal(aggregate.Metadata())
		if err != nil {
			return OrderDTO{}, errs.NewValueIsInvalidErrorWithCause("metadata", err)
		}
		metadata = raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			ID:            uuid.New(),
			OrderID:       aggregate.ID().Bytes(),
			MenuItemID:    item.MenuItemID().Bytes(),
			Name:          item.Name(),
			Quantity:      item.Quantity(),
			UnitPrice:     item.UnitPrice().Amount(),
			LineTotal:     item.LineTotal().Amount(),
			Notes:         item.Notes(),
			Customization: item.Customization(),
		})
	}

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		UserID:              aggregate.UserID().Bytes(),
		StudentID:           aggregate.StudentID().Bytes(),
		SchoolID:            aggregate.SchoolID().Bytes(),
		DeliveryDate:        aggregate.DeliveryDate().Time(),
		Status:              int(aggregate.Status()),
		PaymentStatus:       int(aggregate.PaymentStatus()),
		TotalAmount:         aggregate.Total().Amount(),
		Currency:            aggregate.Total().Currency(),
		SpecialInstructions: aggregate.Instructions(),
		AllergyNotes:        aggregate.AllergyNotes(),
		Metadata:            metadata,
		Items:               items,
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO back into an order aggregate, re-checking
// the pricing invariants on the way in.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	studentID, err := kernel.UUIDFromBytes(dto.StudentID[:])
	if err != nil {
		return nil, err
	}
	schoolID, err := kernel.UUIDFromBytes(dto.SchoolID[:])
	if err != nil {
		return nil, err
	}

	deliveryDate, err := kernel.NewDeliveryDate(dto.DeliveryDate)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalAmount, dto.Currency)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO, dto.Currency)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var metadata map[string]string
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"metadata",
				fmt.Errorf("stored metadata for order %s is not valid JSON: %w", id, err),
			)
		}
	}

	return order.RestoreOrder(
		id, userID, studentID, schoolID, deliveryDate,
		order.Status(dto.Status), order.PaymentStatus(dto.PaymentStatus),
		total, items,
		dto.SpecialInstructions, dto.AllergyNotes, metadata,
		dto.CreatedAt, dto.UpdatedAt,
	)
}

func itemToDomain(dto OrderItemDTO, currency string) (order.Item, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.Item{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice, currency)
	if err != nil {
		return order.Item{}, err
	}

	lineTotal, err := kernel.NewMoney(dto.LineTotal, currency)
	if err != nil {
		return order.Item{}, err
	}

	return order.RestoreItem(
		menuItemID, dto.Name, dto.Quantity,
		unitPrice, lineTotal,
		dto.Notes, dto.Customization,
	)
}
