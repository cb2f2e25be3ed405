// Package queries implements the read side of the order core: raw SQL read
// models served straight from the database, bypassing the aggregate and the
// unit of work. Queries never mutate state and never load domain entities;
// they scan rows into response structs shaped for the API.
package queries

import (
	"encoding/json"
	"errors"
	"time"

	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its items, scoped to what the asking
// actor may see. Owners see their own orders; elevated roles see any order.
// An order outside the actor's scope reads as not found, so callers cannot
// probe for the existence of other users' orders.
type GetOrderQuery struct {
	asking  actor.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve a single order.
func NewGetOrderQuery(asking actor.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(asking.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		asking:  asking,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Actor returns the identity asking for the order.
func (q GetOrderQuery) Actor() actor.Actor { return q.asking }

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderQueryResponse is the full order read model: header fields plus all
// order lines. Status and payment status are reported by name, amounts in the
// currency's minor unit.
type GetOrderQueryResponse struct {
	ID                  kernel.UUID
	UserID              kernel.UUID
	StudentID           kernel.UUID
	SchoolID            kernel.UUID
	DeliveryDate        kernel.DeliveryDate
	Status              string
	PaymentStatus       string
	TotalAmount         int64
	Currency            string
	SpecialInstructions string
	AllergyNotes        string
	Metadata            map[string]string
	Items               []GetOrderQueryItemResponse
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// GetOrderQueryItemResponse is one order line in the read model.
type GetOrderQueryItemResponse struct {
	MenuItemID    kernel.UUID
	Name          string
	Quantity      int
	UnitPrice     int64
	LineTotal     int64
	Notes         string
	Customization json.RawMessage
}
