package http

import (
	"encoding/json"
	"time"

	"mealorder/internal/core/application/usecases/queries"
	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/core/domain/services"
)

// CreateOrderRequest is the POST /orders body. Fields pass through to the
// validator untrusted; prices are never accepted from the client.
type CreateOrderRequest struct {
	StudentID           string             `json:"studentId"`
	DeliveryDate        string             `json:"deliveryDate"`
	Items               []OrderItemRequest `json:"orderItems"`
	SpecialInstructions string             `json:"specialInstructions,omitempty"`
	AllergyNotes        string             `json:"allergyNotes,omitempty"`
	Metadata            map[string]string  `json:"metadata,omitempty"`
}

// OrderItemRequest is one requested order line.
type OrderItemRequest struct {
	MenuItemID    string          `json:"menuItemId"`
	Quantity      int             `json:"quantity"`
	Notes         string          `json:"notes,omitempty"`
	Customization json.RawMessage `json:"customization,omitempty"`
}

func (r CreateOrderRequest) toOrderRequest() services.OrderRequest {
	var items []services.OrderItemRequest
	if r.Items != nil {
		items = make([]services.OrderItemRequest, len(r.Items))
		for i, item := range r.Items {
			items[i] = services.OrderItemRequest{
				MenuItemID:    item.MenuItemID,
				Quantity:      item.Quantity,
				Notes:         item.Notes,
				Customization: item.Customization,
			}
		}
	}

	return services.OrderRequest{
		StudentID:           r.StudentID,
		DeliveryDate:        r.DeliveryDate,
		Items:               items,
		SpecialInstructions: r.SpecialInstructions,
		AllergyNotes:        r.AllergyNotes,
		Metadata:            r.Metadata,
	}
}

// UpdateStatusRequest is the PUT /orders/:id/status body.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateDetailsRequest is the PATCH /orders/:id body. All editable fields are
// replaced together.
type UpdateDetailsRequest struct {
	SpecialInstructions string            `json:"specialInstructions"`
	AllergyNotes        string            `json:"allergyNotes"`
	Metadata            map[string]string `json:"metadata"`
}

// PaymentWebhookRequest is the verified payment gateway callback body.
type PaymentWebhookRequest struct {
	OrderID string `json:"orderId"`
	Result  string `json:"result"`
}

// DeliveryWebhookRequest is the RFID delivery confirmation callback body.
type DeliveryWebhookRequest struct {
	OrderID string `json:"orderId"`
}

// OrderResponse is the full order representation returned by the write
// endpoints and GET /orders/:id.
type OrderResponse struct {
	ID                  string              `json:"id"`
	UserID              string              `json:"userId"`
	StudentID           string              `json:"studentId"`
	SchoolID            string              `json:"schoolId"`
	DeliveryDate        string              `json:"deliveryDate"`
	Status              string              `json:"status"`
	PaymentStatus       string              `json:"paymentStatus"`
	TotalAmount         int64               `json:"totalAmount"`
	Currency            string              `json:"currency"`
	SpecialInstructions string              `json:"specialInstructions,omitempty"`
	AllergyNotes        string              `json:"allergyNotes,omitempty"`
	Metadata            map[string]string   `json:"metadata,omitempty"`
	Items               []OrderItemResponse `json:"orderItems"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// OrderItemResponse is one order line in a response.
type OrderItemResponse struct {
	MenuItemID    string          `json:"menuItemId"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     int64           `json:"unitPrice"`
	LineTotal     int64           `json:"lineTotal"`
	Notes         string          `json:"notes,omitempty"`
	Customization json.RawMessage `json:"customization,omitempty"`
}

func orderResponseFromAggregate(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = OrderItemResponse{
			MenuItemID:    item.MenuItemID().String(),
			Name:          item.Name(),
			Quantity:      item.Quantity(),
			UnitPrice:     item.UnitPrice().Amount(),
			LineTotal:     item.LineTotal().Amount(),
			Notes:         item.Notes(),
			Customization: item.Customization(),
		}
	}

	return OrderResponse{
		ID:                  o.ID().String(),
		UserID:              o.UserID().String(),
		StudentID:           o.StudentID().String(),
		SchoolID:            o.SchoolID().String(),
		DeliveryDate:        o.DeliveryDate().String(),
		Status:              o.Status().String(),
		PaymentStatus:       o.PaymentStatus().String(),
		TotalAmount:         o.Total().Amount(),
		Currency:            o.Total().Currency(),
		SpecialInstructions: o.Instructions(),
		AllergyNotes:        o.AllergyNotes(),
		Metadata:            o.Metadata(),
		Items:               items,
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
	}
}

func orderResponseFromReadModel(r queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = OrderItemResponse{
			MenuItemID:    item.MenuItemID.String(),
			Name:          item.Name,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			LineTotal:     item.LineTotal,
			Notes:         item.Notes,
			Customization: item.Customization,
		}
	}

	return OrderResponse{
		ID:                  r.ID.String(),
		UserID:              r.UserID.String(),
		StudentID:           r.StudentID.String(),
		SchoolID:            r.SchoolID.String(),
		DeliveryDate:        r.DeliveryDate.String(),
		Status:              r.Status,
		PaymentStatus:       r.PaymentStatus,
		TotalAmount:         r.TotalAmount,
		Currency:            r.Currency,
		SpecialInstructions: r.SpecialInstructions,
		AllergyNotes:        r.AllergyNotes,
		Metadata:            r.Metadata,
		Items:               items,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// OrderSummaryResponse is one row of the GET /orders listing.
type OrderSummaryResponse struct {
	ID            string    `json:"id"`
	StudentID     string    `json:"studentId"`
	DeliveryDate  string    `json:"deliveryDate"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalAmount   int64     `json:"totalAmount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListOrdersResponse is the GET /orders body.
type ListOrdersResponse struct {
	Orders []OrderSummaryResponse `json:"orders"`
	Page   int                    `json:"page"`
	Size   int                    `json:"size"`
}

func listOrdersResponseFromReadModel(rows []queries.ListOrdersQueryResponse, page, size int) ListOrdersResponse {
	orders := make([]OrderSummaryResponse, len(rows))
	for i, row := range rows {
		orders[i] = OrderSummaryResponse{
			ID:            row.ID.String(),
			StudentID:     row.StudentID.String(),
			DeliveryDate:  row.DeliveryDate.String(),
			Status:        row.Status,
			PaymentStatus: row.PaymentStatus,
			TotalAmount:   row.TotalAmount,
			Currency:      row.Currency,
			CreatedAt:     row.CreatedAt,
		}
	}

	return ListOrdersResponse{Orders: orders, Page: page, Size: size}
}
