package services

import (
	"encoding/json"
	"fmt"
	"time"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/pkg/errs"
)

// Validation error codes returned by OrderValidator, in rule order.
const (
	CodeMissingRequiredFields     = "MISSING_REQUIRED_FIELDS"
	CodeInvalidDateFormat         = "INVALID_DATE_FORMAT"
	CodeDeliveryTooSoon           = "DELIVERY_TOO_SOON"
	CodeWeekendDeliveryNotAllowed = "WEEKEND_DELIVERY_NOT_ALLOWED"
	CodeEmptyOrder                = "EMPTY_ORDER"
	CodeTooManyItems              = "TOO_MANY_ITEMS"
	CodeInvalidQuantity           = "INVALID_QUANTITY"
	CodeQuantityTooHigh           = "QUANTITY_TOO_HIGH"
	CodeInvalidIdentifier         = "INVALID_IDENTIFIER"
)

// OrderItemRequest is one raw order line as received at the boundary.
type OrderItemRequest struct {
	MenuItemID    string
	Quantity      int
	Notes         string
	Customization json.RawMessage
}

// OrderRequest is the raw order creation request as received at the boundary.
// Unknown or extra fields were already dropped during decoding; nothing here
// is trusted until Validate has normalized it.
type OrderRequest struct {
	StudentID           string
	DeliveryDate        string
	Items               []OrderItemRequest
	SpecialInstructions string
	AllergyNotes        string
	Metadata            map[string]string
}

// ValidatedItem is a normalized order line: parsed identifier, checked quantity.
type ValidatedItem struct {
	MenuItemID    kernel.UUID
	Quantity      int
	Notes         string
	Customization json.RawMessage
}

// ValidatedOrderRequest is the normalized output of OrderValidator: identifiers
// parsed, delivery date checked against policy, item shape verified. Pricing
// has not happened yet.
type ValidatedOrderRequest struct {
	StudentID           kernel.UUID
	DeliveryDate        kernel.DeliveryDate
	Items               []ValidatedItem
	SpecialInstructions string
	AllergyNotes        string
	Metadata            map[string]string
}

// OrderValidator checks shape and business constraints on incoming order
// requests. Rules run in a fixed order and the first failure wins; every
// failure carries a stable machine-readable code.
type OrderValidator struct {
	minLeadTime  time.Duration
	allowWeekend bool
	maxItems     int
}

// NewOrderValidator creates a validator with the given ordering policy.
// minLeadTime is how far ahead of now the delivery day must start;
// maxItems caps the number of order lines (0 falls back to the domain
// default).
func NewOrderValidator(minLeadTime time.Duration, allowWeekend bool, maxItems int) OrderValidator {
	if maxItems <= 0 {
		maxItems = order.MaxOrderItems
	}
	return OrderValidator{
		minLeadTime:  minLeadTime,
		allowWeekend: allowWeekend,
		maxItems:     maxItems,
	}
}

// Validate applies the rules in order, fail-fast, and returns the normalized
// request. now is injected so the lead-time rule stays deterministic in tests.
//
// Rule order: required fields, date format, lead time, service day, non-empty
// items, item count cap, per-item quantity bounds.
func (v OrderValidator) Validate(request OrderRequest, now time.Time) (ValidatedOrderRequest, error) {
	if request.StudentID == "" || request.DeliveryDate == "" || request.Items == nil {
		return ValidatedOrderRequest{}, errs.NewValidationError(
			CodeMissingRequiredFields,
			"studentId, deliveryDate and orderItems are required",
		)
	}

	deliveryDate, err := kernel.DeliveryDateFromString(request.DeliveryDate)
	if err != nil {
		return ValidatedOrderRequest{}, errs.NewValidationErrorWithCause(
			CodeInvalidDateFormat,
			fmt.Sprintf("deliveryDate %q is not a calendar date (%s)", request.DeliveryDate, kernel.DeliveryDateLayout),
			err,
		)
	}

	if deliveryDate.Before(now.Add(v.minLeadTime)) {
		return ValidatedOrderRequest{}, errs.NewValidationError(
			CodeDeliveryTooSoon,
			fmt.Sprintf("delivery on %s is less than %s ahead", deliveryDate, v.minLeadTime),
		)
	}

	if !v.allowWeekend && deliveryDate.IsWeekend() {
		return ValidatedOrderRequest{}, errs.NewValidationError(
			CodeWeekendDeliveryNotAllowed,
			fmt.Sprintf("%s falls on a %s; meals are served on school days only", deliveryDate, deliveryDate.Weekday()),
		)
	}

	if len(request.Items) == 0 {
		return ValidatedOrderRequest{}, errs.NewValidationError(
			CodeEmptyOrder,
			"order must contain at least one item",
		)
	}

	if len(request.Items) > v.maxItems {
		return ValidatedOrderRequest{}, errs.NewValidationError(
			CodeTooManyItems,
			fmt.Sprintf("order has %d items, maximum is %d", len(request.Items), v.maxItems),
		)
	}

	studentID, err := kernel.UUIDFromString(request.StudentID)
	if err != nil {
		return ValidatedOrderRequest{}, errs.NewValidationErrorWithCause(
			CodeInvalidIdentifier,
			fmt.Sprintf("studentId %q is not a valid identifier", request.StudentID),
			err,
		)
	}

	items := make([]ValidatedItem, 0, len(request.Items))
	for i, item := range request.Items {
		if item.MenuItemID == "" {
			return ValidatedOrderRequest{}, errs.NewValidationError(
				CodeMissingRequiredFields,
				fmt.Sprintf("orderItems[%d].menuItemId is required", i),
			)
		}

		menuItemID, idErr := kernel.UUIDFromString(item.MenuItemID)
		if idErr != nil {
			return ValidatedOrderRequest{}, errs.NewValidationErrorWithCause(
				CodeInvalidIdentifier,
				fmt.Sprintf("orderItems[%d].menuItemId %q is not a valid identifier", i, item.MenuItemID),
				idErr,
			)
		}

		if item.Quantity < order.MinItemQuantity {
			return ValidatedOrderRequest{}, errs.NewValidationError(
				CodeInvalidQuantity,
				fmt.Sprintf("orderItems[%d] (menu item %s) has quantity %d, minimum is %d",
					i, item.MenuItemID, item.Quantity, order.MinItemQuantity),
			)
		}

		if item.Quantity > order.MaxItemQuantity {
			return ValidatedOrderRequest{}, errs.NewValidationError(
				CodeQuantityTooHigh,
				fmt.Sprintf("orderItems[%d] (menu item %s) has quantity %d, maximum is %d",
					i, item.MenuItemID, item.Quantity, order.MaxItemQuantity),
			)
		}

		items = append(items, ValidatedItem{
			MenuItemID:    menuItemID,
			Quantity:      item.Quantity,
			Notes:         item.Notes,
			Customization: item.Customization,
		})
	}

	return ValidatedOrderRequest{
		StudentID:           studentID,
		DeliveryDate:        deliveryDate,
		Items:               items,
		SpecialInstructions: request.SpecialInstructions,
		AllergyNotes:        request.AllergyNotes,
		Metadata:            request.Metadata,
	}, nil
}
