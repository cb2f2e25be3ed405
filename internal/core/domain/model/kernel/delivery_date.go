package kernel

import (
	"fmt"
	"time"

	"mealorder/internal/pkg/errs"
)

// DeliveryDateLayout is the wire format for delivery dates: a calendar date
// with no time component.
const DeliveryDateLayout = "2006-01-02"

// DeliveryDate is a value object representing the calendar day an order is to
// be delivered. It carries no time-of-day and no timezone beyond UTC midnight,
// which keeps date comparisons stable across the platform.
//
// The zero value is invalid and must be constructed via NewDeliveryDate or
// DeliveryDateFromString.
type DeliveryDate struct {
	day time.Time
}

// NewDeliveryDate creates a DeliveryDate from a time value, truncating any
// time-of-day component.
func NewDeliveryDate(t time.Time) (DeliveryDate, error) {
	if t.IsZero() {
		return DeliveryDate{}, errs.NewValueIsRequiredError("deliveryDate")
	}

	year, month, day := t.Date()
	return DeliveryDate{day: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}, nil
}

// DeliveryDateFromString parses a DeliveryDate from the "2006-01-02" layout.
func DeliveryDateFromString(s string) (DeliveryDate, error) {
	if s == "" {
		return DeliveryDate{}, errs.NewValueIsRequiredError("deliveryDate")
	}

	t, err := time.Parse(DeliveryDateLayout, s)
	if err != nil {
		return DeliveryDate{}, errs.NewValueIsInvalidErrorWithCause(
			"deliveryDate",
			fmt.Errorf("%q does not match %s: %w", s, DeliveryDateLayout, err),
		)
	}

	return NewDeliveryDate(t)
}

// Time returns the date as UTC midnight of the delivery day.
func (d DeliveryDate) Time() time.Time {
	return d.day
}

// Weekday returns the weekday of the delivery date.
func (d DeliveryDate) Weekday() time.Weekday {
	return d.day.Weekday()
}

// IsWeekend reports whether the delivery date falls on a Saturday or Sunday.
func (d DeliveryDate) IsWeekend() bool {
	wd := d.day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsEqual compares two delivery dates by calendar day.
func (d DeliveryDate) IsEqual(other DeliveryDate) bool {
	return d.day.Equal(other.day)
}

// Before reports whether the delivery day's UTC midnight is before t.
func (d DeliveryDate) Before(t time.Time) bool {
	return d.day.Before(t)
}

// String returns the "2006-01-02" representation.
func (d DeliveryDate) String() string {
	return d.day.Format(DeliveryDateLayout)
}

// Validate returns an error if the DeliveryDate is the zero value.
func (d DeliveryDate) Validate() error {
	if d.day.IsZero() {
		return errs.NewValueIsRequiredError(
			"DeliveryDate must be created via NewDeliveryDate or DeliveryDateFromString",
		)
	}
	return nil
}
