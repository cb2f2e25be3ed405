package order

import (
	"fmt"

	"mealorder/internal/pkg/errs"
)

// PaymentStatus tracks the payment lifecycle of an order. It is advanced only
// by the payment verification webhook and is fully independent of the order
// status state machine.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending is the initial payment status at order creation.
	PaymentPending

	// PaymentPaid indicates the payment gateway verified a capture.
	PaymentPaid

	// PaymentFailed indicates the gateway reported a failed capture.
	PaymentFailed

	// PaymentRefunded indicates a captured payment was returned.
	PaymentRefunded
)

func paymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "unknown",
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentFailed:   "failed",
		PaymentRefunded: "refunded",
	}
}

// PaymentStatusFromString parses a payment status name into the enum.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, name := range paymentStatusStrings() {
		if status != PaymentUnknown && name == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus",
		fmt.Errorf("%q is not a recognized payment status", s),
	)
}

// String returns the lowercase payment status name.
func (s PaymentStatus) String() string {
	if str, ok := paymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate returns an error unless the payment status is a defined value.
func (s PaymentStatus) Validate() error {
	if s == PaymentUnknown {
		return errs.NewValueIsInvalidError("paymentStatus")
	}
	if _, ok := paymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
	return nil
}
