package order

import (
	"fmt"

	"epharmacy/internal/pkg/errs"
)

// PaymentMethod is how the customer pays. Only CashOnDelivery is accepted for
// new orders; the others exist so that clients can ask for them and be refused.
type PaymentMethod int

const (
	PaymentMethodUnknown PaymentMethod = iota
	CashOnDelivery
	Card
	Upi
)

var paymentMethodNames = map[PaymentMethod]string{
	PaymentMethodUnknown: "Unknown",
	CashOnDelivery:       "CashOnDelivery",
	Card:                 "Card",
	Upi:                  "Upi",
}

func (m PaymentMethod) String() string {
	if s, ok := paymentMethodNames[m]; ok {
		return s
	}
	return "Unknown"
}

// IsSupported reports whether orders can be placed with m.
func (m PaymentMethod) IsSupported() bool {
	return m == CashOnDelivery
}

// ParsePaymentMethod converts a name into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for m, name := range paymentMethodNames {
		if m != PaymentMethodUnknown && name == s {
			return m, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a valid payment method", s))
}

// PaymentStatus tracks settlement of an order's payment.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota
	PaymentPending
	PaymentAuthorized
	PaymentCaptured
	PaymentFailed
	PaymentRefunded
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentStatusUnknown: "Unknown",
	PaymentPending:       "Pending",
	PaymentAuthorized:    "Authorized",
	PaymentCaptured:      "Captured",
	PaymentFailed:        "Failed",
	PaymentRefunded:      "Refunded",
}

func (s PaymentStatus) String() string {
	if str, ok := paymentStatusNames[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects PaymentStatusUnknown and out-of-range values.
func (s PaymentStatus) Validate() error {
	if s < PaymentPending || s > PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}
