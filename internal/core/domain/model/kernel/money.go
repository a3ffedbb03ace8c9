package kernel

import (
	"fmt"
	"strings"

	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a money value has to be produced without any
// priced input, e.g. the total of an order that holds no items.
const DefaultCurrency = "INR"

const maxCurrencyLength = 8

// ErrMoneyIsNotConstructed is returned when a zero-value Money is used.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or ZeroMoney")

// Money is an immutable amount in a single currency. Amounts are decimal so that
// prices and totals never suffer from binary floating point rounding.
// No currency conversion is performed anywhere in the domain.
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates a non-negative amount in the given currency code.
// The currency code is trimmed and upper-cased.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := m.setAmount(amount); err != nil {
		return Money{}, err
	}
	if err := m.setCurrency(currency); err != nil {
		return Money{}, err
	}

	return m, nil
}

// ZeroMoney returns 0 in the given currency, falling back to DefaultCurrency.
func ZeroMoney(currency string) Money {
	if strings.TrimSpace(currency) == "" {
		currency = DefaultCurrency
	}
	m, err := NewMoney(decimal.Zero, currency)
	if err != nil {
		m, _ = NewMoney(decimal.Zero, DefaultCurrency)
	}
	return m
}

// Validate checks that the value was built by a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the upper-cased currency code.
func (m Money) Currency() string {
	return m.currency
}

// Times multiplies the amount by quantity, keeping the currency.
func (m Money) Times(quantity int) Money {
	return Money{
		amount:   m.amount.Mul(decimal.NewFromInt(int64(quantity))),
		currency: m.currency,
		guard:    m.guard,
	}
}

// IsEqual compares amount and currency. 35 and 35.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders the value as "INR 105.00".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(2))
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "+inf")
	}
	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	if len(currency) > maxCurrencyLength {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is longer than %d characters", currency, maxCurrencyLength))
	}
	m.currency = currency
	return nil
}
