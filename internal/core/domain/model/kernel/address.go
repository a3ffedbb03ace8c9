package kernel

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"
)

const (
	addressLineMaxLength   = 256
	addressRegionMaxLength = 128
	postalCodeMaxLength    = 32
)

// ErrAddressIsNotConstructed is returned when using a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress constructor")

// Address is a postal delivery address. Line2 is the only optional part.
type Address struct { //nolint:recvcheck //using for validation
	line1      string
	line2      string
	city       string
	state      string
	country    string
	postalCode string
	guard      guard.ConstructorGuard
}

// NewAddress trims every part and validates presence and maximum lengths.
// All violations are reported together.
func NewAddress(line1, line2, city, state, country, postalCode string) (Address, error) {
	a := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setAddressPart(&a.line1, "line1", line1, addressLineMaxLength, true),
		setAddressPart(&a.line2, "line2", line2, addressLineMaxLength, false),
		setAddressPart(&a.city, "city", city, addressRegionMaxLength, true),
		setAddressPart(&a.state, "state", state, addressRegionMaxLength, true),
		setAddressPart(&a.country, "country", country, addressRegionMaxLength, true),
		setAddressPart(&a.postalCode, "postalCode", postalCode, postalCodeMaxLength, true),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

// Validate checks that the address was built by its constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Line1() string      { return a.line1 }
func (a Address) Line2() string      { return a.line2 }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) Country() string    { return a.country }
func (a Address) PostalCode() string { return a.postalCode }

func setAddressPart(dst *string, name, value string, maxLength int, required bool) error {
	value = strings.TrimSpace(value)
	if value == "" && required {
		return errs.NewValueIsRequiredError(name)
	}
	if utf8.RuneCountInString(value) > maxLength {
		return errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("longer than %d characters", maxLength))
	}
	*dst = value
	return nil
}
