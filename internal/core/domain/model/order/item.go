package order

import (
	"errors"
	"fmt"
	"strings"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line of an order. Name, price and prescription flag are copied from
// the inventory when ordered and never follow later inventory changes.
type Item struct {
	id                   kernel.UUID
	medicineID           kernel.UUID
	medicineName         string
	quantity             int
	unitPrice            kernel.Money
	requiresPrescription bool
	guard                guard.ConstructorGuard
}

// NewItem creates a line item. Quantity must be positive.
func NewItem(
	id kernel.UUID,
	medicineID kernel.UUID,
	medicineName string,
	quantity int,
	unitPrice kernel.Money,
	requiresPrescription bool,
) (*Item, error) {
	item := &Item{
		requiresPrescription: requiresPrescription,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setMedicineID(medicineID),
		item.setMedicineName(medicineName),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID            { return i.id }
func (i *Item) MedicineID() kernel.UUID    { return i.medicineID }
func (i *Item) MedicineName() string       { return i.medicineName }
func (i *Item) Quantity() int              { return i.quantity }
func (i *Item) UnitPrice() kernel.Money    { return i.unitPrice }
func (i *Item) RequiresPrescription() bool { return i.requiresPrescription }

// LineTotal is unit price times quantity.
func (i *Item) LineTotal() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}

func (i *Item) merge(quantity int, requiresPrescription bool) error {
	if err := i.setQuantity(i.quantity + quantity); err != nil {
		return err
	}
	i.requiresPrescription = i.requiresPrescription || requiresPrescription
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setMedicineID(medicineID kernel.UUID) error {
	if err := medicineID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("medicineID", err)
	}
	i.medicineID = medicineID
	return nil
}

func (i *Item) setMedicineName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("medicineName")
	}
	i.medicineName = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}
