package pharmacy

import (
	"errors"
	"fmt"
	"strings"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"
)

var (
	// ErrInsufficientStock is returned when a stock adjustment would make the
	// quantity negative.
	ErrInsufficientStock = errs.NewBusinessRuleError("insufficient_stock")

	// ErrInventoryItemIsNotConstructed is returned when an InventoryItem was not
	// created through NewInventoryItem or RestoreInventoryItem.
	ErrInventoryItemIsNotConstructed = errors.New("InventoryItem must be created via NewInventoryItem constructor")
)

// InventoryItem is a medicine held in stock by one pharmacy. It is an entity of
// the Pharmacy aggregate and is only modified through the owning pharmacy.
type InventoryItem struct {
	id                   kernel.UUID
	pharmacyID           kernel.UUID
	name                 string
	unitPrice            kernel.Money
	stockQuantity        int
	requiresPrescription bool
	guard                guard.ConstructorGuard
}

// NewInventoryItem creates a stock record. Quantity must be zero or positive.
func NewInventoryItem(
	id kernel.UUID,
	pharmacyID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	stockQuantity int,
	requiresPrescription bool,
) (*InventoryItem, error) {
	item := &InventoryItem{
		requiresPrescription: requiresPrescription,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setPharmacyID(pharmacyID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setStockQuantity(stockQuantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreInventoryItem rebuilds an item loaded from persistence.
func RestoreInventoryItem(
	id kernel.UUID,
	pharmacyID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	stockQuantity int,
	requiresPrescription bool,
) (*InventoryItem, error) {
	return NewInventoryItem(id, pharmacyID, name, unitPrice, stockQuantity, requiresPrescription)
}

// Validate ensures the item was built by a constructor.
func (i *InventoryItem) Validate() error {
	if i == nil {
		return ErrInventoryItemIsNotConstructed
	}
	return i.guard.Validate(ErrInventoryItemIsNotConstructed)
}

func (i *InventoryItem) ID() kernel.UUID            { return i.id }
func (i *InventoryItem) PharmacyID() kernel.UUID    { return i.pharmacyID }
func (i *InventoryItem) Name() string               { return i.name }
func (i *InventoryItem) UnitPrice() kernel.Money    { return i.unitPrice }
func (i *InventoryItem) StockQuantity() int         { return i.stockQuantity }
func (i *InventoryItem) RequiresPrescription() bool { return i.requiresPrescription }

// AdjustStock changes the stock quantity by delta, negative for consumption.
// The quantity is left untouched and ErrInsufficientStock is returned if the
// result would be negative.
func (i *InventoryItem) AdjustStock(delta int) error {
	if i.stockQuantity+delta < 0 {
		return ErrInsufficientStock
	}
	i.stockQuantity += delta
	return nil
}

func (i *InventoryItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *InventoryItem) setPharmacyID(pharmacyID kernel.UUID) error {
	if err := pharmacyID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pharmacyID", err)
	}
	i.pharmacyID = pharmacyID
	return nil
}

func (i *InventoryItem) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *InventoryItem) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *InventoryItem) setStockQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stockQuantity", fmt.Errorf("%d is negative", quantity))
	}
	i.stockQuantity = quantity
	return nil
}
