package pharmacy

import (
	"errors"
	"strings"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"
)

var (
	// ErrPharmacyUnavailable is returned when the pharmacy does not exist or is not Active.
	ErrPharmacyUnavailable = errs.NewBusinessRuleError("pharmacy_unavailable")

	ErrPharmacyIsNotConstructed = errors.New("Pharmacy must be created via NewPharmacy constructor")
)

// Pharmacy is the aggregate root owning inventory items.
//
// When loaded for an order only the requested subset of the inventory is
// present, so an absent item means "not sold here" only within that subset.
type Pharmacy struct {
	id        kernel.UUID
	name      string
	status    TenantStatus
	inventory []*InventoryItem
	guard     guard.ConstructorGuard
}

// NewPharmacy creates a pharmacy with an empty inventory.
func NewPharmacy(id kernel.UUID, name string, status TenantStatus) (*Pharmacy, error) {
	return RestorePharmacy(id, name, status, nil)
}

// RestorePharmacy rebuilds a pharmacy loaded from persistence.
func RestorePharmacy(id kernel.UUID, name string, status TenantStatus, inventory []*InventoryItem) (*Pharmacy, error) {
	p := &Pharmacy{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setStatus(status),
	); err != nil {
		return nil, err
	}
	if err := p.setInventory(inventory); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the pharmacy was built by a constructor.
func (p *Pharmacy) Validate() error {
	if p == nil {
		return ErrPharmacyIsNotConstructed
	}
	return p.guard.Validate(ErrPharmacyIsNotConstructed)
}

func (p *Pharmacy) ID() kernel.UUID      { return p.id }
func (p *Pharmacy) Name() string         { return p.name }
func (p *Pharmacy) Status() TenantStatus { return p.status }

// Inventory returns a copy of the loaded inventory slice.
func (p *Pharmacy) Inventory() []*InventoryItem {
	out := make([]*InventoryItem, len(p.inventory))
	copy(out, p.inventory)
	return out
}

// IsAvailable reports whether the pharmacy accepts orders.
func (p *Pharmacy) IsAvailable() bool {
	return p.status == Active
}

// AddInventoryItem puts a new medicine into stock.
func (p *Pharmacy) AddInventoryItem(
	name string,
	unitPrice kernel.Money,
	stockQuantity int,
	requiresPrescription bool,
) (*InventoryItem, error) {
	item, err := NewInventoryItem(kernel.NewUUID(), p.id, name, unitPrice, stockQuantity, requiresPrescription)
	if err != nil {
		return nil, err
	}
	p.inventory = append(p.inventory, item)
	return item, nil
}

// FindItem looks up an inventory item by id.
func (p *Pharmacy) FindItem(id kernel.UUID) (*InventoryItem, bool) {
	for _, item := range p.inventory {
		if item.id.IsEqual(id) {
			return item, true
		}
	}
	return nil, false
}

// ReserveStock takes quantity units of the medicine out of stock.
func (p *Pharmacy) ReserveStock(medicineID kernel.UUID, quantity int) error {
	item, ok := p.FindItem(medicineID)
	if !ok {
		return errs.NewObjectNotFoundError("medicineID", medicineID)
	}
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "+inf")
	}
	return item.AdjustStock(-quantity)
}

func (p *Pharmacy) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Pharmacy) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Pharmacy) setStatus(status TenantStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *Pharmacy) setInventory(inventory []*InventoryItem) error {
	items := make([]*InventoryItem, 0, len(inventory))
	for _, item := range inventory {
		if err := item.Validate(); err != nil {
			return err
		}
		if !item.pharmacyID.IsEqual(p.id) {
			return errs.NewValueIsInvalidError("inventory item belongs to another pharmacy")
		}
		items = append(items, item)
	}
	p.inventory = items
	return nil
}
