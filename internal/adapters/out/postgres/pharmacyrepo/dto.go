// Package pharmacyrepo persists pharmacies and their inventory.
package pharmacyrepo

import (
	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/pharmacy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PharmacyDTO represents the database structure of the pharmacy aggregate root.
type PharmacyDTO struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Name      string             `gorm:"type:varchar(256);not null"`
	Status    int                `gorm:"not null"`
	Inventory []InventoryItemDTO `gorm:"foreignKey:PharmacyID;constraint:OnDelete:RESTRICT"`
}

// TableName overrides GORM's default naming convention to use "pharmacies".
func (PharmacyDTO) TableName() string {
	return "pharmacies"
}

// InventoryItemDTO is one medicine sold by a pharmacy. The check constraint keeps
// stock non-negative even if a caller bypasses the aggregate.
type InventoryItemDTO struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PharmacyID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name                 string          `gorm:"type:varchar(256);not null"`
	UnitPrice            decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency             string          `gorm:"type:varchar(8);not null"`
	StockQuantity        int             `gorm:"not null;check:chk_inventory_items_stock,stock_quantity >= 0"`
	RequiresPrescription bool            `gorm:"not null"`
}

// TableName overrides GORM's default naming convention to use "inventory_items".
func (InventoryItemDTO) TableName() string {
	return "inventory_items"
}

func fromDomain(aggregate *pharmacy.Pharmacy) PharmacyDTO {
	inventory := make([]InventoryItemDTO, 0, len(aggregate.Inventory()))
	for _, item := range aggregate.Inventory() {
		inventory = append(inventory, itemFromDomain(item))
	}

	return PharmacyDTO{
		ID:        aggregate.ID().Bytes(),
		Name:      aggregate.Name(),
		Status:    int(aggregate.Status()),
		Inventory: inventory,
	}
}

func itemFromDomain(item *pharmacy.InventoryItem) InventoryItemDTO {
	return InventoryItemDTO{
		ID:                   item.ID().Bytes(),
		PharmacyID:           item.PharmacyID().Bytes(),
		Name:                 item.Name(),
		UnitPrice:            item.UnitPrice().Amount(),
		Currency:             item.UnitPrice().Currency(),
		StockQuantity:        item.StockQuantity(),
		RequiresPrescription: item.RequiresPrescription(),
	}
}

// toDomain rebuilds the pharmacy with whatever part of the inventory dto holds.
func toDomain(dto PharmacyDTO) (*pharmacy.Pharmacy, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	inventory := make([]*pharmacy.InventoryItem, 0, len(dto.Inventory))
	for _, itemDTO := range dto.Inventory {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		inventory = append(inventory, item)
	}

	return pharmacy.RestorePharmacy(id, dto.Name, pharmacy.TenantStatus(dto.Status), inventory)
}

func itemToDomain(dto InventoryItemDTO) (*pharmacy.InventoryItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	pharmacyID, err := kernel.UUIDFromBytes(dto.PharmacyID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.UnitPrice, dto.Currency)
	if err != nil {
		return nil, err
	}

	return pharmacy.RestoreInventoryItem(id, pharmacyID, dto.Name, price, dto.StockQuantity, dto.RequiresPrescription)
}
