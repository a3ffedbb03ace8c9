package pharmacyrepo

import (
	"context"
	"errors"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/pharmacy"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPharmacyRepository implements PharmacyRepository using GORM.
type GormPharmacyRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPharmacyRepository creates a new GORM pharmacy repository.
func NewGormPharmacyRepository(db *gorm.DB, tracker aggregateTracker) *GormPharmacyRepository {
	return &GormPharmacyRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pharmacy with its inventory.
func (r *GormPharmacyRepository) Add(ctx context.Context, aggregate *pharmacy.Pharmacy) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetForOrder loads the pharmacy and the requested inventory rows. The rows are
// locked FOR UPDATE in ascending id order so that two placements touching the
// same medicines always acquire their locks in the same sequence.
//
// Example:
//
//	ph, err := repo.GetForOrder(ctx, pharmacyID, cmd.MedicineIDs())
//	if err != nil {
//	    return err
//	}
//	if ph == nil {
//	    // pharmacy does not exist
//	}
func (r *GormPharmacyRepository) GetForOrder(
	ctx context.Context,
	id kernel.UUID,
	medicineIDs []kernel.UUID,
) (*pharmacy.Pharmacy, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var dto PharmacyDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil //nolint:nilnil // absence is a business outcome decided by the caller
		}
		return nil, err
	}

	if len(medicineIDs) > 0 {
		raw := make([]uuid.UUID, 0, len(medicineIDs))
		for _, medicineID := range medicineIDs {
			raw = append(raw, medicineID.Bytes())
		}

		if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("pharmacy_id = ? AND id IN ?", dto.ID, raw).
			Order("id").
			Find(&dto.Inventory).Error; err != nil {
			return nil, err
		}
	}

	return toDomain(dto)
}

// UpdateStock writes back the stock quantity of every loaded inventory item.
func (r *GormPharmacyRepository) UpdateStock(ctx context.Context, aggregate *pharmacy.Pharmacy) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	for _, item := range aggregate.Inventory() {
		result := db.Model(&InventoryItemDTO{}).
			Where("id = ? AND pharmacy_id = ?", item.ID().Bytes(), aggregate.ID().Bytes()).
			Update("stock_quantity", item.StockQuantity())
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
