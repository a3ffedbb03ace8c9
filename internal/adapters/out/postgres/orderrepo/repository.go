package orderrepo

import (
	"context"
	"errors"
	"time"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/core/ports"
	"epharmacy/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its items and prescription.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves the mutable state of an existing order: status, payment status,
// estimated delivery time, update timestamp and the prescription review.
// Items are snapshots and never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":                dto.Status,
		"payment_status":        dto.PaymentStatus,
		"estimated_delivery_at": dto.EstimatedDeliveryAt,
		"updated_at":            dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if dto.Prescription != nil {
		// The prescription row may not exist yet when it was attached after creation.
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "pharmacist_notes"}),
		}).Create(dto.Prescription).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetForUpdate loads an order of the given pharmacy and locks its row with
// SELECT ... FOR UPDATE. Items and prescription are read afterwards without locks.
func (r *GormOrderRepository) GetForUpdate(
	ctx context.Context,
	id kernel.UUID,
	pharmacyID kernel.UUID,
) (*order.Order, error) {
	if err := errors.Join(id.Validate(), pharmacyID.Validate()); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var dto OrderDTO
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND pharmacy_id = ?", id.Bytes(), pharmacyID.Bytes()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	if err = db.Where("order_id = ?", dto.ID).Order("position").Find(&dto.Items).Error; err != nil {
		return nil, err
	}

	var prescriptions []PrescriptionDTO
	if err = db.Where("order_id = ?", dto.ID).Limit(1).Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	if len(prescriptions) > 0 {
		dto.Prescription = &prescriptions[0]
	}

	return toDomain(dto)
}

// ListIDsInStatusSince returns references to orders in status that were last
// updated at or before cutoff, oldest first.
func (r *GormOrderRepository) ListIDsInStatusSince(
	ctx context.Context,
	status order.Status,
	cutoff time.Time,
	limit int,
) ([]ports.OrderRef, error) {
	type row struct {
		ID         uuid.UUID
		PharmacyID uuid.UUID
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("id", "pharmacy_id").
		Where("status = ? AND updated_at <= ?", int(status), cutoff).
		Order("updated_at, id").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	refs := make([]ports.OrderRef, 0, len(rows))
	for _, rw := range rows {
		ids, err := uuidsFromBytes(rw.ID, rw.PharmacyID)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ports.OrderRef{ID: ids[0], PharmacyID: ids[1]})
	}

	return refs, nil
}
