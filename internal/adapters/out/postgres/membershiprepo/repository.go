package membershiprepo

import (
	"context"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/pharmacy"

	"gorm.io/gorm"
)

// GormMembershipRepository implements MembershipRepository using GORM.
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GORM membership repository.
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// Add saves a new membership.
func (r *GormMembershipRepository) Add(ctx context.Context, membership *pharmacy.Membership) error {
	if err := membership.Validate(); err != nil {
		return err
	}

	dto := fromDomain(membership)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ExistsActive reports whether the user holds an active membership of the pharmacy.
func (r *GormMembershipRepository) ExistsActive(
	ctx context.Context,
	pharmacyID kernel.UUID,
	userID kernel.UUID,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&MembershipDTO{}).
		Where("pharmacy_id = ? AND user_id = ? AND active", pharmacyID.Bytes(), userID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
