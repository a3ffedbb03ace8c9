// Package membershiprepo persists pharmacy memberships used for staff authorization.
package membershiprepo

import (
	"epharmacy/internal/core/domain/model/pharmacy"

	"github.com/google/uuid"
)

// MembershipDTO links a user to a pharmacy.
type MembershipDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PharmacyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_pharmacy_user,priority:1"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_pharmacy_user,priority:2"`
	Role       int       `gorm:"not null"`
	Active     bool      `gorm:"not null"`
}

// TableName overrides GORM's default naming convention to use "pharmacy_memberships".
func (MembershipDTO) TableName() string {
	return "pharmacy_memberships"
}

func fromDomain(membership *pharmacy.Membership) MembershipDTO {
	return MembershipDTO{
		ID:         membership.ID().Bytes(),
		PharmacyID: membership.PharmacyID().Bytes(),
		UserID:     membership.UserID().Bytes(),
		Role:       int(membership.Role()),
		Active:     membership.IsActive(),
	}
}
