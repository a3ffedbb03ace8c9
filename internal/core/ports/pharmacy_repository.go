package ports

import (
	"context"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/pharmacy"
)

// PharmacyRepository defines the persistence contract for pharmacy aggregates.
type PharmacyRepository interface {
	// Add persists a new pharmacy and its inventory.
	Add(ctx context.Context, aggregate *pharmacy.Pharmacy) error

	// GetForOrder loads the pharmacy with only the inventory items listed in
	// medicineIDs. The returned inventory rows are locked in ascending id order
	// until the surrounding transaction ends, which serializes concurrent orders
	// competing for the same stock. Ids the pharmacy does not sell are absent
	// from the result. Returns (nil, nil) when the pharmacy does not exist.
	GetForOrder(ctx context.Context, id kernel.UUID, medicineIDs []kernel.UUID) (*pharmacy.Pharmacy, error)

	// UpdateStock writes the stock quantities of the loaded inventory items.
	UpdateStock(ctx context.Context, aggregate *pharmacy.Pharmacy) error
}

// MembershipRepository answers authorization questions about pharmacy staff.
type MembershipRepository interface {
	// Add persists a new membership.
	Add(ctx context.Context, membership *pharmacy.Membership) error

	// ExistsActive reports whether userID holds an active membership of pharmacyID.
	ExistsActive(ctx context.Context, pharmacyID kernel.UUID, userID kernel.UUID) (bool, error)
}
