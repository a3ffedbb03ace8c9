// Package ports defines the contracts between the e-pharmacy core and its
// infrastructure: repositories, the unit of work and prescription storage.
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is always stored and loaded together with its items and prescription.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order, its items and prescription.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetForUpdate loads the order with the given id that belongs to pharmacyID
	// and locks its row until the surrounding transaction ends, so concurrent
	// status changes re-read the current status before applying a transition.
	// Returns an error wrapping errs.ErrObjectNotFound when no such order exists.
	GetForUpdate(ctx context.Context, id kernel.UUID, pharmacyID kernel.UUID) (*order.Order, error)

	// ListIDsInStatusSince returns ids of orders in status whose last update is
	// older than cutoff, oldest first.
	ListIDsInStatusSince(ctx context.Context, status order.Status, cutoff time.Time, limit int) ([]OrderRef, error)
}

// OrderRef identifies an order together with the pharmacy it belongs to.
type OrderRef struct {
	ID         kernel.UUID
	PharmacyID kernel.UUID
}
