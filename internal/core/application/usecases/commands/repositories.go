// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"epharmacy/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest set of repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PharmacyRepoFactory provides access to the pharmacy repository within a transaction.
	PharmacyRepoFactory interface {
		PharmacyRepository() ports.PharmacyRepository
	}

	// MembershipRepoFactory provides access to the membership repository within a transaction.
	MembershipRepoFactory interface {
		MembershipRepository() ports.MembershipRepository
	}

	// PlacementUoW spans the pharmacy stock and the new order of one placement.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   ph, err := uow.PharmacyRepository().GetForOrder(ctx, pharmacyID, medicineIDs)
	//   // ... place the order
	//   err = uow.PharmacyRepository().UpdateStock(ctx, ph)
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	PlacementUoW interface {
		TxManager
		OrderRepoFactory
		PharmacyRepoFactory
	}

	// PlacementUoWFactory creates new placement unit of work instances.
	PlacementUoWFactory interface {
		Create() PlacementUoW
	}

	// FulfillmentUoW is used by pharmacy staff operations on existing orders,
	// authorized through memberships.
	FulfillmentUoW interface {
		TxManager
		OrderRepoFactory
		MembershipRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}
)
