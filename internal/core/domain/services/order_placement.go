package services

import (
	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/core/domain/model/pharmacy"
	"epharmacy/internal/pkg/errs"
)

// Business rule violations reported by OrderPlacement in addition to the ones
// declared by the order and pharmacy packages.
var (
	ErrNoItems              = errs.NewBusinessRuleError("no_items")
	ErrInvalidItems         = errs.NewBusinessRuleError("invalid_items")
	ErrInvalidQuantity      = errs.NewBusinessRuleError("invalid_quantity")
	ErrPrescriptionRequired = errs.NewBusinessRuleError("prescription_required")
)

// RequestedItem is one (medicine, quantity) pair of an order request.
type RequestedItem struct {
	MedicineID kernel.UUID
	Quantity   int
}

// PlacementRequest describes the order a customer asks for.
type PlacementRequest struct {
	CustomerID       kernel.UUID
	DeliveryAddress  kernel.Address
	DeliveryLocation kernel.GeoCoordinate
	PaymentMethod    order.PaymentMethod
	Items            []RequestedItem
	HasPrescription  bool
}

// OrderPlacement is a domain service turning a PlacementRequest into an Order
// while consuming stock of the target pharmacy.
//
// The checks run fail-fast in this order and each yields exactly one reason:
//  1. payment method must be supported (order.ErrPaymentMethodNotSupported)
//  2. pharmacy must exist and be Active (pharmacy.ErrPharmacyUnavailable)
//  3. at least one item (ErrNoItems)
//  4. every medicine must be sold by the pharmacy (ErrInvalidItems)
//  5. per item in input order: quantity > 0 (ErrInvalidQuantity), then enough
//     stock for everything requested of that medicine so far (pharmacy.ErrInsufficientStock)
//  6. a prescription must accompany prescription-only medicines (ErrPrescriptionRequired)
//
// Nothing is mutated unless every check passes.
//
// Example usage:
//
//	placement := services.NewOrderPlacement()
//	o, err := placement.Place(ph, req)
//	if reason, ok := errs.ReasonOf(err); ok {
//	    // rejected, reason is e.g. "insufficient_stock"
//	}
type OrderPlacement struct{}

// NewOrderPlacement creates a new OrderPlacement instance.
func NewOrderPlacement() OrderPlacement {
	return OrderPlacement{}
}

// Place validates req against ph and, on success, returns a new Pending order
// whose items snapshot the inventory. The stock of every ordered medicine is
// decremented on ph; the caller persists both aggregates in one transaction.
//
// ph may be nil when the pharmacy does not exist.
func (s OrderPlacement) Place(ph *pharmacy.Pharmacy, req PlacementRequest) (*order.Order, error) {
	if !req.PaymentMethod.IsSupported() {
		return nil, order.ErrPaymentMethodNotSupported
	}

	if ph == nil || !ph.IsAvailable() {
		return nil, pharmacy.ErrPharmacyUnavailable
	}

	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	inventory, err := s.resolveItems(ph, req.Items)
	if err != nil {
		return nil, err
	}

	requiresPrescription, err := s.checkQuantities(inventory, req.Items)
	if err != nil {
		return nil, err
	}

	if requiresPrescription && !req.HasPrescription {
		return nil, ErrPrescriptionRequired
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		req.CustomerID,
		ph.ID(),
		req.DeliveryAddress,
		req.DeliveryLocation,
		req.PaymentMethod,
	)
	if err != nil {
		return nil, err
	}

	for _, requested := range req.Items {
		item := inventory[requested.MedicineID]
		if err = o.AddItem(item.ID(), item.Name(), item.UnitPrice(), requested.Quantity, item.RequiresPrescription()); err != nil {
			return nil, err
		}
		if err = ph.ReserveStock(item.ID(), requested.Quantity); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// resolveItems maps every distinct requested medicine to the pharmacy's
// inventory item.
func (s OrderPlacement) resolveItems(
	ph *pharmacy.Pharmacy,
	items []RequestedItem,
) (map[kernel.UUID]*pharmacy.InventoryItem, error) {
	inventory := make(map[kernel.UUID]*pharmacy.InventoryItem, len(items))
	for _, requested := range items {
		if _, ok := inventory[requested.MedicineID]; ok {
			continue
		}
		item, ok := ph.FindItem(requested.MedicineID)
		if !ok {
			return nil, ErrInvalidItems
		}
		inventory[requested.MedicineID] = item
	}
	return inventory, nil
}

// checkQuantities walks the request in input order. A medicine requested twice
// is checked against its cumulative quantity, so merged lines cannot oversell.
func (s OrderPlacement) checkQuantities(
	inventory map[kernel.UUID]*pharmacy.InventoryItem,
	items []RequestedItem,
) (bool, error) {
	requested := make(map[kernel.UUID]int, len(inventory))
	requiresPrescription := false

	for _, it := range items {
		if it.Quantity <= 0 {
			return false, ErrInvalidQuantity
		}

		// Compared against what is left so the running total cannot overflow.
		item := inventory[it.MedicineID]
		if it.Quantity > item.StockQuantity()-requested[it.MedicineID] {
			return false, pharmacy.ErrInsufficientStock
		}
		requested[it.MedicineID] += it.Quantity

		if item.RequiresPrescription() {
			requiresPrescription = true
		}
	}

	return requiresPrescription, nil
}
