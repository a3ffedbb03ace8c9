package commands_test

import (
	"testing"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/core/domain/model/pharmacy"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("12 MG Road", "Flat 4", "Bengaluru", "Karnataka", "India", "560001")
	require.NoError(t, err)
	return a
}

func testLocation(t *testing.T) kernel.GeoCoordinate {
	t.Helper()
	c, err := kernel.NewGeoCoordinate(12.9716, 77.5946)
	require.NoError(t, err)
	return c
}

func testPharmacy(t *testing.T, stock int, requiresPrescription bool) (*pharmacy.Pharmacy, *pharmacy.InventoryItem) {
	t.Helper()
	ph, err := pharmacy.NewPharmacy(kernel.NewUUID(), "City Care", pharmacy.Active)
	require.NoError(t, err)
	price, err := kernel.NewMoney(decimal.RequireFromString("35.00"), "INR")
	require.NoError(t, err)
	item, err := ph.AddInventoryItem("Paracetamol", price, stock, requiresPrescription)
	require.NoError(t, err)
	return ph, item
}

// testOrder returns an order of pharmacyID restored in the given status with a
// pending prescription attached.
func testOrder(t *testing.T, pharmacyID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	prescription, err := order.NewPrescription(kernel.NewUUID(), "rx.pdf", "prescriptions/1/rx.pdf")
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.OrderState{
		ID:               kernel.NewUUID(),
		OrderNumber:      kernel.NewUUID(),
		CustomerID:       kernel.NewUUID(),
		PharmacyID:       pharmacyID,
		DeliveryAddress:  testAddress(t),
		DeliveryLocation: testLocation(t),
		PaymentMethod:    order.CashOnDelivery,
		PaymentStatus:    order.PaymentPending,
		Status:           status,
		Prescription:     prescription,
	})
	require.NoError(t, err)
	return o
}
