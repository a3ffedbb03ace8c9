package order_test

import (
	"testing"
	"time"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount, currency string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), currency)
	require.NoError(t, err)
	return m
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	address, err := kernel.NewAddress("12 MG Road", "", "Bengaluru", "Karnataka", "India", "560001")
	require.NoError(t, err)
	location, err := kernel.NewGeoCoordinate(12.9716, 77.5946)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		address, location, order.CashOnDelivery)
	require.NoError(t, err)
	return o
}

func newOrderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	return restoreOrder(t, status, order.PaymentPending)
}

func restoreOrder(t *testing.T, status order.Status, payment order.PaymentStatus) *order.Order {
	t.Helper()
	o := newOrder(t)
	address, _ := kernel.NewAddress("12 MG Road", "", "Bengaluru", "Karnataka", "India", "560001")
	location, _ := kernel.NewGeoCoordinate(12.9716, 77.5946)
	prescription, err := order.NewPrescription(kernel.NewUUID(), "rx.pdf", "prescriptions/x/rx.pdf")
	require.NoError(t, err)

	restored, err := order.RestoreOrder(order.OrderState{
		ID:               o.ID(),
		OrderNumber:      o.OrderNumber(),
		CustomerID:       o.CustomerID(),
		PharmacyID:       o.PharmacyID(),
		DeliveryAddress:  address,
		DeliveryLocation: location,
		PaymentMethod:    order.CashOnDelivery,
		PaymentStatus:    payment,
		Status:           status,
		Prescription:     prescription,
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	})
	require.NoError(t, err)
	return restored
}

func TestNewOrder(t *testing.T) {
	t.Run("should start Pending with pending payment", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, order.CashOnDelivery, o.PaymentMethod())
		assert.False(t, o.ID().IsEqual(o.OrderNumber()))
		assert.Empty(t, o.Items())
		assert.Nil(t, o.Prescription())
		assert.Nil(t, o.EstimatedDeliveryAt())
		assert.False(t, o.CreatedAt().IsZero())
	})

	t.Run("should reject unsupported payment method", func(t *testing.T) {
		address, _ := kernel.NewAddress("12 MG Road", "", "Bengaluru", "Karnataka", "India", "560001")
		location, _ := kernel.NewGeoCoordinate(1, 1)

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			address, location, order.Card)

		assert.ErrorIs(t, err, order.ErrPaymentMethodNotSupported)
	})

	t.Run("should reject same id and order number", func(t *testing.T) {
		id := kernel.NewUUID()
		address, _ := kernel.NewAddress("12 MG Road", "", "Bengaluru", "Karnataka", "India", "560001")
		location, _ := kernel.NewGeoCoordinate(1, 1)

		_, err := order.NewOrder(id, id, kernel.NewUUID(), kernel.NewUUID(), address, location, order.CashOnDelivery)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unconstructed address and location", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.Address{}, kernel.GeoCoordinate{}, order.CashOnDelivery)

		assert.ErrorIs(t, err, kernel.ErrAddressIsNotConstructed)
		assert.ErrorIs(t, err, kernel.ErrGeoCoordinateIsNotConstructed)
	})
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("should merge the same medicine", func(t *testing.T) {
		o := newOrder(t)
		medicineID := kernel.NewUUID()

		require.NoError(t, o.AddItem(medicineID, "Paracetamol", money(t, "35.00", "INR"), 2, false))
		require.NoError(t, o.AddItem(medicineID, "Paracetamol", money(t, "35.00", "INR"), 3, true))

		items := o.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity())
		assert.True(t, items[0].RequiresPrescription())
		assert.True(t, o.RequiresPrescription())
	})

	t.Run("should keep distinct medicines in insertion order", func(t *testing.T) {
		o := newOrder(t)
		first, second := kernel.NewUUID(), kernel.NewUUID()

		require.NoError(t, o.AddItem(first, "Paracetamol", money(t, "35", "INR"), 1, false))
		require.NoError(t, o.AddItem(second, "Cetirizine", money(t, "12.50", "INR"), 2, false))

		items := o.Items()
		require.Len(t, items, 2)
		assert.True(t, items[0].MedicineID().IsEqual(first))
		assert.True(t, items[1].MedicineID().IsEqual(second))
		assert.False(t, o.RequiresPrescription())
	})

	t.Run("should reject non positive quantity", func(t *testing.T) {
		o := newOrder(t)
		medicineID := kernel.NewUUID()

		require.Error(t, o.AddItem(medicineID, "Paracetamol", money(t, "35", "INR"), 0, false))
		require.NoError(t, o.AddItem(medicineID, "Paracetamol", money(t, "35", "INR"), 1, false))
		require.Error(t, o.AddItem(medicineID, "Paracetamol", money(t, "35", "INR"), -1, false))

		assert.Equal(t, 1, o.Items()[0].Quantity())
	})
}

func TestOrder_Total(t *testing.T) {
	t.Run("should default to zero INR without items", func(t *testing.T) {
		total := newOrder(t).Total()

		assert.True(t, total.Amount().IsZero())
		assert.Equal(t, "INR", total.Currency())
	})

	t.Run("should sum line totals in the first item's currency", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.AddItem(kernel.NewUUID(), "Paracetamol", money(t, "35.00", "USD"), 3, false))
		require.NoError(t, o.AddItem(kernel.NewUUID(), "Cetirizine", money(t, "12.50", "USD"), 2, false))

		total := o.Total()

		assert.True(t, total.Amount().Equal(decimal.RequireFromString("130.00")))
		assert.Equal(t, "USD", total.Currency())
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should follow the happy path and capture payment", func(t *testing.T) {
		o := newOrder(t)
		eta := time.Date(2026, 1, 2, 15, 0, 0, 0, time.FixedZone("IST", 19800))

		for _, next := range []order.Status{order.Approved, order.Preparing, order.ReadyForDelivery, order.OutForDelivery} {
			require.NoError(t, o.ChangeStatus(next, nil))
			assert.Equal(t, next, o.Status())
			assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		}
		require.NoError(t, o.ChangeStatus(order.Completed, &eta))

		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, order.PaymentCaptured, o.PaymentStatus())
		require.NotNil(t, o.EstimatedDeliveryAt())
		assert.True(t, o.EstimatedDeliveryAt().Equal(eta))
		assert.Equal(t, time.UTC, o.EstimatedDeliveryAt().Location())
	})

	t.Run("should capture payment regardless of prior payment status", func(t *testing.T) {
		prior := []order.PaymentStatus{
			order.PaymentPending, order.PaymentAuthorized, order.PaymentFailed, order.PaymentRefunded,
		}
		for _, payment := range prior {
			o := restoreOrder(t, order.OutForDelivery, payment)
			require.Equal(t, payment, o.PaymentStatus())

			require.NoError(t, o.ChangeStatus(order.Completed, nil))

			assert.Equal(t, order.PaymentCaptured, o.PaymentStatus(), payment.String())
		}
	})

	t.Run("should reject every transition from a terminal status", func(t *testing.T) {
		for _, terminal := range []order.Status{order.Completed, order.Cancelled} {
			o := newOrderIn(t, terminal)
			for _, next := range order.Statuses()[1:] {
				assert.ErrorIs(t, o.ChangeStatus(next, nil), order.ErrAlreadyFinalized)
			}
			assert.Equal(t, terminal, o.Status())
		}
	})

	t.Run("should reject edges outside the table without side effects", func(t *testing.T) {
		o := newOrder(t)
		eta := time.Now()

		err := o.ChangeStatus(order.Completed, &eta)

		assert.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.EstimatedDeliveryAt())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	})

	t.Run("should reject Pending target", func(t *testing.T) {
		o := newOrder(t)

		assert.ErrorIs(t, o.ChangeStatus(order.Pending, nil), order.ErrStatusInvalid)
	})
}

func TestOrder_ApplyPrescriptionDecision(t *testing.T) {
	tests := []struct {
		name     string
		current  order.Status
		decision order.PrescriptionStatus
		want     order.Status
	}{
		{"approve pending", order.Pending, order.PrescriptionApproved, order.Approved},
		{"approve awaiting", order.AwaitingPrescriptionReview, order.PrescriptionApproved, order.Approved},
		{"approve preparing goes back to review", order.Preparing, order.PrescriptionApproved, order.AwaitingPrescriptionReview},
		{"reject pending", order.Pending, order.PrescriptionRejected, order.Rejected},
		{"reject regardless of prior status", order.OutForDelivery, order.PrescriptionRejected, order.Rejected},
		{"in review", order.Pending, order.PrescriptionInReview, order.AwaitingPrescriptionReview},
		{"pending decision", order.Approved, order.PrescriptionPending, order.AwaitingPrescriptionReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrderIn(t, tt.current)

			require.NoError(t, o.ApplyPrescriptionDecision(tt.decision, " looks fine "))

			assert.Equal(t, tt.want, o.Status())
			assert.Equal(t, tt.decision, o.Prescription().Status())
			assert.Equal(t, "looks fine", o.Prescription().PharmacistNotes())
			assert.True(t, order.IsReachable(o.Status()))
		})
	}

	t.Run("should fail without prescription", func(t *testing.T) {
		o := newOrder(t)

		assert.ErrorIs(t, o.ApplyPrescriptionDecision(order.PrescriptionApproved, ""), order.ErrPrescriptionMissing)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should reject unknown decision", func(t *testing.T) {
		o := newOrderIn(t, order.Pending)

		err := o.ApplyPrescriptionDecision(order.PrescriptionStatus(9), "")

		assert.ErrorIs(t, err, order.ErrPrescriptionStatusInvalid)
		assert.Equal(t, order.PrescriptionPending, o.Prescription().Status())
	})
}

func TestOrder_AttachPrescription(t *testing.T) {
	o := newOrder(t)
	p, err := order.NewPrescription(kernel.NewUUID(), "rx.pdf", "prescriptions/1/rx.pdf")
	require.NoError(t, err)

	require.NoError(t, o.AttachPrescription(p))
	assert.Same(t, p, o.Prescription())
	assert.Equal(t, order.PrescriptionPending, o.Prescription().Status())

	other, _ := order.NewPrescription(kernel.NewUUID(), "rx2.pdf", "prescriptions/1/rx2.pdf")
	assert.Error(t, o.AttachPrescription(other))
	assert.Error(t, o.AttachPrescription(nil))
}

func TestRestoreOrder_RejectsDuplicateMedicines(t *testing.T) {
	o := newOrder(t)
	medicineID := kernel.NewUUID()
	a, err := order.NewItem(kernel.NewUUID(), medicineID, "Paracetamol", 1, money(t, "1", "INR"), false)
	require.NoError(t, err)
	b, err := order.NewItem(kernel.NewUUID(), medicineID, "Paracetamol", 2, money(t, "1", "INR"), false)
	require.NoError(t, err)

	_, err = order.RestoreOrder(order.OrderState{
		ID:               o.ID(),
		OrderNumber:      o.OrderNumber(),
		CustomerID:       o.CustomerID(),
		PharmacyID:       o.PharmacyID(),
		DeliveryAddress:  o.DeliveryAddress(),
		DeliveryLocation: o.DeliveryLocation(),
		PaymentMethod:    order.CashOnDelivery,
		PaymentStatus:    order.PaymentPending,
		Status:           order.Pending,
		Items:            []*order.Item{a, b},
	})

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
