// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read the tables directly and return read models, not aggregates.
package queries

import (
	"context"
	"fmt"
	"time"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderDetails is the read model of an order shown to customers and pharmacy staff.
type OrderDetails struct {
	ID                  kernel.UUID
	OrderNumber         kernel.UUID
	CustomerID          kernel.UUID
	PharmacyID          kernel.UUID
	DeliveryAddress     kernel.Address
	DeliveryLocation    kernel.GeoCoordinate
	Total               kernel.Money
	PaymentMethod       order.PaymentMethod
	PaymentStatus       order.PaymentStatus
	Status              order.Status
	CreatedAt           time.Time
	EstimatedDeliveryAt *time.Time
	Items               []OrderItemDetails
	Prescription        *PrescriptionDetails
}

// OrderItemDetails is one line of OrderDetails with its computed line total.
type OrderItemDetails struct {
	ID                   kernel.UUID
	MedicineID           kernel.UUID
	MedicineName         string
	Quantity             int
	UnitPrice            kernel.Money
	LineTotal            kernel.Money
	RequiresPrescription bool
}

// PrescriptionDetails describes the prescription attached to an order.
type PrescriptionDetails struct {
	FileName        string
	Status          order.PrescriptionStatus
	PharmacistNotes string
}

// orderReader loads OrderDetails with three statements: orders, their items and
// their prescriptions.
type orderReader struct {
	db *gorm.DB
}

func (r orderReader) find(ctx context.Context, where string, args ...any) ([]OrderDetails, error) {
	db := r.db.WithContext(ctx)

	details, ids, err := r.findOrders(db, where, args...)
	if err != nil || len(details) == 0 {
		return details, err
	}

	index := make(map[uuid.UUID]*OrderDetails, len(details))
	for i := range details {
		index[ids[i]] = &details[i]
	}

	if err = r.attachItems(db, ids, index); err != nil {
		return nil, err
	}
	if err = r.attachPrescriptions(db, ids, index); err != nil {
		return nil, err
	}

	for i := range details {
		details[i].Total = total(details[i].Items)
	}
	return details, nil
}

func (r orderReader) findOrders(db *gorm.DB, where string, args ...any) ([]OrderDetails, []uuid.UUID, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			pharmacy_id,
			delivery_line1,
			delivery_line2,
			delivery_city,
			delivery_state,
			delivery_country,
			delivery_postal_code,
			delivery_latitude,
			delivery_longitude,
			payment_method,
			payment_status,
			status,
			created_at,
			estimated_delivery_at
		FROM orders
		WHERE `+where+`
		ORDER BY created_at DESC, id
	`, args...).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	details := make([]OrderDetails, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var (
			d                                              OrderDetails
			id, orderNumber, customerID, pharmacyID        uuid.UUID
			line1, line2, city, state, country, postalCode string
			latitude, longitude                            float64
			paymentMethod, paymentStatus, status           int
		)

		if err = rows.Scan(
			&id, &orderNumber, &customerID, &pharmacyID,
			&line1, &line2, &city, &state, &country, &postalCode,
			&latitude, &longitude,
			&paymentMethod, &paymentStatus, &status,
			&d.CreatedAt, &d.EstimatedDeliveryAt,
		); err != nil {
			return nil, nil, err
		}

		if d.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, nil, err
		}
		if d.OrderNumber, err = kernel.UUIDFromBytes(orderNumber[:]); err != nil {
			return nil, nil, err
		}
		if d.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, nil, err
		}
		if d.PharmacyID, err = kernel.UUIDFromBytes(pharmacyID[:]); err != nil {
			return nil, nil, err
		}
		if d.DeliveryAddress, err = kernel.NewAddress(line1, line2, city, state, country, postalCode); err != nil {
			return nil, nil, err
		}
		if d.DeliveryLocation, err = kernel.NewGeoCoordinate(latitude, longitude); err != nil {
			return nil, nil, err
		}

		d.PaymentMethod = order.PaymentMethod(paymentMethod)
		d.PaymentStatus = order.PaymentStatus(paymentStatus)
		d.Status = order.Status(status)
		d.CreatedAt = d.CreatedAt.UTC()
		d.Items = make([]OrderItemDetails, 0)

		details = append(details, d)
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}
	return details, ids, nil
}

func (r orderReader) attachItems(db *gorm.DB, ids []uuid.UUID, index map[uuid.UUID]*OrderDetails) error {
	rows, err := db.Raw(`
		SELECT
			order_id,
			id,
			medicine_id,
			medicine_name,
			quantity,
			unit_price,
			currency,
			requires_prescription
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item                    OrderItemDetails
			orderID, id, medicineID uuid.UUID
			unitPrice               decimal.Decimal
			currency                string
		)

		if err = rows.Scan(&orderID, &id, &medicineID, &item.MedicineName, &item.Quantity,
			&unitPrice, &currency, &item.RequiresPrescription); err != nil {
			return err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return err
		}
		if item.MedicineID, err = kernel.UUIDFromBytes(medicineID[:]); err != nil {
			return err
		}
		if item.UnitPrice, err = kernel.NewMoney(unitPrice, currency); err != nil {
			return err
		}
		item.LineTotal = item.UnitPrice.Times(item.Quantity)

		d, ok := index[orderID]
		if !ok {
			return fmt.Errorf("order item %s references an order outside of the result", item.ID)
		}
		d.Items = append(d.Items, item)
	}

	return rows.Err()
}

func (r orderReader) attachPrescriptions(db *gorm.DB, ids []uuid.UUID, index map[uuid.UUID]*OrderDetails) error {
	rows, err := db.Raw(`
		SELECT
			order_id,
			file_name,
			status,
			pharmacist_notes
		FROM prescriptions
		WHERE order_id IN ?
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID uuid.UUID
			status  int
			p       PrescriptionDetails
		)

		if err = rows.Scan(&orderID, &p.FileName, &status, &p.PharmacistNotes); err != nil {
			return err
		}
		p.Status = order.PrescriptionStatus(status)

		if d, ok := index[orderID]; ok {
			d.Prescription = &p
		}
	}

	return rows.Err()
}

// total sums the line totals; the currency is the one of the first line.
func total(items []OrderItemDetails) kernel.Money {
	if len(items) == 0 {
		return kernel.ZeroMoney(kernel.DefaultCurrency)
	}

	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal.Amount())
	}

	m, err := kernel.NewMoney(sum, items[0].UnitPrice.Currency())
	if err != nil {
		return kernel.ZeroMoney(items[0].UnitPrice.Currency())
	}
	return m
}
