package http

import (
	"time"

	"epharmacy/internal/core/application/usecases/commands"
	"epharmacy/internal/core/application/usecases/queries"
	"epharmacy/internal/core/domain/model/kernel"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Request and response bodies of api/openapi.yaml.

type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type NewOrderItem struct {
	MedicineID openapi_types.UUID `json:"medicineId"`
	Quantity   int                `json:"quantity"`
}

type NewOrder struct {
	PharmacyID       openapi_types.UUID `json:"pharmacyId"`
	Items            []NewOrderItem     `json:"items"`
	DeliveryAddress  Address            `json:"deliveryAddress"`
	DeliveryLocation Location           `json:"deliveryLocation"`
	PaymentMethod    string             `json:"paymentMethod"`
}

type OrderSummary struct {
	ID            openapi_types.UUID `json:"id"`
	OrderNumber   openapi_types.UUID `json:"orderNumber"`
	Total         Money              `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
	PaymentStatus string             `json:"paymentStatus"`
	Status        string             `json:"status"`
}

type Order struct {
	ID                  openapi_types.UUID `json:"id"`
	OrderNumber         openapi_types.UUID `json:"orderNumber"`
	CustomerID          openapi_types.UUID `json:"customerId"`
	PharmacyID          openapi_types.UUID `json:"pharmacyId"`
	DeliveryAddress     Address            `json:"deliveryAddress"`
	DeliveryLocation    Location           `json:"deliveryLocation"`
	Total               Money              `json:"total"`
	PaymentMethod       string             `json:"paymentMethod"`
	PaymentStatus       string             `json:"paymentStatus"`
	Status              string             `json:"status"`
	CreatedAt           time.Time          `json:"createdAt"`
	EstimatedDeliveryAt *time.Time         `json:"estimatedDeliveryAt,omitempty"`
	Items               []OrderItem        `json:"items"`
	Prescription        *Prescription      `json:"prescription,omitempty"`
}

type OrderItem struct {
	ID                   openapi_types.UUID `json:"id"`
	MedicineID           openapi_types.UUID `json:"medicineId"`
	MedicineName         string             `json:"medicineName"`
	Quantity             int                `json:"quantity"`
	UnitPrice            Money              `json:"unitPrice"`
	LineTotal            Money              `json:"lineTotal"`
	RequiresPrescription bool               `json:"requiresPrescription"`
}

type Prescription struct {
	FileName        string `json:"fileName"`
	Status          string `json:"status"`
	PharmacistNotes string `json:"pharmacistNotes,omitempty"`
}

type StatusChange struct {
	Status              string     `json:"status"`
	EstimatedDeliveryAt *time.Time `json:"estimatedDeliveryAt,omitempty"`
}

type PrescriptionReview struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes,omitempty"`
}

// Error lists reason codes, or validation messages for malformed input.
type Error struct {
	Errors []string `json:"errors"`
}

type GetPharmacyOrdersParams struct {
	Status *string
}

type UpdateOrderStatusParams struct {
	PharmacyID openapi_types.UUID
}

type ReviewPrescriptionParams struct {
	PharmacyID openapi_types.UUID
}

func toMoney(m kernel.Money) Money {
	return Money{
		Amount:   m.Amount().StringFixed(2),
		Currency: m.Currency(),
	}
}

func toAddress(a kernel.Address) Address {
	return Address{
		Line1:      a.Line1(),
		Line2:      a.Line2(),
		City:       a.City(),
		State:      a.State(),
		Country:    a.Country(),
		PostalCode: a.PostalCode(),
	}
}

func toLocation(c kernel.GeoCoordinate) Location {
	return Location{
		Latitude:  c.Latitude(),
		Longitude: c.Longitude(),
	}
}

func toOrderSummary(s commands.OrderSummary) OrderSummary {
	return OrderSummary{
		ID:            s.ID.Bytes(),
		OrderNumber:   s.OrderNumber.Bytes(),
		Total:         toMoney(s.Total),
		PaymentMethod: s.PaymentMethod.String(),
		PaymentStatus: s.PaymentStatus.String(),
		Status:        s.Status.String(),
	}
}

func toOrders(details []queries.OrderDetails) []Order {
	response := make([]Order, len(details))
	for i, d := range details {
		items := make([]OrderItem, len(d.Items))
		for j, item := range d.Items {
			items[j] = OrderItem{
				ID:                   item.ID.Bytes(),
				MedicineID:           item.MedicineID.Bytes(),
				MedicineName:         item.MedicineName,
				Quantity:             item.Quantity,
				UnitPrice:            toMoney(item.UnitPrice),
				LineTotal:            toMoney(item.LineTotal),
				RequiresPrescription: item.RequiresPrescription,
			}
		}

		var prescription *Prescription
		if d.Prescription != nil {
			prescription = &Prescription{
				FileName:        d.Prescription.FileName,
				Status:          d.Prescription.Status.String(),
				PharmacistNotes: d.Prescription.PharmacistNotes,
			}
		}

		response[i] = Order{
			ID:                  d.ID.Bytes(),
			OrderNumber:         d.OrderNumber.Bytes(),
			CustomerID:          d.CustomerID.Bytes(),
			PharmacyID:          d.PharmacyID.Bytes(),
			DeliveryAddress:     toAddress(d.DeliveryAddress),
			DeliveryLocation:    toLocation(d.DeliveryLocation),
			Total:               toMoney(d.Total),
			PaymentMethod:       d.PaymentMethod.String(),
			PaymentStatus:       d.PaymentStatus.String(),
			Status:              d.Status.String(),
			CreatedAt:           d.CreatedAt,
			EstimatedDeliveryAt: d.EstimatedDeliveryAt,
			Items:               items,
			Prescription:        prescription,
		}
	}
	return response
}
