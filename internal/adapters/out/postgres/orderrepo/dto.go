// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Orders are stored in three tables: orders, order_items and prescriptions (at most one per order).
package orderrepo

import (
	"time"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure of the order aggregate root.
type OrderDTO struct {
	ID                  uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OrderNumber         uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID          uuid.UUID   `gorm:"type:uuid;not null;index"`
	PharmacyID          uuid.UUID   `gorm:"type:uuid;not null;index"`
	Delivery            DeliveryDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	PaymentMethod       int         `gorm:"not null"`
	PaymentStatus       int         `gorm:"not null"`
	Status              int         `gorm:"not null;index:idx_orders_status_updated_at,priority:1"`
	EstimatedDeliveryAt *time.Time
	Items               []ItemDTO        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Prescription        *PrescriptionDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time        `gorm:"not null;autoCreateTime:false"`
	UpdatedAt           time.Time        `gorm:"not null;autoUpdateTime:false;index:idx_orders_status_updated_at,priority:2"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveryDTO is the embedded delivery address and coordinates of an order.
type DeliveryDTO struct {
	Line1      string  `gorm:"type:varchar(256);not null"`
	Line2      string  `gorm:"type:varchar(256)"`
	City       string  `gorm:"type:varchar(128);not null"`
	State      string  `gorm:"type:varchar(128);not null"`
	Country    string  `gorm:"type:varchar(128);not null"`
	PostalCode string  `gorm:"type:varchar(32);not null"`
	Latitude   float64 `gorm:"type:double precision;not null"`
	Longitude  float64 `gorm:"type:double precision;not null"`
}

// ItemDTO is one line of an order. Position keeps the insertion order.
type ItemDTO struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position             int             `gorm:"not null"`
	MedicineID           uuid.UUID       `gorm:"type:uuid;not null"`
	MedicineName         string          `gorm:"type:varchar(256);not null"`
	Quantity             int             `gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
	UnitPrice            decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency             string          `gorm:"type:varchar(8);not null"`
	RequiresPrescription bool            `gorm:"not null"`
}

// TableName overrides GORM's default naming convention to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

// PrescriptionDTO is the prescription uploaded with an order.
type PrescriptionDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	FileName        string    `gorm:"type:varchar(255);not null"`
	StoragePath     string    `gorm:"type:varchar(1024);not null"`
	Status          int       `gorm:"not null"`
	PharmacistNotes string    `gorm:"type:varchar(512)"`
}

// TableName overrides GORM's default naming convention to use "prescriptions".
func (PrescriptionDTO) TableName() string {
	return "prescriptions"
}

// fromDomain converts an order aggregate to its database representation,
// including items and prescription.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	address := aggregate.DeliveryAddress()
	location := aggregate.DeliveryLocation()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:                   item.ID().Bytes(),
			OrderID:              orderID,
			Position:             i,
			MedicineID:           item.MedicineID().Bytes(),
			MedicineName:         item.MedicineName(),
			Quantity:             item.Quantity(),
			UnitPrice:            item.UnitPrice().Amount(),
			Currency:             item.UnitPrice().Currency(),
			RequiresPrescription: item.RequiresPrescription(),
		})
	}

	return OrderDTO{
		ID:          orderID,
		OrderNumber: aggregate.OrderNumber().Bytes(),
		CustomerID:  aggregate.CustomerID().Bytes(),
		PharmacyID:  aggregate.PharmacyID().Bytes(),
		Delivery: DeliveryDTO{
			Line1:      address.Line1(),
			Line2:      address.Line2(),
			City:       address.City(),
			State:      address.State(),
			Country:    address.Country(),
			PostalCode: address.PostalCode(),
			Latitude:   location.Latitude(),
			Longitude:  location.Longitude(),
		},
		PaymentMethod:       int(aggregate.PaymentMethod()),
		PaymentStatus:       int(aggregate.PaymentStatus()),
		Status:              int(aggregate.Status()),
		EstimatedDeliveryAt: aggregate.EstimatedDeliveryAt(),
		Items:               items,
		Prescription:        prescriptionFromDomain(orderID, aggregate.Prescription()),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
	}
}

func prescriptionFromDomain(orderID uuid.UUID, p *order.Prescription) *PrescriptionDTO {
	if p == nil {
		return nil
	}
	return &PrescriptionDTO{
		ID:              p.ID().Bytes(),
		OrderID:         orderID,
		FileName:        p.FileName(),
		StoragePath:     p.StoragePath(),
		Status:          int(p.Status()),
		PharmacistNotes: p.PharmacistNotes(),
	}
}

// toDomain rebuilds the order aggregate through RestoreOrder. dto.Items must be
// sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	ids, err := uuidsFromBytes(dto.ID, dto.OrderNumber, dto.CustomerID, dto.PharmacyID)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(dto.Delivery.Line1, dto.Delivery.Line2, dto.Delivery.City,
		dto.Delivery.State, dto.Delivery.Country, dto.Delivery.PostalCode)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoCoordinate(dto.Delivery.Latitude, dto.Delivery.Longitude)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var prescription *order.Prescription
	if dto.Prescription != nil {
		if prescription, err = prescriptionToDomain(*dto.Prescription); err != nil {
			return nil, err
		}
	}

	var eta *time.Time
	if dto.EstimatedDeliveryAt != nil {
		utc := dto.EstimatedDeliveryAt.UTC()
		eta = &utc
	}

	return order.RestoreOrder(order.OrderState{
		ID:                  ids[0],
		OrderNumber:         ids[1],
		CustomerID:          ids[2],
		PharmacyID:          ids[3],
		DeliveryAddress:     address,
		DeliveryLocation:    location,
		PaymentMethod:       order.PaymentMethod(dto.PaymentMethod),
		PaymentStatus:       order.PaymentStatus(dto.PaymentStatus),
		Status:              order.Status(dto.Status),
		EstimatedDeliveryAt: eta,
		Items:               items,
		Prescription:        prescription,
		CreatedAt:           dto.CreatedAt.UTC(),
		UpdatedAt:           dto.UpdatedAt.UTC(),
	})
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	ids, err := uuidsFromBytes(dto.ID, dto.MedicineID)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.UnitPrice, dto.Currency)
	if err != nil {
		return nil, err
	}

	return order.NewItem(ids[0], ids[1], dto.MedicineName, dto.Quantity, price, dto.RequiresPrescription)
}

func prescriptionToDomain(dto PrescriptionDTO) (*order.Prescription, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestorePrescription(id, dto.FileName, dto.StoragePath,
		order.PrescriptionStatus(dto.Status), dto.PharmacistNotes)
}

func uuidsFromBytes(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
