package order

import (
	"errors"
	"time"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder constructors.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a customer order placed with one pharmacy. It is the aggregate root
// owning its line items and the optional prescription; neither is reachable
// other than through the order.
//
// Order follows these invariants:
//   - id and orderNumber are distinct valid identifiers
//   - every item quantity is positive and each medicine appears at most once
//   - status only changes through ChangeStatus or ApplyPrescriptionDecision
//   - payment is Captured once the order is Completed
type Order struct {
	id          kernel.UUID
	orderNumber kernel.UUID
	customerID  kernel.UUID
	pharmacyID  kernel.UUID

	deliveryAddress  kernel.Address
	deliveryLocation kernel.GeoCoordinate

	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	status        Status

	estimatedDeliveryAt *time.Time

	items        []*Item
	prescription *Prescription

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an empty Pending order with a Pending payment. Items and the
// prescription are added afterwards by AddItem and AttachPrescription.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), customerID, pharmacyID,
//	    address, location, order.CashOnDelivery)
//	if err != nil {
//	    // invalid identifiers, address or location
//	}
func NewOrder(
	id kernel.UUID,
	orderNumber kernel.UUID,
	customerID kernel.UUID,
	pharmacyID kernel.UUID,
	deliveryAddress kernel.Address,
	deliveryLocation kernel.GeoCoordinate,
	paymentMethod PaymentMethod,
) (*Order, error) {
	now := time.Now().UTC()
	return RestoreOrder(OrderState{
		ID:               id,
		OrderNumber:      orderNumber,
		CustomerID:       customerID,
		PharmacyID:       pharmacyID,
		DeliveryAddress:  deliveryAddress,
		DeliveryLocation: deliveryLocation,
		PaymentMethod:    paymentMethod,
		PaymentStatus:    PaymentPending,
		Status:           Pending,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
}

// OrderState carries every persisted attribute of an order. It is used by
// repositories to rebuild the aggregate through RestoreOrder.
type OrderState struct {
	ID                  kernel.UUID
	OrderNumber         kernel.UUID
	CustomerID          kernel.UUID
	PharmacyID          kernel.UUID
	DeliveryAddress     kernel.Address
	DeliveryLocation    kernel.GeoCoordinate
	PaymentMethod       PaymentMethod
	PaymentStatus       PaymentStatus
	Status              Status
	EstimatedDeliveryAt *time.Time
	Items               []*Item
	Prescription        *Prescription
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RestoreOrder rebuilds an order from persisted state.
func RestoreOrder(state OrderState) (*Order, error) {
	o := &Order{
		estimatedDeliveryAt: state.EstimatedDeliveryAt,
		createdAt:           state.CreatedAt,
		updatedAt:           state.UpdatedAt,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(state.ID),
		o.setOrderNumber(state.OrderNumber),
		o.setCustomerID(state.CustomerID),
		o.setPharmacyID(state.PharmacyID),
		o.setDelivery(state.DeliveryAddress, state.DeliveryLocation),
		o.setPaymentMethod(state.PaymentMethod),
		o.setPaymentStatus(state.PaymentStatus),
		o.setStatus(state.Status),
		o.setItems(state.Items),
		o.setPrescription(state.Prescription),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                        { return o.id }
func (o *Order) OrderNumber() kernel.UUID               { return o.orderNumber }
func (o *Order) CustomerID() kernel.UUID                { return o.customerID }
func (o *Order) PharmacyID() kernel.UUID                { return o.pharmacyID }
func (o *Order) DeliveryAddress() kernel.Address        { return o.deliveryAddress }
func (o *Order) DeliveryLocation() kernel.GeoCoordinate { return o.deliveryLocation }
func (o *Order) PaymentMethod() PaymentMethod           { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus           { return o.paymentStatus }
func (o *Order) Status() Status                         { return o.status }
func (o *Order) EstimatedDeliveryAt() *time.Time        { return o.estimatedDeliveryAt }
func (o *Order) Prescription() *Prescription            { return o.prescription }
func (o *Order) CreatedAt() time.Time                   { return o.createdAt }
func (o *Order) UpdatedAt() time.Time                   { return o.updatedAt }

// Items returns a copy of the line item slice in insertion order.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

// RequiresPrescription reports whether any line needs a prescription.
func (o *Order) RequiresPrescription() bool {
	for _, item := range o.items {
		if item.requiresPrescription {
			return true
		}
	}
	return false
}

// Total is the sum of line totals. The currency is the first line's currency, or
// kernel.DefaultCurrency for an order without items. No conversion is applied.
func (o *Order) Total() kernel.Money {
	if len(o.items) == 0 {
		return kernel.ZeroMoney(kernel.DefaultCurrency)
	}

	sum := decimal.Zero
	for _, item := range o.items {
		sum = sum.Add(item.LineTotal().Amount())
	}

	total, err := kernel.NewMoney(sum, o.items[0].unitPrice.Currency())
	if err != nil {
		return kernel.ZeroMoney(o.items[0].unitPrice.Currency())
	}
	return total
}

// AddItem adds a snapshot of a medicine to the order. Ordering a medicine that
// is already present merges into the existing line: quantities are summed and
// the prescription flag is OR-ed. Name and price of the first line are kept.
func (o *Order) AddItem(
	medicineID kernel.UUID,
	medicineName string,
	unitPrice kernel.Money,
	quantity int,
	requiresPrescription bool,
) error {
	for _, existing := range o.items {
		if existing.medicineID.IsEqual(medicineID) {
			if quantity <= 0 {
				return errs.NewValueIsInvalidError("quantity")
			}
			if err := existing.merge(quantity, requiresPrescription); err != nil {
				return err
			}
			o.touch()
			return nil
		}
	}

	item, err := NewItem(kernel.NewUUID(), medicineID, medicineName, quantity, unitPrice, requiresPrescription)
	if err != nil {
		return err
	}
	o.items = append(o.items, item)
	o.touch()
	return nil
}

// AttachPrescription sets the order's prescription. An order has at most one.
func (o *Order) AttachPrescription(prescription *Prescription) error {
	if err := prescription.Validate(); err != nil {
		return err
	}
	if o.prescription != nil {
		return errs.NewValueIsInvalidError("prescription is already attached")
	}
	o.prescription = prescription
	o.touch()
	return nil
}

// ChangeStatus moves the order along the transition table.
//
// Returns:
//   - ErrStatusInvalid if next is Pending or not a defined status
//   - ErrAlreadyFinalized if the order is Completed or Cancelled
//   - ErrInvalidTransition if the table has no current -> next edge
//
// On success the ETA is recorded when given, and completing the order forces the
// payment status to Captured.
func (o *Order) ChangeStatus(next Status, estimatedDeliveryAt *time.Time) error {
	if err := o.status.ValidateTransition(next); err != nil {
		return err
	}
	if err := ensureReachable(next); err != nil {
		return err
	}

	o.status = next
	if estimatedDeliveryAt != nil {
		eta := estimatedDeliveryAt.UTC()
		o.estimatedDeliveryAt = &eta
	}
	if next == Completed {
		o.paymentStatus = PaymentCaptured
	}
	o.touch()
	return nil
}

// ApplyPrescriptionDecision records the review outcome on the prescription and
// cascades it into the order status, independently of the transition table:
//   - Approved moves a Pending or AwaitingPrescriptionReview order to Approved
//   - Rejected moves the order to Rejected whatever its status
//   - any other outcome moves the order to AwaitingPrescriptionReview
func (o *Order) ApplyPrescriptionDecision(decision PrescriptionStatus, notes string) error {
	if o.prescription == nil {
		return ErrPrescriptionMissing
	}
	if err := decision.Validate(); err != nil {
		return err
	}

	next := cascadeStatus(o.status, decision)
	if err := ensureReachable(next); err != nil {
		return err
	}
	if err := o.prescription.setReview(decision, notes); err != nil {
		return err
	}

	o.status = next
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber kernel.UUID) error {
	if err := orderNumber.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderNumber", err)
	}
	if orderNumber.IsEqual(o.id) {
		return errs.NewValueIsInvalidError("orderNumber must differ from order id")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setPharmacyID(pharmacyID kernel.UUID) error {
	if err := pharmacyID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pharmacyID", err)
	}
	o.pharmacyID = pharmacyID
	return nil
}

func (o *Order) setDelivery(address kernel.Address, location kernel.GeoCoordinate) error {
	if err := errors.Join(address.Validate(), location.Validate()); err != nil {
		return err
	}
	o.deliveryAddress = address
	o.deliveryLocation = location
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if !method.IsSupported() {
		return ErrPaymentMethodNotSupported
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setItems(items []*Item) error {
	seen := make(map[kernel.UUID]struct{}, len(items))
	out := make([]*Item, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.medicineID]; dup {
			return errs.NewValueIsInvalidError("items contain a medicine twice")
		}
		seen[item.medicineID] = struct{}{}
		out = append(out, item)
	}
	o.items = out
	return nil
}

func (o *Order) setPrescription(prescription *Prescription) error {
	if prescription == nil {
		return nil
	}
	if err := prescription.Validate(); err != nil {
		return err
	}
	o.prescription = prescription
	return nil
}
