package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"
)

const maxPrescriptionFileNameLength = 255

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrPrescriptionContentIsRequired = errs.NewValueIsRequiredError("prescription content")
)

// OrderLine is one requested (medicine, quantity) pair.
type OrderLine struct {
	MedicineID kernel.UUID
	Quantity   int
}

// PrescriptionUpload is a prescription file sent together with an order.
type PrescriptionUpload struct {
	FileName string
	Content  []byte
}

// CreateOrderCommand represents a customer's request to place an order with a pharmacy.
//
// Only the shape of the input is validated here. Item count, quantities, stock and the
// payment method are business rules checked by the handler in a fixed order.
//
// Example:
//
//	address, _ := kernel.NewAddress("12 MG Road", "", "Bengaluru", "Karnataka", "India", "560001")
//	location, _ := kernel.NewGeoCoordinate(12.9716, 77.5946)
//	cmd, err := NewCreateOrderCommand(customerID, pharmacyID, address, location, order.CashOnDelivery,
//	    []OrderLine{{MedicineID: paracetamolID, Quantity: 3}}, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	summary, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID    kernel.UUID
	pharmacyID    kernel.UUID
	address       kernel.Address
	location      kernel.GeoCoordinate
	paymentMethod order.PaymentMethod
	lines         []OrderLine
	prescription  *PrescriptionUpload

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place an order. The prescription is
// optional; its file name is reduced to a base name.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	pharmacyID kernel.UUID,
	address kernel.Address,
	location kernel.GeoCoordinate,
	paymentMethod order.PaymentMethod,
	lines []OrderLine,
	prescription *PrescriptionUpload,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		paymentMethod: paymentMethod,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setPharmacyID(pharmacyID),
		cmd.setDelivery(address, location),
		cmd.setLines(lines),
		cmd.setPrescription(prescription),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.UUID            { return c.customerID }
func (c CreateOrderCommand) PharmacyID() kernel.UUID            { return c.pharmacyID }
func (c CreateOrderCommand) Address() kernel.Address            { return c.address }
func (c CreateOrderCommand) Location() kernel.GeoCoordinate     { return c.location }
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }
func (c CreateOrderCommand) Prescription() *PrescriptionUpload  { return c.prescription }

// Lines returns a copy of the requested lines in input order.
func (c CreateOrderCommand) Lines() []OrderLine {
	out := make([]OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// MedicineIDs returns the distinct requested medicine ids in input order.
func (c CreateOrderCommand) MedicineIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(c.lines))
	ids := make([]kernel.UUID, 0, len(c.lines))
	for _, line := range c.lines {
		if _, ok := seen[line.MedicineID]; ok {
			continue
		}
		seen[line.MedicineID] = struct{}{}
		ids = append(ids, line.MedicineID)
	}
	return ids
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setPharmacyID(pharmacyID kernel.UUID) error {
	if err := pharmacyID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pharmacyID", err)
	}
	c.pharmacyID = pharmacyID
	return nil
}

func (c *CreateOrderCommand) setDelivery(address kernel.Address, location kernel.GeoCoordinate) error {
	if err := errors.Join(address.Validate(), location.Validate()); err != nil {
		return err
	}
	c.address = address
	c.location = location
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	for i, line := range lines {
		if err := line.MedicineID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("items[%d].medicineId", i), err)
		}
	}
	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CreateOrderCommand) setPrescription(upload *PrescriptionUpload) error {
	if upload == nil {
		return nil
	}

	name := filepath.Base(strings.ReplaceAll(strings.TrimSpace(upload.FileName), `\`, "/"))
	if name == "" || name == "." || name == "/" || name == ".." {
		return errs.NewValueIsRequiredError("prescription file name")
	}
	if len(name) > maxPrescriptionFileNameLength {
		return errs.NewValueIsInvalidErrorWithCause("prescription file name",
			fmt.Errorf("longer than %d bytes", maxPrescriptionFileNameLength))
	}
	if len(upload.Content) == 0 {
		return ErrPrescriptionContentIsRequired
	}

	c.prescription = &PrescriptionUpload{
		FileName: name,
		Content:  upload.Content,
	}
	return nil
}
