package commands

import (
	"errors"
	"time"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// Requester identifies who performs a staff operation. IsAdmin comes from the
// trusted authentication layer and is never derived from the user id.
type Requester struct {
	UserID  kernel.UUID
	IsAdmin bool
}

// UpdateOrderStatusCommand asks to move an order of a pharmacy to a new status.
// Pending is not a valid target and is refused here with order.ErrStatusInvalid.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	pharmacyID          kernel.UUID
	requester           Requester
	status              order.Status
	estimatedDeliveryAt *time.Time

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates the command. A non-admin requester must
// carry a user id.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	pharmacyID kernel.UUID,
	requester Requester,
	status order.Status,
	estimatedDeliveryAt *time.Time,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		estimatedDeliveryAt: estimatedDeliveryAt,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setID(&cmd.orderID, "orderID", orderID),
		setID(&cmd.pharmacyID, "pharmacyID", pharmacyID),
		setRequester(&cmd.requester, requester),
		cmd.setStatus(status),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID            { return c.orderID }
func (c UpdateOrderStatusCommand) PharmacyID() kernel.UUID         { return c.pharmacyID }
func (c UpdateOrderStatusCommand) Requester() Requester            { return c.requester }
func (c UpdateOrderStatusCommand) Status() order.Status            { return c.status }
func (c UpdateOrderStatusCommand) EstimatedDeliveryAt() *time.Time { return c.estimatedDeliveryAt }

func (c *UpdateOrderStatusCommand) setStatus(status order.Status) error {
	if status == order.Pending || status.Validate() != nil {
		return order.ErrStatusInvalid
	}
	c.status = status
	return nil
}

func setID(dst *kernel.UUID, name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	*dst = id
	return nil
}

func setRequester(dst *Requester, requester Requester) error {
	if !requester.IsAdmin {
		if err := requester.UserID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("requesterID", err)
		}
	}
	*dst = requester
	return nil
}
