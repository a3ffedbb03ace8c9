package commands

import (
	"context"
)

// UpdateOrderStatusCommandHandler applies pharmacist and admin status changes.
//
// The checks run in this order:
//   - membership of a non-admin requester (ErrUnauthorizedPharmacyAccess)
//   - order exists in the pharmacy (ErrOrderNotFound)
//   - terminal lock and transition table (order.ErrAlreadyFinalized, order.ErrInvalidTransition)
//
// The order row is locked while the transition is checked, so two staff members
// racing on the same order see each other's result.
type UpdateOrderStatusCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates the handler.
func NewUpdateOrderStatusCommandHandler(uowFactory FulfillmentUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requester := cmd.Requester()
	if err := authorize(ctx, uow, cmd.PharmacyID(), requester.UserID, requester.IsAdmin); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID(), cmd.PharmacyID())
	if err != nil {
		return notFoundAsReason(err)
	}

	if err = o.ChangeStatus(cmd.Status(), cmd.EstimatedDeliveryAt()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
