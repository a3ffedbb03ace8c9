package commands

import (
	"context"
)

// ReviewPrescriptionCommandHandler records prescription decisions and cascades
// them into the order status. Authorization and lookup follow
// UpdateOrderStatusCommandHandler; an order without prescription yields
// order.ErrPrescriptionMissing.
type ReviewPrescriptionCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewReviewPrescriptionCommandHandler creates the handler.
func NewReviewPrescriptionCommandHandler(uowFactory FulfillmentUoWFactory) ReviewPrescriptionCommandHandler {
	return ReviewPrescriptionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the review.
func (h *ReviewPrescriptionCommandHandler) Handle(ctx context.Context, cmd ReviewPrescriptionCommand) error {
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

	if err = o.ApplyPrescriptionDecision(cmd.Decision(), cmd.Notes()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
