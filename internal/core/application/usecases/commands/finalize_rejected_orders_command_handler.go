package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/core/ports"
)

// FinalizeRejectedOrdersCommandHandler cancels stale Rejected orders. Every order
// is cancelled in its own transaction through the regular transition rules.
type FinalizeRejectedOrdersCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewFinalizeRejectedOrdersCommandHandler creates the handler.
func NewFinalizeRejectedOrdersCommandHandler(uowFactory FulfillmentUoWFactory) FinalizeRejectedOrdersCommandHandler {
	return FinalizeRejectedOrdersCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of cancelled orders. Orders that left Rejected or
// were rejected again after the cutoff are skipped. Failures of single orders
// do not stop the batch; they are joined into the returned error.
func (h *FinalizeRejectedOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd FinalizeRejectedOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	refs, err := h.uowFactory.Create().OrderRepository().
		ListIDsInStatusSince(ctx, order.Rejected, cmd.Cutoff(), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	cancelled := 0
	var failures []error
	for _, ref := range refs {
		if err = ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}

		done, err := h.finalize(ctx, ref, cmd.Cutoff())
		if err != nil {
			failures = append(failures, fmt.Errorf("order %s: %w", ref.ID, err))
			continue
		}
		if done {
			cancelled++
		}
	}

	return cancelled, errors.Join(failures...)
}

// finalize cancels one order once its row is locked. The listing ran outside
// that lock, so status and age are checked again here.
func (h *FinalizeRejectedOrdersCommandHandler) finalize(
	ctx context.Context,
	ref ports.OrderRef,
	cutoff time.Time,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, ref.ID, ref.PharmacyID)
	if err != nil {
		return false, notFoundAsReason(err)
	}

	if o.Status() != order.Rejected || o.UpdatedAt().After(cutoff) {
		return false, nil
	}

	if err = o.ChangeStatus(order.Cancelled, nil); err != nil {
		return false, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	return true, uow.Commit(ctx)
}
