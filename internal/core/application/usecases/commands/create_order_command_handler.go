package commands

import (
	"context"
	"path"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/core/domain/services"
	"epharmacy/internal/core/ports"
)

const prescriptionsFolder = "prescriptions"

// CreateOrderCommandHandler places orders. Stock reservation, the order and its
// prescription are persisted in one transaction; any failure leaves the stock
// untouched and no order behind.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, storage)
//	summary, err := handler.Handle(ctx, cmd)
//	if reason, ok := errs.ReasonOf(err); ok {
//	    // rejected with a reason code such as "insufficient_stock"
//	}
type CreateOrderCommandHandler struct {
	uowFactory PlacementUoWFactory
	storage    ports.PrescriptionStorage
	placement  services.OrderPlacement
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory PlacementUoWFactory,
	storage ports.PrescriptionStorage,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
		placement:  services.NewOrderPlacement(),
	}
}

// Handle validates the request against the pharmacy's locked inventory, builds the
// order, decrements stock and uploads the prescription when one is needed.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (OrderSummary, error) {
	if err := cmd.Validate(); err != nil {
		return OrderSummary{}, err
	}

	if !cmd.PaymentMethod().IsSupported() {
		return OrderSummary{}, order.ErrPaymentMethodNotSupported
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderSummary{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pharmacyRepo := uow.PharmacyRepository()
	ph, err := pharmacyRepo.GetForOrder(ctx, cmd.PharmacyID(), cmd.MedicineIDs())
	if err != nil {
		return OrderSummary{}, err
	}

	o, err := h.placement.Place(ph, placementRequest(cmd))
	if err != nil {
		return OrderSummary{}, err
	}

	if upload := cmd.Prescription(); upload != nil && o.RequiresPrescription() {
		if err = h.attachPrescription(ctx, o, upload); err != nil {
			return OrderSummary{}, err
		}
	}

	if err = pharmacyRepo.UpdateStock(ctx, ph); err != nil {
		return OrderSummary{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return OrderSummary{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderSummary{}, err
	}

	return newOrderSummary(o), nil
}

func (h *CreateOrderCommandHandler) attachPrescription(
	ctx context.Context,
	o *order.Order,
	upload *PrescriptionUpload,
) error {
	folder := path.Join(prescriptionsFolder, o.OrderNumber().String())
	storagePath, err := h.storage.Upload(ctx, upload.Content, upload.FileName, folder)
	if err != nil {
		return err
	}

	prescription, err := order.NewPrescription(kernel.NewUUID(), upload.FileName, storagePath)
	if err != nil {
		return err
	}

	return o.AttachPrescription(prescription)
}

func placementRequest(cmd CreateOrderCommand) services.PlacementRequest {
	lines := cmd.Lines()
	items := make([]services.RequestedItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, services.RequestedItem{
			MedicineID: line.MedicineID,
			Quantity:   line.Quantity,
		})
	}

	return services.PlacementRequest{
		CustomerID:       cmd.CustomerID(),
		DeliveryAddress:  cmd.Address(),
		DeliveryLocation: cmd.Location(),
		PaymentMethod:    cmd.PaymentMethod(),
		Items:            items,
		HasPrescription:  cmd.Prescription() != nil,
	}
}
