package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"epharmacy/internal/core/application/usecases/commands"
	"epharmacy/internal/core/application/usecases/queries"
	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	orderFormField        = "order"
	prescriptionFormField = "prescription"
	maxPrescriptionSize   = 10 << 20
)

// CreateOrder handles POST /api/v1/orders - places an order for the caller.
func (s *Server) CreateOrder(ctx echo.Context) error {
	body, upload, err := readNewOrder(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := newCreateOrderCommand(requesterOf(ctx).UserID, body, upload)
	if err != nil {
		return s.fail(ctx, err)
	}

	summary, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderSummary(summary))
}

// GetMyOrders handles GET /api/v1/orders/my - lists the caller's orders.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	query, err := queries.NewGetCustomerOrdersQuery(requesterOf(ctx).UserID)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.customerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrders(orders))
}

// GetPharmacyOrders handles GET /api/v1/pharmacies/{pharmacyId}/orders.
func (s *Server) GetPharmacyOrders(
	ctx echo.Context,
	pharmacyID openapi_types.UUID,
	params GetPharmacyOrdersParams,
) error {
	var status *order.Status
	if params.Status != nil {
		parsed, err := order.ParseStatus(*params.Status)
		if err != nil {
			return s.fail(ctx, order.ErrStatusInvalid)
		}
		status = &parsed
	}

	requester := requesterOf(ctx)
	query, err := queries.NewGetPharmacyOrdersQuery(toKernelUUID(pharmacyID), requester.UserID, requester.IsAdmin,
		status)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.pharmacyOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrders(orders))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(
	ctx echo.Context,
	orderID openapi_types.UUID,
	params UpdateOrderStatusParams,
) error {
	var body StatusChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, order.ErrStatusInvalid)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(toKernelUUID(orderID), toKernelUUID(params.PharmacyID),
		requesterOf(ctx), status, body.EstimatedDeliveryAt)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReviewPrescription handles POST /api/v1/orders/{orderId}/prescription/review.
func (s *Server) ReviewPrescription(
	ctx echo.Context,
	orderID openapi_types.UUID,
	params ReviewPrescriptionParams,
) error {
	var body PrescriptionReview
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	decision, err := order.ParsePrescriptionStatus(body.Decision)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewReviewPrescriptionCommand(toKernelUUID(orderID), toKernelUUID(params.PharmacyID),
		requesterOf(ctx), decision, body.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.reviewPrescriptionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// readNewOrder accepts either a JSON body or a multipart form carrying the
// order JSON and an optional prescription file.
func readNewOrder(ctx echo.Context) (NewOrder, *commands.PrescriptionUpload, error) {
	var body NewOrder

	contentType := ctx.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		if err := ctx.Bind(&body); err != nil {
			return NewOrder{}, nil, errors.New("invalid request body")
		}
		return body, nil, nil
	}

	raw := ctx.FormValue(orderFormField)
	if raw == "" {
		return NewOrder{}, nil, fmt.Errorf("form field %q is required", orderFormField)
	}
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return NewOrder{}, nil, fmt.Errorf("form field %q is not a valid order", orderFormField)
	}

	header, err := ctx.FormFile(prescriptionFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return body, nil, nil
	}
	if err != nil {
		return NewOrder{}, nil, fmt.Errorf("form file %q cannot be read", prescriptionFormField)
	}

	file, err := header.Open()
	if err != nil {
		return NewOrder{}, nil, fmt.Errorf("form file %q cannot be read", prescriptionFormField)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxPrescriptionSize+1))
	if err != nil {
		return NewOrder{}, nil, fmt.Errorf("form file %q cannot be read", prescriptionFormField)
	}
	if len(content) > maxPrescriptionSize {
		return NewOrder{}, nil, fmt.Errorf("form file %q exceeds %d bytes", prescriptionFormField, maxPrescriptionSize)
	}

	return body, &commands.PrescriptionUpload{FileName: header.Filename, Content: content}, nil
}

func newCreateOrderCommand(
	customerID kernel.UUID,
	body NewOrder,
	upload *commands.PrescriptionUpload,
) (commands.CreateOrderCommand, error) {
	lines := make([]commands.OrderLine, 0, len(body.Items))
	for _, item := range body.Items {
		lines = append(lines, commands.OrderLine{MedicineID: toKernelUUID(item.MedicineID), Quantity: item.Quantity})
	}

	a := body.DeliveryAddress
	address, addressErr := kernel.NewAddress(a.Line1, a.Line2, a.City, a.State, a.Country, a.PostalCode)
	location, locationErr := kernel.NewGeoCoordinate(body.DeliveryLocation.Latitude, body.DeliveryLocation.Longitude)
	if err := errors.Join(addressErr, locationErr); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	// Unknown names map to PaymentMethodUnknown, which placement refuses as unsupported.
	method, _ := order.ParsePaymentMethod(body.PaymentMethod)

	return commands.NewCreateOrderCommand(customerID, toKernelUUID(body.PharmacyID), address, location, method,
		lines, upload)
}

// toKernelUUID maps the nil UUID to the zero kernel.UUID, which the command and
// query constructors reject.
func toKernelUUID(id openapi_types.UUID) kernel.UUID {
	u, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}
	}
	return u
}
