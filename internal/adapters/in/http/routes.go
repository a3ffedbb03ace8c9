package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// serverWrapper binds path and query parameters before calling the Server.
type serverWrapper struct {
	handler *Server
}

// RegisterHandlers adds the order routes to router, relative to /api/v1.
func RegisterHandlers(router EchoRouter, s *Server) {
	wrapper := serverWrapper{handler: s}

	router.POST("/orders", wrapper.CreateOrder)
	router.GET("/orders/my", wrapper.GetMyOrders)
	router.GET("/pharmacies/:pharmacyId/orders", wrapper.GetPharmacyOrders)
	router.PATCH("/orders/:orderId/status", wrapper.UpdateOrderStatus)
	router.POST("/orders/:orderId/prescription/review", wrapper.ReviewPrescription)
}

func (w serverWrapper) CreateOrder(ctx echo.Context) error {
	return w.handler.CreateOrder(ctx)
}

func (w serverWrapper) GetMyOrders(ctx echo.Context) error {
	return w.handler.GetMyOrders(ctx)
}

func (w serverWrapper) GetPharmacyOrders(ctx echo.Context) error {
	var pharmacyID openapi_types.UUID
	if err := bindPathUUID(ctx, "pharmacyId", &pharmacyID); err != nil {
		return err
	}

	var params GetPharmacyOrdersParams
	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return invalidParameter("status", err)
	}

	return w.handler.GetPharmacyOrders(ctx, pharmacyID, params)
}

func (w serverWrapper) UpdateOrderStatus(ctx echo.Context) error {
	var orderID openapi_types.UUID
	if err := bindPathUUID(ctx, "orderId", &orderID); err != nil {
		return err
	}

	var params UpdateOrderStatusParams
	if err := bindPharmacyID(ctx, &params.PharmacyID); err != nil {
		return err
	}

	return w.handler.UpdateOrderStatus(ctx, orderID, params)
}

func (w serverWrapper) ReviewPrescription(ctx echo.Context) error {
	var orderID openapi_types.UUID
	if err := bindPathUUID(ctx, "orderId", &orderID); err != nil {
		return err
	}

	var params ReviewPrescriptionParams
	if err := bindPharmacyID(ctx, &params.PharmacyID); err != nil {
		return err
	}

	return w.handler.ReviewPrescription(ctx, orderID, params)
}

func bindPathUUID(ctx echo.Context, name string, dest *openapi_types.UUID) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return invalidParameter(name, err)
	}
	return nil
}

func bindPharmacyID(ctx echo.Context, dest *openapi_types.UUID) error {
	err := runtime.BindQueryParameter("form", true, true, "pharmacyId", ctx.QueryParams(), dest)
	if err != nil {
		return invalidParameter("pharmacyId", err)
	}
	return nil
}

// invalidParameter is rendered by echo's error handler as an Error body.
func invalidParameter(name string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, Error{
		Errors: []string{fmt.Sprintf("Invalid format for parameter %s: %s", name, err)},
	})
}
