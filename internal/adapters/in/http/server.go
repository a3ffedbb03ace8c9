package http

import (
	"context"
	"log/slog"
	"net/http"

	"epharmacy/internal/core/application/usecases/commands"
	"epharmacy/internal/core/application/usecases/queries"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Use case contracts the server depends on.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.OrderSummary, error)
	}

	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) error
	}

	ReviewPrescriptionHandler interface {
		Handle(ctx context.Context, cmd commands.ReviewPrescriptionCommand) error
	}

	CustomerOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetCustomerOrdersQuery) ([]queries.OrderDetails, error)
	}

	PharmacyOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetPharmacyOrdersQuery) ([]queries.OrderDetails, error)
	}
)

// Server handles the HTTP requests of api/openapi.yaml.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler        CreateOrderHandler
	updateOrderStatusHandler  UpdateOrderStatusHandler
	reviewPrescriptionHandler ReviewPrescriptionHandler

	// Query handlers
	customerOrdersHandler CustomerOrdersHandler
	pharmacyOrdersHandler PharmacyOrdersHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler CreateOrderHandler,
	updateOrderStatusHandler UpdateOrderStatusHandler,
	reviewPrescriptionHandler ReviewPrescriptionHandler,
	customerOrdersHandler CustomerOrdersHandler,
	pharmacyOrdersHandler PharmacyOrdersHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		updateOrderStatusHandler:  updateOrderStatusHandler,
		reviewPrescriptionHandler: reviewPrescriptionHandler,
		customerOrdersHandler:     customerOrdersHandler,
		pharmacyOrdersHandler:     pharmacyOrdersHandler,
		logger:                    logger.With("component", "http"),
	}
}

// NewEcho builds the echo instance serving s. Requests under /api/v1 need the
// identity headers and are validated against doc; multipart bodies are checked
// by the handlers only.
func NewEcho(s *Server, doc *openapi3.T) (*echo.Echo, error) {
	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", identity, validator)
	RegisterHandlers(v1, s)

	return e, nil
}
