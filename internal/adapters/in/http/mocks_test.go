package http_test

import (
	"context"

	"epharmacy/internal/core/application/usecases/commands"
	"epharmacy/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(
	ctx context.Context,
	cmd commands.CreateOrderCommand,
) (commands.OrderSummary, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.OrderSummary), args.Error(1)
}

type MockUpdateOrderStatusHandler struct{ mock.Mock }

func (m *MockUpdateOrderStatusHandler) Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockReviewPrescriptionHandler struct{ mock.Mock }

func (m *MockReviewPrescriptionHandler) Handle(ctx context.Context, cmd commands.ReviewPrescriptionCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockCustomerOrdersHandler struct{ mock.Mock }

func (m *MockCustomerOrdersHandler) Handle(
	ctx context.Context,
	query queries.GetCustomerOrdersQuery,
) ([]queries.OrderDetails, error) {
	args := m.Called(ctx, query)
	if details := args.Get(0); details != nil {
		return details.([]queries.OrderDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPharmacyOrdersHandler struct{ mock.Mock }

func (m *MockPharmacyOrdersHandler) Handle(
	ctx context.Context,
	query queries.GetPharmacyOrdersQuery,
) ([]queries.OrderDetails, error) {
	args := m.Called(ctx, query)
	if details := args.Get(0); details != nil {
		return details.([]queries.OrderDetails), args.Error(1)
	}
	return nil, args.Error(1)
}
