package commands_test

import (
	"context"
	"time"

	"epharmacy/internal/core/application/usecases/commands"
	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/core/domain/model/pharmacy"
	"epharmacy/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id, pharmacyID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id, pharmacyID)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListIDsInStatusSince(
	ctx context.Context,
	status order.Status,
	cutoff time.Time,
	limit int,
) ([]ports.OrderRef, error) {
	args := m.Called(ctx, status, cutoff, limit)
	if refs := args.Get(0); refs != nil {
		return refs.([]ports.OrderRef), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPharmacyRepository struct{ mock.Mock }

func (m *MockPharmacyRepository) Add(ctx context.Context, p *pharmacy.Pharmacy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPharmacyRepository) GetForOrder(
	ctx context.Context,
	id kernel.UUID,
	medicineIDs []kernel.UUID,
) (*pharmacy.Pharmacy, error) {
	args := m.Called(ctx, id, medicineIDs)
	if p := args.Get(0); p != nil {
		return p.(*pharmacy.Pharmacy), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPharmacyRepository) UpdateStock(ctx context.Context, p *pharmacy.Pharmacy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockMembershipRepository struct{ mock.Mock }

func (m *MockMembershipRepository) Add(ctx context.Context, membership *pharmacy.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) ExistsActive(ctx context.Context, pharmacyID, userID kernel.UUID) (bool, error) {
	args := m.Called(ctx, pharmacyID, userID)
	return args.Bool(0), args.Error(1)
}

type MockPlacementUoW struct{ mock.Mock }

func (m *MockPlacementUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPlacementUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPlacementUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlacementUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockPlacementUoW) PharmacyRepository() ports.PharmacyRepository {
	args := m.Called()
	return args.Get(0).(ports.PharmacyRepository)
}

type MockPlacementUoWFactory struct{ mock.Mock }

func (m *MockPlacementUoWFactory) Create() commands.PlacementUoW {
	args := m.Called()
	return args.Get(0).(commands.PlacementUoW)
}

type MockFulfillmentUoW struct{ mock.Mock }

func (m *MockFulfillmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockFulfillmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockFulfillmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFulfillmentUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockFulfillmentUoW) MembershipRepository() ports.MembershipRepository {
	args := m.Called()
	return args.Get(0).(ports.MembershipRepository)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockPrescriptionStorage struct{ mock.Mock }

func (m *MockPrescriptionStorage) Upload(ctx context.Context, content []byte, fileName, folder string) (string, error) {
	args := m.Called(ctx, content, fileName, folder)
	return args.String(0), args.Error(1)
}
