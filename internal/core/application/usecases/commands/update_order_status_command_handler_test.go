package commands_test

import (
	"errors"
	"testing"
	"time"

	"epharmacy/internal/core/application/usecases/commands"
	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fulfillmentMocks struct {
	factory     *MockFulfillmentUoWFactory
	uow         *MockFulfillmentUoW
	orders      *MockOrderRepository
	memberships *MockMembershipRepository
}

func newFulfillmentMocks() fulfillmentMocks {
	return fulfillmentMocks{
		factory:     new(MockFulfillmentUoWFactory),
		uow:         new(MockFulfillmentUoW),
		orders:      new(MockOrderRepository),
		memberships: new(MockMembershipRepository),
	}
}

func (m fulfillmentMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.memberships.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	pharmacyID, userID := kernel.NewUUID(), kernel.NewUUID()
	o := testOrder(t, pharmacyID, order.OutForDelivery)
	eta := time.Now().Add(30 * time.Minute)
	cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), pharmacyID, commands.Requester{UserID: userID},
		order.Completed, &eta)
	require.NoError(t, err)

	m := newFulfillmentMocks()
	mock.InOrder(
		m.factory.On("Create").Return(m.uow).Once(),
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.uow.On("MembershipRepository").Return(m.memberships).Once(),
		m.memberships.On("ExistsActive", ctx, pharmacyID, userID).Return(true, nil).Once(),
		m.uow.On("OrderRepository").Return(m.orders).Once(),
		m.orders.On("GetForUpdate", ctx, o.ID(), pharmacyID).Return(o, nil).Once(),
		m.orders.On("Update", ctx, o).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewUpdateOrderStatusCommandHandler(m.factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, o.Status())
	assert.Equal(t, order.PaymentCaptured, o.PaymentStatus())
	require.NotNil(t, o.EstimatedDeliveryAt())
	m.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_AdminSkipsMembership(t *testing.T) {
	ctx := t.Context()
	pharmacyID := kernel.NewUUID()
	o := testOrder(t, pharmacyID, order.Rejected)
	cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), pharmacyID, commands.Requester{IsAdmin: true},
		order.Cancelled, nil)
	require.NoError(t, err)

	m := newFulfillmentMocks()
	m.factory.On("Create").Return(m.uow).Once()
	m.uow.On("Begin", ctx).Return(nil).Once()
	m.uow.On("OrderRepository").Return(m.orders).Once()
	m.orders.On("GetForUpdate", ctx, o.ID(), pharmacyID).Return(o, nil).Once()
	m.orders.On("Update", ctx, o).Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(m.factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Cancelled, o.Status())
	m.uow.AssertNotCalled(t, "MembershipRepository")
	m.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_Unauthorized(t *testing.T) {
	ctx := t.Context()
	pharmacyID, userID := kernel.NewUUID(), kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), pharmacyID, commands.Requester{UserID: userID},
		order.Approved, nil)
	require.NoError(t, err)

	m := newFulfillmentMocks()
	mock.InOrder(
		m.factory.On("Create").Return(m.uow).Once(),
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.uow.On("MembershipRepository").Return(m.memberships).Once(),
		m.memberships.On("ExistsActive", ctx, pharmacyID, userID).Return(false, nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewUpdateOrderStatusCommandHandler(m.factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrUnauthorizedPharmacyAccess)
	m.uow.AssertNotCalled(t, "OrderRepository")
	m.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	pharmacyID, orderID := kernel.NewUUID(), kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, pharmacyID, commands.Requester{IsAdmin: true},
		order.Approved, nil)
	require.NoError(t, err)

	m := newFulfillmentMocks()
	m.factory.On("Create").Return(m.uow).Once()
	m.uow.On("Begin", ctx).Return(nil).Once()
	m.uow.On("OrderRepository").Return(m.orders).Once()
	m.orders.On("GetForUpdate", ctx, orderID, pharmacyID).
		Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(m.factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotFound)
	reason, ok := errs.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, "not_found", reason)
	m.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_TransitionErrors(t *testing.T) {
	tests := []struct {
		name    string
		current order.Status
		target  order.Status
		wantErr error
	}{
		{"completed is final", order.Completed, order.Cancelled, order.ErrAlreadyFinalized},
		{"cancelled is final", order.Cancelled, order.Completed, order.ErrAlreadyFinalized},
		{"skipping steps", order.Approved, order.Completed, order.ErrInvalidTransition},
		{"rejected cannot be approved", order.Rejected, order.Approved, order.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			pharmacyID := kernel.NewUUID()
			o := testOrder(t, pharmacyID, tt.current)
			cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), pharmacyID, commands.Requester{IsAdmin: true},
				tt.target, nil)
			require.NoError(t, err)

			m := newFulfillmentMocks()
			m.factory.On("Create").Return(m.uow).Once()
			m.uow.On("Begin", ctx).Return(nil).Once()
			m.uow.On("OrderRepository").Return(m.orders).Once()
			m.orders.On("GetForUpdate", ctx, o.ID(), pharmacyID).Return(o, nil).Once()
			m.uow.On("Rollback", ctx).Return(nil).Once()

			h := commands.NewUpdateOrderStatusCommandHandler(m.factory)
			err = h.Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.current, o.Status())
			m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			m.assertExpectations(t)
		})
	}
}

func TestUpdateOrderStatusCommandHandler_Handle_MembershipLookupError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(),
		commands.Requester{UserID: kernel.NewUUID()}, order.Approved, nil)
	require.NoError(t, err)

	m := newFulfillmentMocks()
	m.factory.On("Create").Return(m.uow).Once()
	m.uow.On("Begin", ctx).Return(nil).Once()
	m.uow.On("MembershipRepository").Return(m.memberships).Once()
	m.memberships.On("ExistsActive", ctx, mock.Anything, mock.Anything).Return(false, errors.New("db down")).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(m.factory)
	err = h.Handle(ctx, cmd)

	require.EqualError(t, err, "db down")
	_, isReason := errs.ReasonOf(err)
	assert.False(t, isReason)
}

// Pharmacy P sells M (stock 10, 35.00 INR). After placing 3 units the pharmacist
// approves, prepares and cancels the order; completing it afterwards is refused.
func TestOrderLifecycle_EndToEnd(t *testing.T) {
	ctx := t.Context()
	ph, item := testPharmacy(t, 10, false)
	pharmacistID := kernel.NewUUID()

	pharmacyRepo := new(MockPharmacyRepository)
	placementRepo := new(MockOrderRepository)
	placementUoW := new(MockPlacementUoW)
	placementFactory := new(MockPlacementUoWFactory)
	placementFactory.On("Create").Return(placementUoW)
	placementUoW.On("Begin", ctx).Return(nil)
	placementUoW.On("Commit", ctx).Return(nil)
	placementUoW.On("Rollback", ctx).Return(nil)
	placementUoW.On("PharmacyRepository").Return(pharmacyRepo)
	placementUoW.On("OrderRepository").Return(placementRepo)
	pharmacyRepo.On("GetForOrder", ctx, ph.ID(), mock.Anything).Return(ph, nil)
	pharmacyRepo.On("UpdateStock", ctx, ph).Return(nil)
	placementRepo.On("Add", ctx, mock.Anything).Return(nil)

	create := commands.NewCreateOrderCommandHandler(placementFactory, new(MockPrescriptionStorage))
	cmd := newCreateOrderCommand(t, ph.ID(), order.CashOnDelivery, nil,
		commands.OrderLine{MedicineID: item.ID(), Quantity: 3})
	summary, err := create.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Pending, summary.Status)
	assert.Equal(t, "INR 105.00", summary.Total.String())
	assert.Equal(t, 7, item.StockQuantity())

	placed := placementRepo.Calls[0].Arguments.Get(1).(*order.Order)

	m := newFulfillmentMocks()
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit", ctx).Return(nil)
	m.uow.On("Rollback", ctx).Return(nil)
	m.uow.On("MembershipRepository").Return(m.memberships)
	m.uow.On("OrderRepository").Return(m.orders)
	m.memberships.On("ExistsActive", ctx, ph.ID(), pharmacistID).Return(true, nil)
	m.orders.On("GetForUpdate", ctx, placed.ID(), ph.ID()).Return(placed, nil)
	m.orders.On("Update", ctx, placed).Return(nil)

	update := commands.NewUpdateOrderStatusCommandHandler(m.factory)
	step := func(status order.Status) error {
		c, err := commands.NewUpdateOrderStatusCommand(placed.ID(), ph.ID(),
			commands.Requester{UserID: pharmacistID}, status, nil)
		require.NoError(t, err)
		return update.Handle(ctx, c)
	}

	require.NoError(t, step(order.Approved))
	assert.Equal(t, order.Approved, placed.Status())
	require.NoError(t, step(order.Preparing))
	require.NoError(t, step(order.Cancelled))
	assert.Equal(t, order.Cancelled, placed.Status())
	require.ErrorIs(t, step(order.Completed), order.ErrAlreadyFinalized)
}
