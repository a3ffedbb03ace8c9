package commands_test

import (
	"testing"
	"time"

	"epharmacy/internal/core/application/usecases/commands"
	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand_ValidInput(t *testing.T) {
	orderID, pharmacyID, userID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	eta := time.Now().Add(time.Hour)

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, pharmacyID, commands.Requester{UserID: userID},
		order.Approved, &eta)

	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, pharmacyID, cmd.PharmacyID())
	assert.Equal(t, userID, cmd.Requester().UserID)
	assert.False(t, cmd.Requester().IsAdmin)
	assert.Equal(t, order.Approved, cmd.Status())
	assert.Equal(t, &eta, cmd.EstimatedDeliveryAt())
}

func TestNewUpdateOrderStatusCommand_RejectsPendingTarget(t *testing.T) {
	for _, status := range []order.Status{order.Pending, order.Unknown, order.Status(12)} {
		_, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(),
			commands.Requester{UserID: kernel.NewUUID()}, status, nil)

		require.ErrorIs(t, err, order.ErrStatusInvalid)
	}
}

func TestNewUpdateOrderStatusCommand_Requester(t *testing.T) {
	t.Run("admin needs no user id", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(),
			commands.Requester{IsAdmin: true}, order.Cancelled, nil)

		require.NoError(t, err)
	})

	t.Run("empty user id is not an admin", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(),
			commands.Requester{}, order.Cancelled, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
