package notification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	t.Run("starts unread and unsent", func(t *testing.T) {
		n, err := NewNotification(uuid.New(), TypeOrderCreated, "New order", "You have a new order")
		require.NoError(t, err)
		assert.False(t, n.IsRead)
		assert.Nil(t, n.SentAt)
		assert.Nil(t, n.OrderID)
	})

	t.Run("rejects empty user", func(t *testing.T) {
		_, err := NewNotification(uuid.Nil, TypeOrderCreated, "New order", "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewNotification(uuid.New(), Type("BOGUS"), "New order", "")
		assert.Error(t, err)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewNotification(uuid.New(), TypeOrderCreated, "", "")
		assert.Error(t, err)
	})
}

func TestNotification_WithOrder(t *testing.T) {
	orderID := uuid.New()
	n, err := NewNotification(uuid.New(), TypeOrderAccepted, "Order accepted", "")
	require.NoError(t, err)

	n.WithOrder(orderID)
	require.NotNil(t, n.OrderID)
	assert.Equal(t, orderID, *n.OrderID)
}

func TestNotification_Delivery(t *testing.T) {
	n, err := NewNotification(uuid.New(), TypeOrderDelivered, "Order delivered", "")
	require.NoError(t, err)

	n.MarkFailed("channel timeout")
	assert.Equal(t, "channel timeout", n.LastError)
	assert.Nil(t, n.SentAt)

	n.MarkSent()
	require.NotNil(t, n.SentAt)
	assert.Empty(t, n.LastError)
}

func TestNotification_MarkRead(t *testing.T) {
	n, err := NewNotification(uuid.New(), TypeOrderConfirmed, "Order confirmed", "")
	require.NoError(t, err)

	n.MarkRead()
	assert.True(t, n.IsRead)
}

func TestType_IsValid(t *testing.T) {
	valid := []Type{
		TypeOrderCreated, TypeOrderAccepted, TypeOrderDelivered,
		TypeOrderConfirmed, TypeOrderCancelled, TypePaymentReceived, TypeRefundIssued,
	}
	for _, typ := range valid {
		assert.True(t, typ.IsValid(), typ.String())
	}
	assert.False(t, Type("SHIPMENT_LOST").IsValid())
}
