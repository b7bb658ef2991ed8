package event

import (
	"github.com/covu/backend/internal/domain/order"
)

// RegisterAllEvents registers all domain event types with the serializer.
// This is required for the OutboxProcessor to deserialize events from the
// outbox table.
func RegisterAllEvents(serializer *EventSerializer) {
	serializer.Register(order.EventTypeOrderCreated, &order.OrderCreatedEvent{})
	serializer.Register(order.EventTypeOrderAccepted, &order.OrderAcceptedEvent{})
	serializer.Register(order.EventTypeOrderDelivered, &order.OrderDeliveredEvent{})
	serializer.Register(order.EventTypeOrderConfirmed, &order.OrderConfirmedEvent{})
	serializer.Register(order.EventTypeOrderCancelled, &order.OrderCancelledEvent{})
}
