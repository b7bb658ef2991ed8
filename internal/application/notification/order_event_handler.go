package notification

import (
	"context"
	"fmt"

	"github.com/covu/backend/internal/domain/notification"
	"github.com/covu/backend/internal/domain/order"
	"github.com/covu/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderEventHandler turns order lifecycle events into user notifications.
// It runs on the outbox dispatch path, after the financial transaction has
// committed, so nothing here can undo a held or released escrow.
type OrderEventHandler struct {
	service *Service
	logger  *zap.Logger
}

// NewOrderEventHandler creates a new order event handler
func NewOrderEventHandler(service *Service, logger *zap.Logger) *OrderEventHandler {
	return &OrderEventHandler{
		service: service,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderEventHandler) EventTypes() []string {
	return []string{
		order.EventTypeOrderCreated,
		order.EventTypeOrderAccepted,
		order.EventTypeOrderDelivered,
		order.EventTypeOrderConfirmed,
		order.EventTypeOrderCancelled,
	}
}

// Handle processes an order event
func (h *OrderEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.OrderCreatedEvent:
		return h.service.Notify(ctx, e.SellerID, notification.TypeOrderCreated, e.OrderID,
			"New order received",
			fmt.Sprintf("You have a new order %s for %s (%s). Accept it to start fulfilment.",
				e.OrderNumber, e.ProductName, e.TotalAmount.String()))

	case *order.OrderAcceptedEvent:
		return h.service.Notify(ctx, e.BuyerID, notification.TypeOrderAccepted, e.OrderID,
			"Order accepted",
			fmt.Sprintf("The seller accepted your order %s for %s.", e.OrderNumber, e.ProductName))

	case *order.OrderDeliveredEvent:
		return h.service.Notify(ctx, e.BuyerID, notification.TypeOrderDelivered, e.OrderID,
			"Order delivered",
			fmt.Sprintf("Your order %s was marked delivered. Confirm receipt to release payment.", e.OrderNumber))

	case *order.OrderConfirmedEvent:
		if err := h.service.Notify(ctx, e.SellerID, notification.TypeOrderConfirmed, e.OrderID,
			"Order confirmed",
			fmt.Sprintf("The buyer confirmed order %s.", e.OrderNumber)); err != nil {
			return err
		}
		return h.service.Notify(ctx, e.SellerID, notification.TypePaymentReceived, e.OrderID,
			"Payment received",
			fmt.Sprintf("%s from order %s has been credited to your wallet.",
				e.TotalAmount.String(), e.OrderNumber))

	case *order.OrderCancelledEvent:
		// Both parties hear about a cancellation.
		if err := h.service.Notify(ctx, e.SellerID, notification.TypeOrderCancelled, e.OrderID,
			"Order cancelled",
			fmt.Sprintf("Order %s was cancelled by the %s. Reason: %s",
				e.OrderNumber, cancelPartyLabel(e.CancelledBy), e.Reason)); err != nil {
			return err
		}
		if err := h.service.Notify(ctx, e.BuyerID, notification.TypeOrderCancelled, e.OrderID,
			"Order cancelled",
			fmt.Sprintf("Order %s was cancelled by the %s.",
				e.OrderNumber, cancelPartyLabel(e.CancelledBy))); err != nil {
			return err
		}
		return h.service.Notify(ctx, e.BuyerID, notification.TypeRefundIssued, e.OrderID,
			"Refund issued",
			fmt.Sprintf("%s from order %s has been refunded to your wallet.",
				e.TotalAmount.String(), e.OrderNumber))

	default:
		h.logger.Debug("Ignoring unexpected event type", zap.String("event_type", event.EventType()))
		return nil
	}
}

func cancelPartyLabel(p order.CancelParty) string {
	if p == order.CancelledBySeller {
		return "seller"
	}
	return "buyer"
}

var _ shared.EventHandler = (*OrderEventHandler)(nil)
