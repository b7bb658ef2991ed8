package order

import (
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated   = "OrderCreated"
	EventTypeOrderAccepted  = "OrderAccepted"
	EventTypeOrderDelivered = "OrderDelivered"
	EventTypeOrderConfirmed = "OrderConfirmed"
	EventTypeOrderCancelled = "OrderCancelled"
)

// OrderCreatedEvent is raised when a new order is created with funds held
// in escrow
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID         `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	BuyerID     uuid.UUID         `json:"buyer_id"`
	SellerID    uuid.UUID         `json:"seller_id"`
	ProductName string            `json:"product_name"`
	TotalAmount valueobject.Money `json:"total_amount"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		BuyerID:         o.BuyerID,
		SellerID:        o.SellerID,
		ProductName:     o.ProductName,
		TotalAmount:     o.TotalAmount,
	}
}

// EventType returns the event type name
func (e *OrderCreatedEvent) EventType() string {
	return EventTypeOrderCreated
}

// OrderAcceptedEvent is raised when the seller accepts an order
type OrderAcceptedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	BuyerID     uuid.UUID `json:"buyer_id"`
	SellerID    uuid.UUID `json:"seller_id"`
	ProductName string    `json:"product_name"`
}

// NewOrderAcceptedEvent creates a new OrderAcceptedEvent
func NewOrderAcceptedEvent(o *Order) *OrderAcceptedEvent {
	return &OrderAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderAccepted, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		BuyerID:         o.BuyerID,
		SellerID:        o.SellerID,
		ProductName:     o.ProductName,
	}
}

// EventType returns the event type name
func (e *OrderAcceptedEvent) EventType() string {
	return EventTypeOrderAccepted
}

// OrderDeliveredEvent is raised when the seller marks an order delivered
type OrderDeliveredEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	BuyerID     uuid.UUID `json:"buyer_id"`
	SellerID    uuid.UUID `json:"seller_id"`
	ProductName string    `json:"product_name"`
}

// NewOrderDeliveredEvent creates a new OrderDeliveredEvent
func NewOrderDeliveredEvent(o *Order) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDelivered, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		BuyerID:         o.BuyerID,
		SellerID:        o.SellerID,
		ProductName:     o.ProductName,
	}
}

// EventType returns the event type name
func (e *OrderDeliveredEvent) EventType() string {
	return EventTypeOrderDelivered
}

// OrderConfirmedEvent is raised when the buyer confirms receipt and the
// escrowed funds are released to the seller
type OrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID         `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	BuyerID     uuid.UUID         `json:"buyer_id"`
	SellerID    uuid.UUID         `json:"seller_id"`
	ProductName string            `json:"product_name"`
	TotalAmount valueobject.Money `json:"total_amount"`
}

// NewOrderConfirmedEvent creates a new OrderConfirmedEvent
func NewOrderConfirmedEvent(o *Order) *OrderConfirmedEvent {
	return &OrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderConfirmed, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		BuyerID:         o.BuyerID,
		SellerID:        o.SellerID,
		ProductName:     o.ProductName,
		TotalAmount:     o.TotalAmount,
	}
}

// EventType returns the event type name
func (e *OrderConfirmedEvent) EventType() string {
	return EventTypeOrderConfirmed
}

// OrderCancelledEvent is raised when an order is cancelled and the escrowed
// funds are refunded to the buyer. Both parties are notified.
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID         `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	BuyerID     uuid.UUID         `json:"buyer_id"`
	SellerID    uuid.UUID         `json:"seller_id"`
	ProductName string            `json:"product_name"`
	TotalAmount valueobject.Money `json:"total_amount"`
	CancelledBy CancelParty       `json:"cancelled_by"`
	Reason      string            `json:"reason"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order) *OrderCancelledEvent {
	var party CancelParty
	if o.CancelledBy != nil {
		party = *o.CancelledBy
	}
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		BuyerID:         o.BuyerID,
		SellerID:        o.SellerID,
		ProductName:     o.ProductName,
		TotalAmount:     o.TotalAmount,
		CancelledBy:     party,
		Reason:          o.CancellationReason,
	}
}

// EventType returns the event type name
func (e *OrderCancelledEvent) EventType() string {
	return EventTypeOrderCancelled
}
