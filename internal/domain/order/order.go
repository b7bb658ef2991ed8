package order

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Status represents the status of an order
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusDelivered Status = "DELIVERED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is a valid order Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDelivered, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusAccepted || target == StatusCancelled
	case StatusAccepted:
		return target == StatusDelivered || target == StatusCancelled
	case StatusDelivered:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions
func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// CancelParty identifies which side of the order cancelled it
type CancelParty string

const (
	CancelledByBuyer  CancelParty = "BUYER"
	CancelledBySeller CancelParty = "SELLER"
)

const orderNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOrderNumber produces an order number of the form
// ORD-YYYYMMDD-XXXXXX where the suffix is random. The order number doubles
// as the ledger reference for the buyer debit, so a retried creation that
// reuses the number becomes a no-op instead of a double charge.
func GenerateOrderNumber() string {
	suffix := make([]byte, 6)
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("order number entropy unavailable: %v", err))
	}
	for i, b := range buf {
		suffix[i] = orderNumberCharset[int(b)%len(orderNumberCharset)]
	}
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), string(suffix))
}

// Order is the aggregate tracking a purchase from creation to settlement.
// Price, delivery fee and product name are snapshots frozen at creation so
// later catalog edits cannot change what the buyer pays.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber        string
	BuyerID            uuid.UUID
	SellerID           uuid.UUID
	ProductID          uuid.UUID
	ProductName        string
	Quantity           int
	ProductPrice       valueobject.Money
	DeliveryFee        valueobject.Money
	TotalAmount        valueobject.Money
	DeliveryAddress    string
	Status             Status
	CancelledBy        *CancelParty
	CancellationReason string
	AcceptedAt         *time.Time
	DeliveredAt        *time.Time
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time
}

// NewOrder creates a pending order with frozen price and fee snapshots
func NewOrder(
	orderNumber string,
	buyerID, sellerID, productID uuid.UUID,
	productName string,
	quantity int,
	productPrice, deliveryFee valueobject.Money,
	deliveryAddress string,
) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	if buyerID == sellerID {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer cannot purchase from themselves")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !productPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price must be positive")
	}
	if deliveryFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Delivery fee cannot be negative")
	}

	total, err := productPrice.MultiplyByInt(int64(quantity)).Add(deliveryFee)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_AMOUNT", err.Error())
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		BuyerID:           buyerID,
		SellerID:          sellerID,
		ProductID:         productID,
		ProductName:       productName,
		Quantity:          quantity,
		ProductPrice:      productPrice,
		DeliveryFee:       deliveryFee,
		TotalAmount:       total,
		DeliveryAddress:   deliveryAddress,
		Status:            StatusPending,
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

func (o *Order) transitionError(target Status) error {
	return shared.NewDomainError("INVALID_STATE_TRANSITION",
		fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
}

// Accept moves the order from PENDING to ACCEPTED.
// Only the seller may accept.
func (o *Order) Accept(actorID uuid.UUID) error {
	if actorID != o.SellerID {
		return shared.ErrPermissionDenied
	}
	if !o.Status.CanTransitionTo(StatusAccepted) {
		return o.transitionError(StatusAccepted)
	}

	now := time.Now()
	o.Status = StatusAccepted
	o.AcceptedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderAcceptedEvent(o))

	return nil
}

// MarkDelivered moves the order from ACCEPTED to DELIVERED.
// Only the seller may mark delivery.
func (o *Order) MarkDelivered(actorID uuid.UUID) error {
	if actorID != o.SellerID {
		return shared.ErrPermissionDenied
	}
	if !o.Status.CanTransitionTo(StatusDelivered) {
		return o.transitionError(StatusDelivered)
	}

	now := time.Now()
	o.Status = StatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderDeliveredEvent(o))

	return nil
}

// Confirm moves the order from DELIVERED to CONFIRMED, settling the trade.
// Only the buyer may confirm receipt.
func (o *Order) Confirm(actorID uuid.UUID) error {
	if actorID != o.BuyerID {
		return shared.ErrPermissionDenied
	}
	if !o.Status.CanTransitionTo(StatusConfirmed) {
		return o.transitionError(StatusConfirmed)
	}

	now := time.Now()
	o.Status = StatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderConfirmedEvent(o))

	return nil
}

// Cancel cancels the order. A buyer may cancel only while the order is
// still PENDING; a seller may cancel at any point before confirmation.
func (o *Order) Cancel(actorID uuid.UUID, reason string) error {
	var party CancelParty
	switch actorID {
	case o.BuyerID:
		party = CancelledByBuyer
		if o.Status != StatusPending {
			return o.transitionError(StatusCancelled)
		}
	case o.SellerID:
		party = CancelledBySeller
	default:
		return shared.ErrPermissionDenied
	}

	if !o.Status.CanTransitionTo(StatusCancelled) {
		return o.transitionError(StatusCancelled)
	}

	now := time.Now()
	o.Status = StatusCancelled
	o.CancelledBy = &party
	o.CancellationReason = reason
	o.CancelledAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderCancelledEvent(o))

	return nil
}

// IsPending returns true if the order has not yet been accepted
func (o *Order) IsPending() bool {
	return o.Status == StatusPending
}

// IsConfirmed returns true if the trade settled
func (o *Order) IsConfirmed() bool {
	return o.Status == StatusConfirmed
}

// IsCancelled returns true if the order was cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// IsParty returns true if the given user is the buyer or the seller
func (o *Order) IsParty(userID uuid.UUID) bool {
	return userID == o.BuyerID || userID == o.SellerID
}
