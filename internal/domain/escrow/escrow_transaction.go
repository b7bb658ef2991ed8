package escrow

import (
	"fmt"
	"time"

	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Status represents the status of an escrow transaction
type Status string

const (
	StatusHeld     Status = "HELD"
	StatusReleased Status = "RELEASED"
	StatusRefunded Status = "REFUNDED"
)

// IsValid checks if the status is a valid escrow Status
func (s Status) IsValid() bool {
	switch s {
	case StatusHeld, StatusReleased, StatusRefunded:
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
	case StatusHeld:
		return target == StatusReleased || target == StatusRefunded
	case StatusReleased, StatusRefunded:
		return false // Terminal states
	}
	return false
}

// ReleaseReferenceFor derives the ledger reference used when escrowed funds
// are released to the seller. Deriving it from the order number makes a
// retried release a de-duplicated no-op.
func ReleaseReferenceFor(orderNumber string) string {
	return fmt.Sprintf("ESCROW_RELEASE_%s", orderNumber)
}

// RefundReferenceFor derives the ledger reference used when escrowed funds
// are refunded to the buyer
func RefundReferenceFor(orderNumber string) string {
	return fmt.Sprintf("REFUND_%s", orderNumber)
}

// EscrowTransaction tracks funds held for a single order between the buyer
// debit and the final payout or refund. Exactly one escrow transaction
// exists per order.
type EscrowTransaction struct {
	shared.BaseAggregateRoot
	OrderID         uuid.UUID
	BuyerWalletID   uuid.UUID
	SellerWalletID  uuid.UUID
	Amount          valueobject.Money
	Status          Status
	DebitReference  string // ledger reference of the buyer debit that funded the hold
	CreditReference string // ledger reference of the seller payout, set on release
	RefundReference string // ledger reference of the buyer refund, set on refund
	HeldAt          time.Time
	ReleasedAt      *time.Time
	RefundedAt      *time.Time
}

// NewEscrowTransaction creates an escrow hold for an order.
// The buyer debit must already have succeeded; its ledger reference is
// recorded so the hold can be traced back to the funding transaction.
func NewEscrowTransaction(orderID, buyerWalletID, sellerWalletID uuid.UUID, amount valueobject.Money, debitReference string) (*EscrowTransaction, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if buyerWalletID == uuid.Nil || sellerWalletID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WALLET", "Buyer and seller wallet IDs cannot be empty")
	}
	if buyerWalletID == sellerWalletID {
		return nil, shared.NewDomainError("INVALID_WALLET", "Buyer and seller wallets must differ")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Escrow amount must be positive")
	}
	if debitReference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Debit reference cannot be empty")
	}

	return &EscrowTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		BuyerWalletID:     buyerWalletID,
		SellerWalletID:    sellerWalletID,
		Amount:            amount,
		Status:            StatusHeld,
		DebitReference:    debitReference,
		HeldAt:            time.Now(),
	}, nil
}

// Release pays the escrowed funds out to the seller.
// Only valid from HELD.
func (e *EscrowTransaction) Release(creditReference string) error {
	if !e.Status.CanTransitionTo(StatusReleased) {
		return shared.ErrInvalidEscrowState
	}
	if creditReference == "" {
		return shared.NewDomainError("INVALID_REFERENCE", "Credit reference cannot be empty")
	}

	now := time.Now()
	e.Status = StatusReleased
	e.CreditReference = creditReference
	e.ReleasedAt = &now
	e.UpdatedAt = now

	return nil
}

// Refund returns the escrowed funds to the buyer.
// Only valid from HELD.
func (e *EscrowTransaction) Refund(refundReference string) error {
	if !e.Status.CanTransitionTo(StatusRefunded) {
		return shared.ErrInvalidEscrowState
	}
	if refundReference == "" {
		return shared.NewDomainError("INVALID_REFERENCE", "Refund reference cannot be empty")
	}

	now := time.Now()
	e.Status = StatusRefunded
	e.RefundReference = refundReference
	e.RefundedAt = &now
	e.UpdatedAt = now

	return nil
}

// IsHeld returns true if the funds are still held
func (e *EscrowTransaction) IsHeld() bool {
	return e.Status == StatusHeld
}

// IsReleased returns true if the funds were paid out to the seller
func (e *EscrowTransaction) IsReleased() bool {
	return e.Status == StatusReleased
}

// IsRefunded returns true if the funds were returned to the buyer
func (e *EscrowTransaction) IsRefunded() bool {
	return e.Status == StatusRefunded
}
