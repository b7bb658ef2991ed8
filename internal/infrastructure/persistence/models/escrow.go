package models

import (
	"time"

	"github.com/covu/backend/internal/domain/escrow"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EscrowTransactionModel is the persistence model for the EscrowTransaction aggregate.
// One escrow row per order.
type EscrowTransactionModel struct {
	AggregateModel
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	BuyerWalletID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_escrow_buyer_wallet"`
	SellerWalletID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_escrow_seller_wallet"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status          escrow.Status   `gorm:"type:varchar(10);not null;index:idx_escrow_status"`
	DebitReference  string          `gorm:"type:varchar(100);not null"`
	CreditReference string          `gorm:"type:varchar(100)"`
	RefundReference string          `gorm:"type:varchar(100)"`
	HeldAt          time.Time       `gorm:"not null"`
	ReleasedAt      *time.Time
	RefundedAt      *time.Time
}

// TableName returns the table name for GORM
func (EscrowTransactionModel) TableName() string {
	return "escrow_transactions"
}

// ToDomain converts the persistence model to a domain EscrowTransaction aggregate.
func (m *EscrowTransactionModel) ToDomain() *escrow.EscrowTransaction {
	return &escrow.EscrowTransaction{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		OrderID:         m.OrderID,
		BuyerWalletID:   m.BuyerWalletID,
		SellerWalletID:  m.SellerWalletID,
		Amount:          valueobject.NewMoneyNGN(m.Amount),
		Status:          m.Status,
		DebitReference:  m.DebitReference,
		CreditReference: m.CreditReference,
		RefundReference: m.RefundReference,
		HeldAt:          m.HeldAt,
		ReleasedAt:      m.ReleasedAt,
		RefundedAt:      m.RefundedAt,
	}
}

// FromDomain populates the persistence model from a domain EscrowTransaction aggregate.
func (m *EscrowTransactionModel) FromDomain(e *escrow.EscrowTransaction) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.OrderID = e.OrderID
	m.BuyerWalletID = e.BuyerWalletID
	m.SellerWalletID = e.SellerWalletID
	m.Amount = e.Amount.Amount()
	m.Status = e.Status
	m.DebitReference = e.DebitReference
	m.CreditReference = e.CreditReference
	m.RefundReference = e.RefundReference
	m.HeldAt = e.HeldAt
	m.ReleasedAt = e.ReleasedAt
	m.RefundedAt = e.RefundedAt
}

// EscrowTransactionModelFromDomain creates a new persistence model from a domain EscrowTransaction aggregate.
func EscrowTransactionModelFromDomain(e *escrow.EscrowTransaction) *EscrowTransactionModel {
	m := &EscrowTransactionModel{}
	m.FromDomain(e)
	return m
}
