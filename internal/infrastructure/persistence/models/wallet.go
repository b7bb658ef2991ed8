package models

import (
	"encoding/json"

	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/covu/backend/internal/domain/wallet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletModel is the persistence model for the Wallet aggregate.
// No balance column: the balance is always derived from the ledger.
type WalletModel struct {
	AggregateModel
	UserID   uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex"`
	Currency valueobject.Currency `gorm:"type:varchar(3);not null;default:NGN"`
	IsActive bool                 `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (WalletModel) TableName() string {
	return "wallets"
}

// ToDomain converts the persistence model to a domain Wallet aggregate.
func (m *WalletModel) ToDomain() *wallet.Wallet {
	return &wallet.Wallet{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		UserID:   m.UserID,
		Currency: m.Currency,
		IsActive: m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Wallet aggregate.
func (m *WalletModel) FromDomain(w *wallet.Wallet) {
	m.FromDomainAggregateRoot(w.BaseAggregateRoot)
	m.UserID = w.UserID
	m.Currency = w.Currency
	m.IsActive = w.IsActive
}

// WalletModelFromDomain creates a new persistence model from a domain Wallet aggregate.
func WalletModelFromDomain(w *wallet.Wallet) *WalletModel {
	m := &WalletModel{}
	m.FromDomain(w)
	return m
}

// LedgerTransactionModel is the persistence model for the LedgerTransaction entity.
// The unique index on reference is the database-level idempotency backstop.
type LedgerTransactionModel struct {
	BaseModel
	WalletID      uuid.UUID              `gorm:"type:uuid;not null;index:idx_ledger_wallet_time,priority:1"`
	Type          wallet.TransactionType `gorm:"type:varchar(20);not null;index:idx_ledger_type"`
	Amount        decimal.Decimal        `gorm:"type:decimal(12,2);not null"`
	BalanceBefore decimal.Decimal        `gorm:"type:decimal(12,2);not null"`
	BalanceAfter  decimal.Decimal        `gorm:"type:decimal(12,2);not null"`
	Reference     string                 `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description   string                 `gorm:"type:varchar(500)"`
	Metadata      []byte                 `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (LedgerTransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToDomain converts the persistence model to a domain LedgerTransaction entity.
func (m *LedgerTransactionModel) ToDomain() *wallet.LedgerTransaction {
	var metadata map[string]string
	if len(m.Metadata) > 0 {
		_ = json.Unmarshal(m.Metadata, &metadata)
	}
	return &wallet.LedgerTransaction{
		BaseEntity:    m.BaseModel.ToDomain(),
		WalletID:      m.WalletID,
		Type:          m.Type,
		Amount:        valueobject.NewMoneyNGN(m.Amount),
		BalanceBefore: valueobject.NewMoneyNGN(m.BalanceBefore),
		BalanceAfter:  valueobject.NewMoneyNGN(m.BalanceAfter),
		Reference:     m.Reference,
		Description:   m.Description,
		Metadata:      metadata,
	}
}

// FromDomain populates the persistence model from a domain LedgerTransaction entity.
func (m *LedgerTransactionModel) FromDomain(t *wallet.LedgerTransaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.WalletID = t.WalletID
	m.Type = t.Type
	m.Amount = t.Amount.Amount()
	m.BalanceBefore = t.BalanceBefore.Amount()
	m.BalanceAfter = t.BalanceAfter.Amount()
	m.Reference = t.Reference
	m.Description = t.Description
	if len(t.Metadata) > 0 {
		payload, err := json.Marshal(t.Metadata)
		if err == nil {
			m.Metadata = payload
		}
	}
}

// LedgerTransactionModelFromDomain creates a new persistence model from a domain LedgerTransaction entity.
func LedgerTransactionModelFromDomain(t *wallet.LedgerTransaction) *LedgerTransactionModel {
	m := &LedgerTransactionModel{}
	m.FromDomain(t)
	return m
}
