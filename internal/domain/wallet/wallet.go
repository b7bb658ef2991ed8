package wallet

import (
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Wallet is the account an individual user transacts through.
// The balance is never stored on the wallet - it is derived from the
// ledger transactions recorded against it.
type Wallet struct {
	shared.BaseAggregateRoot
	UserID   uuid.UUID
	Currency valueobject.Currency
	IsActive bool
}

// NewWallet creates a wallet for a user in the default currency
func NewWallet(userID uuid.UUID) (*Wallet, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	return &Wallet{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Currency:          valueobject.DefaultCurrency,
		IsActive:          true,
	}, nil
}

// Deactivate blocks the wallet from being debited.
// Credits are still accepted so funds in flight can land.
func (w *Wallet) Deactivate() {
	w.IsActive = false
}

// Activate re-enables debits on the wallet
func (w *Wallet) Activate() {
	w.IsActive = true
}

// EnsureCanDebit returns an error if the wallet cannot be debited
func (w *Wallet) EnsureCanDebit() error {
	if !w.IsActive {
		return shared.ErrWalletInactive
	}
	return nil
}
