package wallet

import (
	"context"

	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Repository defines the persistence interface for wallets
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Wallet, error)
	// FindByIDForUpdate loads the wallet with a row lock so concurrent
	// debits against the same wallet serialize
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Wallet, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Wallet, error)
	Save(ctx context.Context, w *Wallet) error
	// SaveWithLock saves with an optimistic version check
	SaveWithLock(ctx context.Context, w *Wallet) error
}

// Summary aggregates a wallet's ledger into its headline figures
type Summary struct {
	Balance     valueobject.Money
	TotalEarned valueobject.Money
	TotalSpent  valueobject.Money
}

// LedgerRepository defines the persistence interface for ledger transactions.
// The ledger is append-only: there is no update or delete.
type LedgerRepository interface {
	Save(ctx context.Context, tx *LedgerTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerTransaction, error)
	// FindByReference returns the transaction carrying the given idempotency
	// reference, or shared.ErrNotFound
	FindByReference(ctx context.Context, reference string) (*LedgerTransaction, error)
	FindByWallet(ctx context.Context, walletID uuid.UUID, filter shared.Filter) ([]LedgerTransaction, int64, error)
	// BalanceOf derives the wallet balance from its transactions:
	// sum of credit-class amounts minus sum of debit-class amounts
	BalanceOf(ctx context.Context, walletID uuid.UUID) (valueobject.Money, error)
	// SummaryOf derives balance plus lifetime earned/spent totals
	SummaryOf(ctx context.Context, walletID uuid.UUID) (*Summary, error)
}
