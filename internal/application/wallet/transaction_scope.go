package wallet

import (
	"context"
	"sync"

	"github.com/covu/backend/internal/domain/wallet"
)

// TransactionScope provides transactional access to the wallet repositories.
// A balance snapshot and the append that uses it must happen inside one
// Execute call, with the wallet row locked, or concurrent appends could
// both read the same snapshot.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the wallet repositories
// within a transaction
type TransactionalRepositories interface {
	WalletRepo() wallet.Repository
	LedgerRepo() wallet.LedgerRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Execute calls serialize on a mutex, matching how the wallet row lock
// orders concurrent appends in the real database. Used in tests.
type NoOpTransactionScope struct {
	mu         sync.Mutex
	walletRepo wallet.Repository
	ledgerRepo wallet.LedgerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(walletRepo wallet.Repository, ledgerRepo wallet.LedgerRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{walletRepo: walletRepo, ledgerRepo: ledgerRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// WalletRepo returns the wallet repository
func (s *NoOpTransactionScope) WalletRepo() wallet.Repository {
	return s.walletRepo
}

// LedgerRepo returns the ledger repository
func (s *NoOpTransactionScope) LedgerRepo() wallet.LedgerRepository {
	return s.ledgerRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
