package order

import (
	"context"
	"sync"

	"github.com/covu/backend/internal/domain/escrow"
	"github.com/covu/backend/internal/domain/order"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/wallet"
)

// TransactionScope provides transactional access to the repositories an
// order operation touches. Every financial transition (hold, release,
// refund) runs entirely inside one Execute call so the ledger, the escrow
// row and the order row commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories
// participating in an order transaction. All repositories returned share
// the same underlying database transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() order.Repository
	// EscrowRepo returns the escrow repository scoped to the current transaction
	EscrowRepo() escrow.Repository
	// WalletRepo returns the wallet repository scoped to the current transaction
	WalletRepo() wallet.Repository
	// LedgerRepo returns the ledger repository scoped to the current transaction
	LedgerRepo() wallet.LedgerRepository
	// SaveEvents persists domain events to the outbox within the current
	// transaction so notification dispatch survives a crash after commit
	SaveEvents(ctx context.Context, events ...shared.DomainEvent) error
}

// NoOpTransactionScope runs the function without a real transaction.
// Execute calls serialize on a mutex, matching how the row locks order
// concurrent transitions in the real database. Used in tests.
type NoOpTransactionScope struct {
	mu          sync.Mutex
	orderRepo   order.Repository
	escrowRepo  escrow.Repository
	walletRepo  wallet.Repository
	ledgerRepo  wallet.LedgerRepository
	savedEvents []shared.DomainEvent
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	orderRepo order.Repository,
	escrowRepo escrow.Repository,
	walletRepo wallet.Repository,
	ledgerRepo wallet.LedgerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:  orderRepo,
		escrowRepo: escrowRepo,
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() order.Repository {
	return s.orderRepo
}

// EscrowRepo returns the escrow repository
func (s *NoOpTransactionScope) EscrowRepo() escrow.Repository {
	return s.escrowRepo
}

// WalletRepo returns the wallet repository
func (s *NoOpTransactionScope) WalletRepo() wallet.Repository {
	return s.walletRepo
}

// LedgerRepo returns the ledger repository
func (s *NoOpTransactionScope) LedgerRepo() wallet.LedgerRepository {
	return s.ledgerRepo
}

// SaveEvents records the events in memory
func (s *NoOpTransactionScope) SaveEvents(_ context.Context, events ...shared.DomainEvent) error {
	s.savedEvents = append(s.savedEvents, events...)
	return nil
}

// SavedEvents returns the events recorded by SaveEvents
func (s *NoOpTransactionScope) SavedEvents() []shared.DomainEvent {
	return s.savedEvents
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
