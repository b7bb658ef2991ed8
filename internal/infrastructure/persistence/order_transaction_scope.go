package persistence

import (
	"context"

	apporder "github.com/covu/backend/internal/application/order"
	"github.com/covu/backend/internal/domain/escrow"
	"github.com/covu/backend/internal/domain/order"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/wallet"
	"gorm.io/gorm"
)

// GormOrderTransactionScope implements the order TransactionScope using
// GORM transactions. One Execute call is one database transaction: the
// ledger rows, the escrow row, the order row and the outbox entries all
// commit or roll back together.
type GormOrderTransactionScope struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB, outboxSaver shared.OutboxEventSaver) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db, outboxSaver: outboxSaver}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormOrderTransactionalRepositories{tx: tx, outboxSaver: s.outboxSaver}
		return fn(repos)
	})
}

// gormOrderTransactionalRepositories provides repositories bound to one transaction.
type gormOrderTransactionalRepositories struct {
	tx          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormOrderTransactionalRepositories) OrderRepo() order.Repository {
	return NewGormOrderRepository(r.tx)
}

// EscrowRepo returns the escrow repository scoped to the current transaction
func (r *gormOrderTransactionalRepositories) EscrowRepo() escrow.Repository {
	return NewGormEscrowRepository(r.tx)
}

// WalletRepo returns the wallet repository scoped to the current transaction
func (r *gormOrderTransactionalRepositories) WalletRepo() wallet.Repository {
	return NewGormWalletRepository(r.tx)
}

// LedgerRepo returns the ledger repository scoped to the current transaction
func (r *gormOrderTransactionalRepositories) LedgerRepo() wallet.LedgerRepository {
	return NewGormLedgerRepository(r.tx)
}

// SaveEvents writes domain events to the outbox within the current transaction
func (r *gormOrderTransactionalRepositories) SaveEvents(ctx context.Context, events ...shared.DomainEvent) error {
	return r.outboxSaver.SaveEvents(ctx, r.tx, events...)
}

// Ensure GormOrderTransactionScope implements TransactionScope
var _ apporder.TransactionScope = (*GormOrderTransactionScope)(nil)

// Ensure gormOrderTransactionalRepositories implements TransactionalRepositories
var _ apporder.TransactionalRepositories = (*gormOrderTransactionalRepositories)(nil)
