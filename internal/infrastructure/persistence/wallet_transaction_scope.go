package persistence

import (
	"context"

	appwallet "github.com/covu/backend/internal/application/wallet"
	"github.com/covu/backend/internal/domain/wallet"
	"gorm.io/gorm"
)

// GormWalletTransactionScope implements the wallet TransactionScope using
// GORM transactions. Deposits and withdrawals run inside it so the wallet
// lock and the ledger append commit together.
type GormWalletTransactionScope struct {
	db *gorm.DB
}

// NewGormWalletTransactionScope creates a new GormWalletTransactionScope
func NewGormWalletTransactionScope(db *gorm.DB) *GormWalletTransactionScope {
	return &GormWalletTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormWalletTransactionScope) Execute(ctx context.Context, fn func(repos appwallet.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormWalletTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormWalletTransactionalRepositories provides repositories bound to one transaction.
type gormWalletTransactionalRepositories struct {
	tx *gorm.DB
}

// WalletRepo returns the wallet repository scoped to the current transaction
func (r *gormWalletTransactionalRepositories) WalletRepo() wallet.Repository {
	return NewGormWalletRepository(r.tx)
}

// LedgerRepo returns the ledger repository scoped to the current transaction
func (r *gormWalletTransactionalRepositories) LedgerRepo() wallet.LedgerRepository {
	return NewGormLedgerRepository(r.tx)
}

// Ensure GormWalletTransactionScope implements TransactionScope
var _ appwallet.TransactionScope = (*GormWalletTransactionScope)(nil)

// Ensure gormWalletTransactionalRepositories implements TransactionalRepositories
var _ appwallet.TransactionalRepositories = (*gormWalletTransactionalRepositories)(nil)
