package persistence

import (
	"context"

	appidentity "github.com/covu/backend/internal/application/identity"
	"github.com/covu/backend/internal/domain/identity"
	"github.com/covu/backend/internal/domain/wallet"
	"gorm.io/gorm"
)

// GormIdentityTransactionScope implements the identity TransactionScope
// using GORM transactions. Registration creates the user and their wallet
// in one transaction so neither can exist without the other.
type GormIdentityTransactionScope struct {
	db *gorm.DB
}

// NewGormIdentityTransactionScope creates a new GormIdentityTransactionScope
func NewGormIdentityTransactionScope(db *gorm.DB) *GormIdentityTransactionScope {
	return &GormIdentityTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormIdentityTransactionScope) Execute(ctx context.Context, fn func(repos appidentity.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormIdentityTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormIdentityTransactionalRepositories provides repositories bound to one transaction.
type gormIdentityTransactionalRepositories struct {
	tx *gorm.DB
}

// UserRepo returns the user repository scoped to the current transaction
func (r *gormIdentityTransactionalRepositories) UserRepo() identity.Repository {
	return NewGormUserRepository(r.tx)
}

// WalletRepo returns the wallet repository scoped to the current transaction
func (r *gormIdentityTransactionalRepositories) WalletRepo() wallet.Repository {
	return NewGormWalletRepository(r.tx)
}

// Ensure GormIdentityTransactionScope implements TransactionScope
var _ appidentity.TransactionScope = (*GormIdentityTransactionScope)(nil)

// Ensure gormIdentityTransactionalRepositories implements TransactionalRepositories
var _ appidentity.TransactionalRepositories = (*gormIdentityTransactionalRepositories)(nil)
