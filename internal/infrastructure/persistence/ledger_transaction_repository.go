package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/covu/backend/internal/domain/wallet"
	"github.com/covu/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// creditTypes and debitTypes partition the transaction types by balance direction.
var (
	creditTypes = []wallet.TransactionType{
		wallet.TransactionTypeCredit,
		wallet.TransactionTypeEscrowRelease,
		wallet.TransactionTypeRefund,
	}
	debitTypes = []wallet.TransactionType{
		wallet.TransactionTypeDebit,
		wallet.TransactionTypeEscrowHold,
		wallet.TransactionTypeWithdrawal,
	}
)

// GormLedgerRepository implements wallet.LedgerRepository using GORM.
// The ledger is append-only: this repository never updates or deletes rows.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Save appends a ledger transaction. The unique index on reference rejects
// a second transaction carrying the same idempotency reference.
func (r *GormLedgerRepository) Save(ctx context.Context, tx *wallet.LedgerTransaction) error {
	model := models.LedgerTransactionModelFromDomain(tx)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a ledger transaction by ID
func (r *GormLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*wallet.LedgerTransaction, error) {
	var model models.LedgerTransactionModel
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReference finds the ledger transaction carrying the given reference
func (r *GormLedgerRepository) FindByReference(ctx context.Context, reference string) (*wallet.LedgerTransaction, error) {
	var model models.LedgerTransactionModel
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByWallet lists a wallet's transactions, most recent first
func (r *GormLedgerRepository) FindByWallet(ctx context.Context, walletID uuid.UUID, filter shared.Filter) ([]wallet.LedgerTransaction, int64, error) {
	var transactionModels []models.LedgerTransactionModel
	var total int64

	countQuery := r.db.WithContext(ctx).Model(&models.LedgerTransactionModel{}).
		Where("wallet_id = ?", walletID)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(&models.LedgerTransactionModel{}).
		Where("wallet_id = ?", walletID)
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LedgerSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, 0, err
	}

	transactions := make([]wallet.LedgerTransaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = *transactionModels[i].ToDomain()
	}
	return transactions, total, nil
}

// BalanceOf derives a wallet's balance from its ledger: credit-class
// amounts count positive, debit-class amounts count negative.
func (r *GormLedgerRepository) BalanceOf(ctx context.Context, walletID uuid.UUID) (valueobject.Money, error) {
	var balance decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.LedgerTransactionModel{}).
		Select("COALESCE(SUM(CASE WHEN type IN ? THEN amount ELSE -amount END), 0)", creditTypes).
		Where("wallet_id = ?", walletID).
		Scan(&balance).Error
	if err != nil {
		return valueobject.ZeroNGN(), err
	}
	return valueobject.NewMoneyNGN(balance), nil
}

// SummaryOf derives the balance plus lifetime earned and spent totals
func (r *GormLedgerRepository) SummaryOf(ctx context.Context, walletID uuid.UUID) (*wallet.Summary, error) {
	var row struct {
		Balance     decimal.Decimal
		TotalEarned decimal.Decimal
		TotalSpent  decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&models.LedgerTransactionModel{}).
		Select(`COALESCE(SUM(CASE WHEN type IN ? THEN amount ELSE -amount END), 0) AS balance,
			COALESCE(SUM(CASE WHEN type IN ? THEN amount ELSE 0 END), 0) AS total_earned,
			COALESCE(SUM(CASE WHEN type IN ? THEN amount ELSE 0 END), 0) AS total_spent`,
			creditTypes, creditTypes, debitTypes).
		Where("wallet_id = ?", walletID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &wallet.Summary{
		Balance:     valueobject.NewMoneyNGN(row.Balance),
		TotalEarned: valueobject.NewMoneyNGN(row.TotalEarned),
		TotalSpent:  valueobject.NewMoneyNGN(row.TotalSpent),
	}, nil
}

// Ensure GormLedgerRepository implements wallet.LedgerRepository
var _ wallet.LedgerRepository = (*GormLedgerRepository)(nil)
