package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/wallet"
	"github.com/covu/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWalletRepository implements wallet.Repository using GORM
type GormWalletRepository struct {
	db *gorm.DB
}

// NewGormWalletRepository creates a new GormWalletRepository
func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// FindByID finds a wallet by ID
func (r *GormWalletRepository) FindByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	var model models.WalletModel
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

// FindByIDForUpdate finds a wallet by ID with a row lock.
// Must be called inside a transaction; concurrent debits against the same
// wallet serialize on this lock.
func (r *GormWalletRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	var model models.WalletModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserID finds the wallet owned by a user
func (r *GormWalletRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	var model models.WalletModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a wallet
func (r *GormWalletRepository) Save(ctx context.Context, w *wallet.Wallet) error {
	model := models.WalletModelFromDomain(w)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormWalletRepository) SaveWithLock(ctx context.Context, w *wallet.Wallet) error {
	currentVersion := w.Version
	w.Version++
	w.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).Model(&models.WalletModel{}).
		Where("id = ? AND version = ?", w.ID, currentVersion).
		Updates(map[string]interface{}{
			"is_active":  w.IsActive,
			"version":    w.Version,
			"updated_at": w.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Ensure GormWalletRepository implements wallet.Repository
var _ wallet.Repository = (*GormWalletRepository)(nil)
