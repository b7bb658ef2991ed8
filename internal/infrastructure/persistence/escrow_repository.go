package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/covu/backend/internal/domain/escrow"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEscrowRepository implements escrow.Repository using GORM
type GormEscrowRepository struct {
	db *gorm.DB
}

// NewGormEscrowRepository creates a new GormEscrowRepository
func NewGormEscrowRepository(db *gorm.DB) *GormEscrowRepository {
	return &GormEscrowRepository{db: db}
}

// FindByID finds an escrow transaction by ID
func (r *GormEscrowRepository) FindByID(ctx context.Context, id uuid.UUID) (*escrow.EscrowTransaction, error) {
	var model models.EscrowTransactionModel
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

// FindByOrderID finds the escrow transaction backing an order
func (r *GormEscrowRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*escrow.EscrowTransaction, error) {
	var model models.EscrowTransactionModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderIDForUpdate finds the escrow row with a row lock.
// Must be called inside a transaction; concurrent release and refund
// attempts serialize here.
func (r *GormEscrowRepository) FindByOrderIDForUpdate(ctx context.Context, orderID uuid.UUID) (*escrow.EscrowTransaction, error) {
	var model models.EscrowTransactionModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an escrow transaction
func (r *GormEscrowRepository) Save(ctx context.Context, e *escrow.EscrowTransaction) error {
	model := models.EscrowTransactionModelFromDomain(e)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormEscrowRepository) SaveWithLock(ctx context.Context, e *escrow.EscrowTransaction) error {
	currentVersion := e.Version
	e.Version++
	e.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).Model(&models.EscrowTransactionModel{}).
		Where("id = ? AND version = ?", e.ID, currentVersion).
		Updates(map[string]interface{}{
			"status":           e.Status,
			"credit_reference": e.CreditReference,
			"refund_reference": e.RefundReference,
			"released_at":      e.ReleasedAt,
			"refunded_at":      e.RefundedAt,
			"version":          e.Version,
			"updated_at":       e.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Ensure GormEscrowRepository implements escrow.Repository
var _ escrow.Repository = (*GormEscrowRepository)(nil)
