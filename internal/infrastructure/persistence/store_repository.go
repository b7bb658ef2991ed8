package persistence

import (
	"context"
	"errors"

	"github.com/covu/backend/internal/domain/catalog"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStoreRepository implements catalog.StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID finds a store by ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Store, error) {
	var model models.StoreModel
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

// FindBySeller finds the store owned by a seller
func (r *GormStoreRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) (*catalog.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a store
func (r *GormStoreRepository) Save(ctx context.Context, s *catalog.Store) error {
	model := models.StoreModelFromDomain(s)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Ensure GormStoreRepository implements catalog.StoreRepository
var _ catalog.StoreRepository = (*GormStoreRepository)(nil)
