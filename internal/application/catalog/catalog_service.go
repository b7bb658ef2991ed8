package catalog

import (
	"context"

	"github.com/covu/backend/internal/domain/catalog"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service exposes the read side of the catalog. Orders snapshot product
// and store data through the domain repositories; this service only
// serves browse queries.
type Service struct {
	productRepo catalog.ProductRepository
	storeRepo   catalog.StoreRepository
	logger      *zap.Logger
}

// NewService creates a new catalog service
func NewService(productRepo catalog.ProductRepository, storeRepo catalog.StoreRepository, logger *zap.Logger) *Service {
	return &Service{
		productRepo: productRepo,
		storeRepo:   storeRepo,
		logger:      logger,
	}
}

// GetProduct returns a product by ID
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// ListStoreProducts returns a page of a store's products
func (s *Service) ListStoreProducts(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		return shared.Paginated[catalog.Product]{}, err
	}
	products, total, err := s.productRepo.FindByStore(ctx, storeID, filter)
	if err != nil {
		return shared.Paginated[catalog.Product]{}, err
	}
	return shared.NewPaginated(products, total, filter.Page, filter.PageSize), nil
}

// GetStore returns a store by ID
func (s *Service) GetStore(ctx context.Context, id uuid.UUID) (*catalog.Store, error) {
	return s.storeRepo.FindByID(ctx, id)
}

// GetSellerStore returns the store owned by a seller
func (s *Service) GetSellerStore(ctx context.Context, sellerID uuid.UUID) (*catalog.Store, error) {
	return s.storeRepo.FindBySeller(ctx, sellerID)
}
