package catalog

import (
	"context"

	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Product is a listing in a seller's store. Orders snapshot its name and
// price at creation time, so edits here never change in-flight orders.
type Product struct {
	shared.BaseAggregateRoot
	StoreID     uuid.UUID
	Name        string
	Description string
	Price       valueobject.Money
	IsActive    bool
}

// NewProduct creates an active product listing
func NewProduct(storeID uuid.UUID, name, description string, price valueobject.Money) (*Product, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price must be positive")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           storeID,
		Name:              name,
		Description:       description,
		Price:             price,
		IsActive:          true,
	}, nil
}

// Deactivate pulls the listing without touching existing orders
func (p *Product) Deactivate() {
	p.IsActive = false
}

// UpdatePrice changes the listed price for future orders
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Product price must be positive")
	}
	p.Price = price
	return nil
}

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Product, int64, error)
	Save(ctx context.Context, p *Product) error
}
