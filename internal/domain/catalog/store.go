package catalog

import (
	"context"
	"strings"

	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Store is a seller's storefront. Its location and delivery fee tiers feed
// the fee snapshot taken when an order is created.
type Store struct {
	shared.BaseAggregateRoot
	SellerID uuid.UUID
	Name     string
	City     string
	State    string
	// Delivery fee tiers. Fee resolution uses the first two; the
	// outside-state tier is stored but not yet applied.
	// TODO: wire DeliveryOutsideState once cross-state delivery launches.
	DeliveryWithinCity   valueobject.Money
	DeliveryOutsideCity  valueobject.Money
	DeliveryOutsideState valueobject.Money
	IsActive             bool
}

// NewStore creates an active store for a seller
func NewStore(sellerID uuid.UUID, name, city, state string, withinCity, outsideCity, outsideState valueobject.Money) (*Store, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}
	if city == "" || state == "" {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Store city and state are required")
	}
	if withinCity.IsNegative() || outsideCity.IsNegative() || outsideState.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Delivery fees cannot be negative")
	}

	return &Store{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		SellerID:             sellerID,
		Name:                 name,
		City:                 city,
		State:                state,
		DeliveryWithinCity:   withinCity,
		DeliveryOutsideCity:  outsideCity,
		DeliveryOutsideState: outsideState,
		IsActive:             true,
	}, nil
}

// DeliveryFeeFor resolves the delivery fee for a buyer location.
// Same city and state as the store gets the within-city rate, anything
// else gets the outside-city rate.
func (s *Store) DeliveryFeeFor(city, state string) valueobject.Money {
	if strings.EqualFold(city, s.City) && strings.EqualFold(state, s.State) {
		return s.DeliveryWithinCity
	}
	return s.DeliveryOutsideCity
}

// StoreRepository defines the persistence interface for stores
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID) (*Store, error)
	Save(ctx context.Context, s *Store) error
}
