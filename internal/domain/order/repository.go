package order

import (
	"context"

	"github.com/covu/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the persistence interface for orders.
// Orders are never hard-deleted; the financial record must survive.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByIDForUpdate loads the order with a row lock so concurrent
	// transition attempts serialize and the loser observes the new status
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]Order, int64, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]Order, int64, error)
	Save(ctx context.Context, o *Order) error
	// SaveWithLock saves with an optimistic version check
	SaveWithLock(ctx context.Context, o *Order) error
}
