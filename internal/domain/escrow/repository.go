package escrow

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for escrow transactions
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EscrowTransaction, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*EscrowTransaction, error)
	// FindByOrderIDForUpdate loads the escrow row with a row lock so
	// concurrent release/refund attempts serialize
	FindByOrderIDForUpdate(ctx context.Context, orderID uuid.UUID) (*EscrowTransaction, error)
	Save(ctx context.Context, e *EscrowTransaction) error
	// SaveWithLock saves with an optimistic version check
	SaveWithLock(ctx context.Context, e *EscrowTransaction) error
}
