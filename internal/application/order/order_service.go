package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/covu/backend/internal/domain/catalog"
	"github.com/covu/backend/internal/domain/escrow"
	"github.com/covu/backend/internal/domain/identity"
	"github.com/covu/backend/internal/domain/order"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/covu/backend/internal/domain/wallet"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service orchestrates the order lifecycle. Every transition that moves
// money runs inside a single transaction scope: the ledger rows, the escrow
// row and the order row commit together or not at all. Notifications ride
// along as outbox events and are dispatched after commit.
type Service struct {
	scope       TransactionScope
	orderRepo   order.Repository
	walletRepo  wallet.Repository
	productRepo catalog.ProductRepository
	storeRepo   catalog.StoreRepository
	userRepo    identity.Repository
	logger      *zap.Logger
}

// NewService creates a new order service
func NewService(
	scope TransactionScope,
	orderRepo order.Repository,
	walletRepo wallet.Repository,
	productRepo catalog.ProductRepository,
	storeRepo catalog.StoreRepository,
	userRepo identity.Repository,
	logger *zap.Logger,
) *Service {
	return &Service{
		scope:       scope,
		orderRepo:   orderRepo,
		walletRepo:  walletRepo,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateOrderRequest carries the buyer's checkout input
type CreateOrderRequest struct {
	BuyerID         uuid.UUID
	ProductID       uuid.UUID
	Quantity        int
	DeliveryAddress string
}

// CreateOrder places an order: it snapshots the product price and delivery
// fee, debits the buyer's wallet and holds the funds in escrow, all in one
// transaction. The order number doubles as the debit's idempotency
// reference.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is no longer available")
	}

	store, err := s.storeRepo.FindByID(ctx, product.StoreID)
	if err != nil {
		return nil, err
	}

	buyer, err := s.userRepo.FindByID(ctx, req.BuyerID)
	if err != nil {
		return nil, err
	}

	buyerWallet, err := s.walletRepo.FindByUserID(ctx, req.BuyerID)
	if err != nil {
		return nil, err
	}
	sellerWallet, err := s.walletRepo.FindByUserID(ctx, store.SellerID)
	if err != nil {
		return nil, err
	}

	deliveryFee := store.DeliveryFeeFor(buyer.City, buyer.State)
	orderNumber := order.GenerateOrderNumber()

	o, err := order.NewOrder(
		orderNumber,
		req.BuyerID, store.SellerID, product.ID,
		product.Name,
		req.Quantity,
		product.Price, deliveryFee,
		req.DeliveryAddress,
	)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		lockedWallet, err := repos.WalletRepo().FindByIDForUpdate(ctx, buyerWallet.ID)
		if err != nil {
			return err
		}
		if err := lockedWallet.EnsureCanDebit(); err != nil {
			return err
		}

		if _, err := appendOnce(ctx, repos, lockedWallet.ID,
			wallet.TransactionTypeEscrowHold, o.TotalAmount, orderNumber,
			fmt.Sprintf("Escrow hold for order %s", orderNumber)); err != nil {
			return err
		}

		esc, err := escrow.NewEscrowTransaction(o.ID, buyerWallet.ID, sellerWallet.ID, o.TotalAmount, orderNumber)
		if err != nil {
			return err
		}
		if err := repos.EscrowRepo().Save(ctx, esc); err != nil {
			return err
		}

		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}

		return s.flushEvents(ctx, repos, o)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_number", o.OrderNumber),
		zap.String("buyer_id", o.BuyerID.String()),
		zap.String("seller_id", o.SellerID.String()),
		zap.String("total", o.TotalAmount.StringFixed(2)),
	)

	return o, nil
}

// AcceptOrder lets the seller accept a pending order
func (s *Service) AcceptOrder(ctx context.Context, orderID, actorID uuid.UUID) (*order.Order, error) {
	return s.transition(ctx, orderID, "accept", func(o *order.Order) error {
		return o.Accept(actorID)
	})
}

// DeliverOrder lets the seller mark an accepted order delivered
func (s *Service) DeliverOrder(ctx context.Context, orderID, actorID uuid.UUID) (*order.Order, error) {
	return s.transition(ctx, orderID, "deliver", func(o *order.Order) error {
		return o.MarkDelivered(actorID)
	})
}

// transition runs a state change that moves no money
func (s *Service) transition(ctx context.Context, orderID uuid.UUID, action string, apply func(o *order.Order) error) (*order.Order, error) {
	var result *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := apply(o); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, o); err != nil {
			return err
		}
		result = o
		return s.flushEvents(ctx, repos, o)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order transitioned",
		zap.String("order_number", result.OrderNumber),
		zap.String("action", action),
		zap.String("status", result.Status.String()),
	)

	return result, nil
}

// ConfirmOrder lets the buyer confirm receipt. Confirmation releases the
// escrowed funds to the seller in the same transaction that flips the
// order status, so a crash can never settle one without the other.
func (s *Service) ConfirmOrder(ctx context.Context, orderID, actorID uuid.UUID) (*order.Order, error) {
	var result *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.Confirm(actorID); err != nil {
			return err
		}

		esc, err := repos.EscrowRepo().FindByOrderIDForUpdate(ctx, o.ID)
		if err != nil {
			return err
		}

		// Lock the seller wallet so the balance snapshot stays exact.
		// Credits are accepted even on a deactivated wallet.
		if _, err := repos.WalletRepo().FindByIDForUpdate(ctx, esc.SellerWalletID); err != nil {
			return err
		}

		releaseRef := escrow.ReleaseReferenceFor(o.OrderNumber)
		if _, err := appendOnce(ctx, repos, esc.SellerWalletID,
			wallet.TransactionTypeEscrowRelease, esc.Amount, releaseRef,
			fmt.Sprintf("Payment for order %s", o.OrderNumber)); err != nil {
			return err
		}

		if err := esc.Release(releaseRef); err != nil {
			return err
		}
		if err := repos.EscrowRepo().SaveWithLock(ctx, esc); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, o); err != nil {
			return err
		}

		result = o
		return s.flushEvents(ctx, repos, o)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order confirmed, escrow released",
		zap.String("order_number", result.OrderNumber),
		zap.String("amount", result.TotalAmount.StringFixed(2)),
	)

	return result, nil
}

// CancelOrder cancels the order and refunds the escrowed funds to the
// buyer in one transaction. Who may cancel depends on the order status;
// the aggregate enforces that.
func (s *Service) CancelOrder(ctx context.Context, orderID, actorID uuid.UUID, reason string) (*order.Order, error) {
	var result *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.Cancel(actorID, reason); err != nil {
			return err
		}

		esc, err := repos.EscrowRepo().FindByOrderIDForUpdate(ctx, o.ID)
		if err != nil {
			return err
		}

		if _, err := repos.WalletRepo().FindByIDForUpdate(ctx, esc.BuyerWalletID); err != nil {
			return err
		}

		refundRef := escrow.RefundReferenceFor(o.OrderNumber)
		if _, err := appendOnce(ctx, repos, esc.BuyerWalletID,
			wallet.TransactionTypeRefund, esc.Amount, refundRef,
			fmt.Sprintf("Refund for cancelled order %s", o.OrderNumber)); err != nil {
			return err
		}

		if err := esc.Refund(refundRef); err != nil {
			return err
		}
		if err := repos.EscrowRepo().SaveWithLock(ctx, esc); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, o); err != nil {
			return err
		}

		result = o
		return s.flushEvents(ctx, repos, o)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order cancelled, escrow refunded",
		zap.String("order_number", result.OrderNumber),
		zap.String("cancelled_by", string(*result.CancelledBy)),
	)

	return result, nil
}

// GetOrder returns an order to one of its parties
func (s *Service) GetOrder(ctx context.Context, orderID, actorID uuid.UUID) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsParty(actorID) {
		return nil, shared.ErrPermissionDenied
	}
	return o, nil
}

// ListBuyerOrders returns the orders a user placed
func (s *Service) ListBuyerOrders(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) (shared.Paginated[order.Order], error) {
	orders, total, err := s.orderRepo.FindByBuyer(ctx, buyerID, filter)
	if err != nil {
		return shared.Paginated[order.Order]{}, err
	}
	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

// ListSellerOrders returns the orders placed against a user's store
func (s *Service) ListSellerOrders(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (shared.Paginated[order.Order], error) {
	orders, total, err := s.orderRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return shared.Paginated[order.Order]{}, err
	}
	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

// flushEvents moves the aggregate's pending events into the outbox
func (s *Service) flushEvents(ctx context.Context, repos TransactionalRepositories, o *order.Order) error {
	events := o.GetDomainEvents()
	if len(events) == 0 {
		return nil
	}
	if err := repos.SaveEvents(ctx, events...); err != nil {
		return err
	}
	o.ClearDomainEvents()
	return nil
}

// appendOnce appends a ledger transaction unless its reference was already
// recorded, in which case the existing transaction is returned unchanged.
// The balance snapshot is taken inside the current transaction, after the
// wallet locks, so it cannot go stale before the append commits.
func appendOnce(
	ctx context.Context,
	repos TransactionalRepositories,
	walletID uuid.UUID,
	txType wallet.TransactionType,
	amount valueobject.Money,
	reference, description string,
) (*wallet.LedgerTransaction, error) {
	existing, err := repos.LedgerRepo().FindByReference(ctx, reference)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	balanceBefore, err := repos.LedgerRepo().BalanceOf(ctx, walletID)
	if err != nil {
		return nil, err
	}

	tx, err := wallet.NewLedgerTransaction(walletID, txType, amount, balanceBefore, reference)
	if err != nil {
		return nil, err
	}
	tx.WithDescription(description)

	if err := repos.LedgerRepo().Save(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}
