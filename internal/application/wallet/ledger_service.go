package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/covu/backend/internal/domain/wallet"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LedgerService exposes wallet balances and the append-only ledger.
// Appends are idempotent by reference: a replayed reference returns the
// transaction recorded the first time and writes nothing.
type LedgerService struct {
	scope      TransactionScope
	walletRepo wallet.Repository
	ledgerRepo wallet.LedgerRepository
	logger     *zap.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	scope TransactionScope,
	walletRepo wallet.Repository,
	ledgerRepo wallet.LedgerRepository,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		scope:      scope,
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// GetWallet returns a user's wallet
func (s *LedgerService) GetWallet(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	return s.walletRepo.FindByUserID(ctx, userID)
}

// GetBalance derives a user's wallet balance from the ledger
func (s *LedgerService) GetBalance(ctx context.Context, userID uuid.UUID) (valueobject.Money, error) {
	w, err := s.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		return valueobject.Money{}, err
	}
	return s.ledgerRepo.BalanceOf(ctx, w.ID)
}

// GetSummary derives balance plus lifetime earned/spent totals
func (s *LedgerService) GetSummary(ctx context.Context, userID uuid.UUID) (*wallet.Summary, error) {
	w, err := s.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ledgerRepo.SummaryOf(ctx, w.ID)
}

// ListTransactions returns a page of the user's ledger history
func (s *LedgerService) ListTransactions(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[wallet.LedgerTransaction], error) {
	w, err := s.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		return shared.Paginated[wallet.LedgerTransaction]{}, err
	}
	txs, total, err := s.ledgerRepo.FindByWallet(ctx, w.ID, filter)
	if err != nil {
		return shared.Paginated[wallet.LedgerTransaction]{}, err
	}
	return shared.NewPaginated(txs, total, filter.Page, filter.PageSize), nil
}

// DepositRequest credits a wallet with funds collected by the payment
// gateway. The reference comes from the gateway, so webhook replays
// deduplicate naturally.
type DepositRequest struct {
	UserID    uuid.UUID
	Amount    valueobject.Money
	Reference string
}

// Deposit appends a CREDIT transaction for externally collected funds
func (s *LedgerService) Deposit(ctx context.Context, req DepositRequest) (*wallet.LedgerTransaction, error) {
	return s.append(ctx, req.UserID, wallet.TransactionTypeCredit, req.Amount, req.Reference,
		"Wallet funding")
}

// WithdrawRequest moves wallet funds out to the user's bank account
type WithdrawRequest struct {
	UserID    uuid.UUID
	Amount    valueobject.Money
	Reference string
}

// Withdraw appends a WITHDRAWAL transaction. The wallet must be active
// and hold enough balance.
func (s *LedgerService) Withdraw(ctx context.Context, req WithdrawRequest) (*wallet.LedgerTransaction, error) {
	return s.append(ctx, req.UserID, wallet.TransactionTypeWithdrawal, req.Amount, req.Reference,
		"Withdrawal to bank account")
}

func (s *LedgerService) append(
	ctx context.Context,
	userID uuid.UUID,
	txType wallet.TransactionType,
	amount valueobject.Money,
	reference, description string,
) (*wallet.LedgerTransaction, error) {
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference cannot be empty")
	}

	w, err := s.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var result *wallet.LedgerTransaction
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		locked, err := repos.WalletRepo().FindByIDForUpdate(ctx, w.ID)
		if err != nil {
			return err
		}
		if txType.IsDebit() {
			if err := locked.EnsureCanDebit(); err != nil {
				return err
			}
		}

		existing, err := repos.LedgerRepo().FindByReference(ctx, reference)
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		balanceBefore, err := repos.LedgerRepo().BalanceOf(ctx, locked.ID)
		if err != nil {
			return err
		}

		tx, err := wallet.NewLedgerTransaction(locked.ID, txType, amount, balanceBefore, reference)
		if err != nil {
			return err
		}
		tx.WithDescription(description)

		if err := repos.LedgerRepo().Save(ctx, tx); err != nil {
			return err
		}
		result = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Ledger transaction appended",
		zap.String("wallet_id", w.ID.String()),
		zap.String("type", txType.String()),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("reference", reference),
	)

	return result, nil
}

// DeactivateWallet blocks a wallet from being debited
func (s *LedgerService) DeactivateWallet(ctx context.Context, userID uuid.UUID) error {
	return s.setActive(ctx, userID, false)
}

// ActivateWallet re-enables debits on a wallet
func (s *LedgerService) ActivateWallet(ctx context.Context, userID uuid.UUID) error {
	return s.setActive(ctx, userID, true)
}

func (s *LedgerService) setActive(ctx context.Context, userID uuid.UUID, active bool) error {
	w, err := s.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if active {
		w.Activate()
	} else {
		w.Deactivate()
	}
	if err := s.walletRepo.SaveWithLock(ctx, w); err != nil {
		return fmt.Errorf("failed to update wallet state: %w", err)
	}
	return nil
}
