package wallet

import (
	"context"
	"testing"

	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/covu/backend/internal/domain/wallet"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory repositories backing the service tests. They implement the
// same interfaces the gorm repositories do, minus real locking.

type memWalletRepo struct {
	wallets map[uuid.UUID]*wallet.Wallet
}

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{wallets: make(map[uuid.UUID]*wallet.Wallet)}
}

func (r *memWalletRepo) FindByID(_ context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	w, ok := r.wallets[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return w, nil
}

func (r *memWalletRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	return r.FindByID(ctx, id)
}

func (r *memWalletRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	for _, w := range r.wallets {
		if w.UserID == userID {
			return w, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memWalletRepo) Save(_ context.Context, w *wallet.Wallet) error {
	r.wallets[w.ID] = w
	return nil
}

func (r *memWalletRepo) SaveWithLock(ctx context.Context, w *wallet.Wallet) error {
	return r.Save(ctx, w)
}

type memLedgerRepo struct {
	transactions []wallet.LedgerTransaction
}

func (r *memLedgerRepo) Save(_ context.Context, tx *wallet.LedgerTransaction) error {
	for _, existing := range r.transactions {
		if existing.Reference == tx.Reference {
			return shared.ErrAlreadyExists
		}
	}
	r.transactions = append(r.transactions, *tx)
	return nil
}

func (r *memLedgerRepo) FindByID(_ context.Context, id uuid.UUID) (*wallet.LedgerTransaction, error) {
	for i := range r.transactions {
		if r.transactions[i].ID == id {
			return &r.transactions[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memLedgerRepo) FindByReference(_ context.Context, reference string) (*wallet.LedgerTransaction, error) {
	for i := range r.transactions {
		if r.transactions[i].Reference == reference {
			return &r.transactions[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memLedgerRepo) FindByWallet(_ context.Context, walletID uuid.UUID, _ shared.Filter) ([]wallet.LedgerTransaction, int64, error) {
	out := r.walletTransactions(walletID)
	return out, int64(len(out)), nil
}

func (r *memLedgerRepo) BalanceOf(_ context.Context, walletID uuid.UUID) (valueobject.Money, error) {
	return wallet.DeriveBalance(r.walletTransactions(walletID)), nil
}

func (r *memLedgerRepo) SummaryOf(_ context.Context, walletID uuid.UUID) (*wallet.Summary, error) {
	txs := r.walletTransactions(walletID)
	earned := valueobject.ZeroNGN()
	spent := valueobject.ZeroNGN()
	for _, tx := range txs {
		if tx.Type.IsCredit() {
			earned = earned.MustAdd(tx.Amount)
		} else {
			spent = spent.MustAdd(tx.Amount)
		}
	}
	return &wallet.Summary{
		Balance:     wallet.DeriveBalance(txs),
		TotalEarned: earned,
		TotalSpent:  spent,
	}, nil
}

func (r *memLedgerRepo) walletTransactions(walletID uuid.UUID) []wallet.LedgerTransaction {
	var out []wallet.LedgerTransaction
	for _, tx := range r.transactions {
		if tx.WalletID == walletID {
			out = append(out, tx)
		}
	}
	return out
}

type ledgerFixture struct {
	service    *LedgerService
	walletRepo *memWalletRepo
	ledgerRepo *memLedgerRepo
	userID     uuid.UUID
	wallet     *wallet.Wallet
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	walletRepo := newMemWalletRepo()
	ledgerRepo := &memLedgerRepo{}

	userID := uuid.New()
	w, err := wallet.NewWallet(userID)
	require.NoError(t, err)
	require.NoError(t, walletRepo.Save(context.Background(), w))

	scope := NewNoOpTransactionScope(walletRepo, ledgerRepo)
	service := NewLedgerService(scope, walletRepo, ledgerRepo, zap.NewNop())

	return &ledgerFixture{
		service:    service,
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		userID:     userID,
		wallet:     w,
	}
}

func ngn(amount float64) valueobject.Money {
	return valueobject.NewMoneyNGNFromFloat(amount)
}

func TestLedgerService_Deposit(t *testing.T) {
	t.Run("credits the wallet", func(t *testing.T) {
		f := newLedgerFixture(t)

		tx, err := f.service.Deposit(context.Background(), DepositRequest{
			UserID:    f.userID,
			Amount:    ngn(10000),
			Reference: "PSK-REF-001",
		})
		require.NoError(t, err)
		assert.Equal(t, wallet.TransactionTypeCredit, tx.Type)
		assert.True(t, tx.BalanceAfter.Equals(ngn(10000)))

		balance, err := f.service.GetBalance(context.Background(), f.userID)
		require.NoError(t, err)
		assert.True(t, balance.Equals(ngn(10000)))
	})

	t.Run("replayed reference returns the original transaction", func(t *testing.T) {
		f := newLedgerFixture(t)

		first, err := f.service.Deposit(context.Background(), DepositRequest{
			UserID: f.userID, Amount: ngn(10000), Reference: "PSK-REF-001",
		})
		require.NoError(t, err)

		second, err := f.service.Deposit(context.Background(), DepositRequest{
			UserID: f.userID, Amount: ngn(10000), Reference: "PSK-REF-001",
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		balance, err := f.service.GetBalance(context.Background(), f.userID)
		require.NoError(t, err)
		assert.True(t, balance.Equals(ngn(10000)))
	})

	t.Run("rejects empty reference", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.service.Deposit(context.Background(), DepositRequest{
			UserID: f.userID, Amount: ngn(10000),
		})
		assert.Error(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.service.Deposit(context.Background(), DepositRequest{
			UserID: uuid.New(), Amount: ngn(10000), Reference: "PSK-REF-002",
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestLedgerService_Withdraw(t *testing.T) {
	t.Run("debits the wallet", func(t *testing.T) {
		f := newLedgerFixture(t)
		_, err := f.service.Deposit(context.Background(), DepositRequest{
			UserID: f.userID, Amount: ngn(10000), Reference: "PSK-REF-001",
		})
		require.NoError(t, err)

		tx, err := f.service.Withdraw(context.Background(), WithdrawRequest{
			UserID: f.userID, Amount: ngn(4000), Reference: "WTH-REF-001",
		})
		require.NoError(t, err)
		assert.Equal(t, wallet.TransactionTypeWithdrawal, tx.Type)
		assert.True(t, tx.BalanceAfter.Equals(ngn(6000)))
	})

	t.Run("insufficient funds", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.service.Withdraw(context.Background(), WithdrawRequest{
			UserID: f.userID, Amount: ngn(4000), Reference: "WTH-REF-001",
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientFunds)
	})

	t.Run("inactive wallet cannot be debited", func(t *testing.T) {
		f := newLedgerFixture(t)
		_, err := f.service.Deposit(context.Background(), DepositRequest{
			UserID: f.userID, Amount: ngn(10000), Reference: "PSK-REF-001",
		})
		require.NoError(t, err)
		require.NoError(t, f.service.DeactivateWallet(context.Background(), f.userID))

		_, err = f.service.Withdraw(context.Background(), WithdrawRequest{
			UserID: f.userID, Amount: ngn(4000), Reference: "WTH-REF-001",
		})
		assert.ErrorIs(t, err, shared.ErrWalletInactive)
	})

	t.Run("inactive wallet still accepts deposits", func(t *testing.T) {
		f := newLedgerFixture(t)
		require.NoError(t, f.service.DeactivateWallet(context.Background(), f.userID))

		_, err := f.service.Deposit(context.Background(), DepositRequest{
			UserID: f.userID, Amount: ngn(2500), Reference: "PSK-REF-001",
		})
		require.NoError(t, err)
	})
}

func TestLedgerService_GetSummary(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.service.Deposit(context.Background(), DepositRequest{
		UserID: f.userID, Amount: ngn(10000), Reference: "PSK-REF-001",
	})
	require.NoError(t, err)
	_, err = f.service.Withdraw(context.Background(), WithdrawRequest{
		UserID: f.userID, Amount: ngn(3000), Reference: "WTH-REF-001",
	})
	require.NoError(t, err)

	summary, err := f.service.GetSummary(context.Background(), f.userID)
	require.NoError(t, err)
	assert.True(t, summary.Balance.Equals(ngn(7000)))
	assert.True(t, summary.TotalEarned.Equals(ngn(10000)))
	assert.True(t, summary.TotalSpent.Equals(ngn(3000)))
}

func TestLedgerService_ListTransactions(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.service.Deposit(context.Background(), DepositRequest{
		UserID: f.userID, Amount: ngn(10000), Reference: "PSK-REF-001",
	})
	require.NoError(t, err)
	_, err = f.service.Withdraw(context.Background(), WithdrawRequest{
		UserID: f.userID, Amount: ngn(3000), Reference: "WTH-REF-001",
	})
	require.NoError(t, err)

	page, err := f.service.ListTransactions(context.Background(), f.userID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Total)
}

func TestLedgerService_ActivateWallet(t *testing.T) {
	f := newLedgerFixture(t)

	require.NoError(t, f.service.DeactivateWallet(context.Background(), f.userID))
	w, err := f.service.GetWallet(context.Background(), f.userID)
	require.NoError(t, err)
	assert.False(t, w.IsActive)

	require.NoError(t, f.service.ActivateWallet(context.Background(), f.userID))
	w, err = f.service.GetWallet(context.Background(), f.userID)
	require.NoError(t, err)
	assert.True(t, w.IsActive)
}
