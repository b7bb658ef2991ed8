package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	walletapp "github.com/covu/backend/internal/application/wallet"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/covu/backend/internal/domain/wallet"
	"github.com/covu/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Minimal in-memory wallet repositories so the handler tests exercise the
// real service underneath.

type memWalletRepo struct {
	wallets map[uuid.UUID]*wallet.Wallet
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
	var out []wallet.LedgerTransaction
	for _, tx := range r.transactions {
		if tx.WalletID == walletID {
			out = append(out, tx)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memLedgerRepo) BalanceOf(_ context.Context, walletID uuid.UUID) (valueobject.Money, error) {
	var own []wallet.LedgerTransaction
	for _, tx := range r.transactions {
		if tx.WalletID == walletID {
			own = append(own, tx)
		}
	}
	return wallet.DeriveBalance(own), nil
}

func (r *memLedgerRepo) SummaryOf(ctx context.Context, walletID uuid.UUID) (*wallet.Summary, error) {
	balance, err := r.BalanceOf(ctx, walletID)
	if err != nil {
		return nil, err
	}
	return &wallet.Summary{
		Balance:     balance,
		TotalEarned: valueobject.ZeroNGN(),
		TotalSpent:  valueobject.ZeroNGN(),
	}, nil
}

func newWalletTestRouter(t *testing.T) (*gin.Engine, uuid.UUID) {
	t.Helper()

	walletRepo := &memWalletRepo{wallets: make(map[uuid.UUID]*wallet.Wallet)}
	ledgerRepo := &memLedgerRepo{}

	userID := uuid.New()
	w, err := wallet.NewWallet(userID)
	require.NoError(t, err)
	require.NoError(t, walletRepo.Save(context.Background(), w))

	scope := walletapp.NewNoOpTransactionScope(walletRepo, ledgerRepo)
	service := walletapp.NewLedgerService(scope, walletRepo, ledgerRepo, zap.NewNop())
	h := NewWalletHandler(service)

	router := gin.New()
	router.GET("/wallet", h.GetWallet)
	router.GET("/wallet/summary", h.GetSummary)
	router.GET("/wallet/transactions", h.ListTransactions)
	router.POST("/wallet/deposit", h.Deposit)
	router.POST("/wallet/withdraw", h.Withdraw)

	return router, userID
}

func doWalletRequest(router *gin.Engine, method, path, body string, userID uuid.UUID) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != uuid.Nil {
		req.Header.Set("X-User-ID", userID.String())
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWalletHandler_GetWallet(t *testing.T) {
	t.Run("returns wallet with derived balance", func(t *testing.T) {
		router, userID := newWalletTestRouter(t)

		resp := doWalletRequest(router, "POST", "/wallet/deposit",
			`{"amount": 10000, "reference": "PSK-REF-001"}`, userID)
		require.Equal(t, http.StatusCreated, resp.Code)

		resp = doWalletRequest(router, "GET", "/wallet", "", userID)
		require.Equal(t, http.StatusOK, resp.Code)

		var envelope dto.Response
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
		assert.True(t, envelope.Success)

		data := envelope.Data.(map[string]any)
		assert.Equal(t, float64(10000), data["balance"])
		assert.Equal(t, "NGN", data["currency"])
	})

	t.Run("requires user identity", func(t *testing.T) {
		router, _ := newWalletTestRouter(t)

		resp := doWalletRequest(router, "GET", "/wallet", "", uuid.Nil)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestWalletHandler_Deposit(t *testing.T) {
	t.Run("replayed reference does not double credit", func(t *testing.T) {
		router, userID := newWalletTestRouter(t)

		first := doWalletRequest(router, "POST", "/wallet/deposit",
			`{"amount": 10000, "reference": "PSK-REF-001"}`, userID)
		require.Equal(t, http.StatusCreated, first.Code)

		second := doWalletRequest(router, "POST", "/wallet/deposit",
			`{"amount": 10000, "reference": "PSK-REF-001"}`, userID)
		require.Equal(t, http.StatusCreated, second.Code)

		resp := doWalletRequest(router, "GET", "/wallet", "", userID)
		var envelope dto.Response
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
		data := envelope.Data.(map[string]any)
		assert.Equal(t, float64(10000), data["balance"])
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		router, userID := newWalletTestRouter(t)

		resp := doWalletRequest(router, "POST", "/wallet/deposit",
			`{"amount": 0, "reference": "PSK-REF-001"}`, userID)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("rejects missing reference", func(t *testing.T) {
		router, userID := newWalletTestRouter(t)

		resp := doWalletRequest(router, "POST", "/wallet/deposit",
			`{"amount": 100}`, userID)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestWalletHandler_Withdraw(t *testing.T) {
	t.Run("insufficient funds maps to 422", func(t *testing.T) {
		router, userID := newWalletTestRouter(t)

		resp := doWalletRequest(router, "POST", "/wallet/withdraw",
			`{"amount": 5000, "reference": "WTH-REF-001"}`, userID)
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

		var envelope dto.Response
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
		require.NotNil(t, envelope.Error)
		assert.Equal(t, dto.ErrCodeInsufficientFunds, envelope.Error.Code)
	})

	t.Run("debits after funding", func(t *testing.T) {
		router, userID := newWalletTestRouter(t)

		resp := doWalletRequest(router, "POST", "/wallet/deposit",
			`{"amount": 10000, "reference": "PSK-REF-001"}`, userID)
		require.Equal(t, http.StatusCreated, resp.Code)

		resp = doWalletRequest(router, "POST", "/wallet/withdraw",
			`{"amount": 4000, "reference": "WTH-REF-001"}`, userID)
		require.Equal(t, http.StatusCreated, resp.Code)

		var envelope dto.Response
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
		data := envelope.Data.(map[string]any)
		assert.Equal(t, float64(6000), data["balance_after"])
		assert.Equal(t, "WITHDRAWAL", data["type"])
	})
}

func TestWalletHandler_ListTransactions(t *testing.T) {
	t.Run("pages the ledger history", func(t *testing.T) {
		router, userID := newWalletTestRouter(t)

		require.Equal(t, http.StatusCreated, doWalletRequest(router, "POST", "/wallet/deposit",
			`{"amount": 10000, "reference": "PSK-REF-001"}`, userID).Code)
		require.Equal(t, http.StatusCreated, doWalletRequest(router, "POST", "/wallet/withdraw",
			`{"amount": 2000, "reference": "WTH-REF-001"}`, userID).Code)

		resp := doWalletRequest(router, "GET", "/wallet/transactions", "", userID)
		require.Equal(t, http.StatusOK, resp.Code)

		var envelope dto.Response
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
		require.NotNil(t, envelope.Meta)
		assert.Equal(t, int64(2), envelope.Meta.Total)
		assert.Len(t, envelope.Data.([]any), 2)
	})

	t.Run("rejects unknown type filter", func(t *testing.T) {
		router, userID := newWalletTestRouter(t)

		resp := doWalletRequest(router, "GET", "/wallet/transactions?type=BOGUS", "", userID)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}
