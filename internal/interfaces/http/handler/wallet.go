package handler

import (
	"time"

	walletapp "github.com/covu/backend/internal/application/wallet"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/wallet"
	"github.com/covu/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet and ledger API endpoints
type WalletHandler struct {
	BaseHandler
	ledgerService *walletapp.LedgerService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(ledgerService *walletapp.LedgerService) *WalletHandler {
	return &WalletHandler{
		ledgerService: ledgerService,
	}
}

// WalletResponse represents a wallet in API responses. The balance is
// derived from the ledger at read time, never stored.
type WalletResponse struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	Currency string  `json:"currency"`
	IsActive bool    `json:"is_active"`
	Balance  float64 `json:"balance"`
}

// WalletSummaryResponse represents the wallet's headline figures
type WalletSummaryResponse struct {
	Balance     float64 `json:"balance"`
	TotalEarned float64 `json:"total_earned"`
	TotalSpent  float64 `json:"total_spent"`
}

// TransactionResponse represents a ledger transaction in API responses
type TransactionResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	BalanceBefore float64   `json:"balance_before"`
	BalanceAfter  float64   `json:"balance_after"`
	Reference     string    `json:"reference"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DepositRequest represents a wallet funding request. The reference is
// the payment gateway's transaction reference, so a replayed webhook
// returns the original transaction instead of crediting twice.
type DepositRequest struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Reference string  `json:"reference" binding:"required,min=1,max=100"`
}

// WithdrawRequest represents a withdrawal to the user's bank account
type WithdrawRequest struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Reference string  `json:"reference" binding:"required,min=1,max=100"`
}

// GetWallet returns the caller's wallet with its derived balance
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}

	w, err := h.ledgerService.GetWallet(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	balance, err := h.ledgerService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toWalletResponse(w, balance.Amount().InexactFloat64()))
}

// GetSummary returns the caller's balance and lifetime earned/spent totals
func (h *WalletHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}

	summary, err := h.ledgerService.GetSummary(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, WalletSummaryResponse{
		Balance:     summary.Balance.Amount().InexactFloat64(),
		TotalEarned: summary.TotalEarned.Amount().InexactFloat64(),
		TotalSpent:  summary.TotalSpent.Amount().InexactFloat64(),
	})
}

// ListTransactions returns a page of the caller's ledger history.
// An optional type query parameter filters by transaction type.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}

	filter := listFilter(c)
	if txType := c.Query("type"); txType != "" {
		if !wallet.TransactionType(txType).IsValid() {
			h.BadRequest(c, "Unknown transaction type")
			return
		}
		filter.Filters["type"] = txType
	}

	page, err := h.ledgerService.ListTransactions(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]TransactionResponse, len(page.Items))
	for i := range page.Items {
		items[i] = toTransactionResponse(&page.Items[i])
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// Deposit credits the caller's wallet with externally collected funds
func (h *WalletHandler) Deposit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.ledgerService.Deposit(c.Request.Context(), walletapp.DepositRequest{
		UserID:    userID,
		Amount:    ngnFromFloat(req.Amount),
		Reference: req.Reference,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toTransactionResponse(tx))
}

// Withdraw debits the caller's wallet for a bank payout
func (h *WalletHandler) Withdraw(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.ledgerService.Withdraw(c.Request.Context(), walletapp.WithdrawRequest{
		UserID:    userID,
		Amount:    ngnFromFloat(req.Amount),
		Reference: req.Reference,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toTransactionResponse(tx))
}

func toWalletResponse(w *wallet.Wallet, balance float64) WalletResponse {
	return WalletResponse{
		ID:       w.ID.String(),
		UserID:   w.UserID.String(),
		Currency: string(w.Currency),
		IsActive: w.IsActive,
		Balance:  balance,
	}
}

func toTransactionResponse(tx *wallet.LedgerTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            tx.ID.String(),
		Type:          tx.Type.String(),
		Amount:        tx.Amount.Amount().InexactFloat64(),
		BalanceBefore: tx.BalanceBefore.Amount().InexactFloat64(),
		BalanceAfter:  tx.BalanceAfter.Amount().InexactFloat64(),
		Reference:     tx.Reference,
		Description:   tx.Description,
		CreatedAt:     tx.CreatedAt,
	}
}

// listFilter builds a shared.Filter from the standard pagination query
// parameters, falling back to defaults on bad input.
func listFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return filter
	}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	return filter
}
