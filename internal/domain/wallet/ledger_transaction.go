package wallet

import (
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// TransactionType represents the type of ledger transaction
type TransactionType string

const (
	// TransactionTypeCredit represents money entering the wallet from outside (balance increase)
	TransactionTypeCredit TransactionType = "CREDIT"
	// TransactionTypeDebit represents a general charge against the wallet (balance decrease)
	TransactionTypeDebit TransactionType = "DEBIT"
	// TransactionTypeEscrowHold represents funds moved into escrow for an order (balance decrease)
	TransactionTypeEscrowHold TransactionType = "ESCROW_HOLD"
	// TransactionTypeEscrowRelease represents escrowed funds paid out to a seller (balance increase)
	TransactionTypeEscrowRelease TransactionType = "ESCROW_RELEASE"
	// TransactionTypeRefund represents escrowed funds returned to a buyer (balance increase)
	TransactionTypeRefund TransactionType = "REFUND"
	// TransactionTypeWithdrawal represents money leaving the wallet to an external account (balance decrease)
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeCredit,
		TransactionTypeDebit,
		TransactionTypeEscrowHold,
		TransactionTypeEscrowRelease,
		TransactionTypeRefund,
		TransactionTypeWithdrawal:
		return true
	}
	return false
}

// IsCredit returns true if this transaction type increases the balance
func (t TransactionType) IsCredit() bool {
	switch t {
	case TransactionTypeCredit, TransactionTypeEscrowRelease, TransactionTypeRefund:
		return true
	}
	return false
}

// IsDebit returns true if this transaction type decreases the balance
func (t TransactionType) IsDebit() bool {
	switch t {
	case TransactionTypeDebit, TransactionTypeEscrowHold, TransactionTypeWithdrawal:
		return true
	}
	return false
}

// LedgerTransaction is an immutable record of a wallet balance change.
// Once created it is never updated or deleted - corrections are made with
// new transactions. The Reference is a globally unique idempotency key.
type LedgerTransaction struct {
	shared.BaseEntity
	WalletID      uuid.UUID
	Type          TransactionType
	Amount        valueobject.Money // Always positive, direction determined by type
	BalanceBefore valueobject.Money // Balance before this transaction
	BalanceAfter  valueobject.Money // Balance after this transaction
	Reference     string
	Description   string
	Metadata      map[string]string
}

// NewLedgerTransaction creates a new ledger transaction.
// Debit-class transactions fail with INSUFFICIENT_FUNDS when the balance
// before the transaction does not cover the amount.
func NewLedgerTransaction(
	walletID uuid.UUID,
	txType TransactionType,
	amount valueobject.Money,
	balanceBefore valueobject.Money,
	reference string,
) (*LedgerTransaction, error) {
	if walletID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WALLET", "Wallet ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid ledger transaction type")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference cannot be empty")
	}

	var balanceAfter valueobject.Money
	var err error
	if txType.IsDebit() {
		insufficient, cmpErr := balanceBefore.LessThan(amount)
		if cmpErr != nil {
			return nil, shared.NewDomainError("INVALID_AMOUNT", cmpErr.Error())
		}
		if insufficient {
			return nil, shared.ErrInsufficientFunds
		}
		balanceAfter, err = balanceBefore.Subtract(amount)
	} else {
		balanceAfter, err = balanceBefore.Add(amount)
	}
	if err != nil {
		return nil, shared.NewDomainError("INVALID_AMOUNT", err.Error())
	}

	return &LedgerTransaction{
		BaseEntity:    shared.NewBaseEntity(),
		WalletID:      walletID,
		Type:          txType,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Reference:     reference,
	}, nil
}

// WithDescription sets a human-readable description
func (t *LedgerTransaction) WithDescription(description string) *LedgerTransaction {
	t.Description = description
	return t
}

// WithMetadata attaches contextual key/value pairs to the transaction
func (t *LedgerTransaction) WithMetadata(metadata map[string]string) *LedgerTransaction {
	t.Metadata = metadata
	return t
}

// SignedAmount returns the amount with sign based on transaction type.
// Positive for credit-class types, negative for debit-class types.
func (t *LedgerTransaction) SignedAmount() valueobject.Money {
	if t.Type.IsDebit() {
		return t.Amount.Negate()
	}
	return t.Amount
}

// BalanceChange returns the net balance change
func (t *LedgerTransaction) BalanceChange() valueobject.Money {
	return t.BalanceAfter.MustSubtract(t.BalanceBefore)
}

// DeriveBalance folds a wallet's transactions into its balance:
// sum of credit-class amounts minus sum of debit-class amounts.
func DeriveBalance(transactions []LedgerTransaction) valueobject.Money {
	balance := valueobject.ZeroNGN()
	for i := range transactions {
		balance = balance.MustAdd(transactions[i].SignedAmount())
	}
	return balance
}

// CreateCreditTransaction records money entering the wallet from outside
func CreateCreditTransaction(walletID uuid.UUID, amount, balanceBefore valueobject.Money, reference string) (*LedgerTransaction, error) {
	return NewLedgerTransaction(walletID, TransactionTypeCredit, amount, balanceBefore, reference)
}

// CreateDebitTransaction records a general charge against the wallet
func CreateDebitTransaction(walletID uuid.UUID, amount, balanceBefore valueobject.Money, reference string) (*LedgerTransaction, error) {
	return NewLedgerTransaction(walletID, TransactionTypeDebit, amount, balanceBefore, reference)
}

// CreateEscrowHoldTransaction records funds moved into escrow
func CreateEscrowHoldTransaction(walletID uuid.UUID, amount, balanceBefore valueobject.Money, reference string) (*LedgerTransaction, error) {
	return NewLedgerTransaction(walletID, TransactionTypeEscrowHold, amount, balanceBefore, reference)
}

// CreateEscrowReleaseTransaction records escrowed funds paid out to a seller
func CreateEscrowReleaseTransaction(walletID uuid.UUID, amount, balanceBefore valueobject.Money, reference string) (*LedgerTransaction, error) {
	return NewLedgerTransaction(walletID, TransactionTypeEscrowRelease, amount, balanceBefore, reference)
}

// CreateRefundTransaction records escrowed funds returned to a buyer
func CreateRefundTransaction(walletID uuid.UUID, amount, balanceBefore valueobject.Money, reference string) (*LedgerTransaction, error) {
	return NewLedgerTransaction(walletID, TransactionTypeRefund, amount, balanceBefore, reference)
}

// CreateWithdrawalTransaction records money leaving the wallet to an external account
func CreateWithdrawalTransaction(walletID uuid.UUID, amount, balanceBefore valueobject.Money, reference string) (*LedgerTransaction, error) {
	return NewLedgerTransaction(walletID, TransactionTypeWithdrawal, amount, balanceBefore, reference)
}
