package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome   = "income"
	TransactionTypeExpense  = "expense"
	TransactionTypeTransfer = "transfer"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
	ErrMissingTransferTarget  = errors.New("transfer requires a target account")
	ErrUnexpectedTarget       = errors.New("target account is only valid for transfers")
)

// Transaction represents a single ledger entry. Amount is always a positive
// magnitude; direction is derived from TransactionType. Type, source account
// and transfer target are immutable after creation.
type Transaction struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID                 uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID              uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID             *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	TransferToAccountID    *uuid.UUID      `gorm:"type:uuid;index" json:"transfer_to_account_id,omitempty"`
	TransactionType        string          `gorm:"type:varchar(10);not null" json:"transaction_type"`
	Amount                 decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date                   time.Time       `gorm:"not null;index" json:"date"`
	Description            string          `gorm:"type:varchar(255)" json:"description,omitempty"`
	Notes                  string          `gorm:"type:text" json:"notes,omitempty"`
	Reference              string          `gorm:"type:varchar(100)" json:"reference,omitempty"`
	Tags                   string          `gorm:"type:varchar(255)" json:"tags,omitempty"`
	RecurringTransactionID *uuid.UUID      `gorm:"type:uuid;index" json:"recurring_transaction_id,omitempty"`
	CreatedAt              time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	now := time.Now()
	if t.Date.IsZero() {
		t.Date = now
	}

	// Set timestamps if not already set (for tests)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if !IsValidTransactionType(t.TransactionType) {
		return ErrInvalidTransactionType
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.TransactionType == TransactionTypeTransfer {
		if t.TransferToAccountID == nil || *t.TransferToAccountID == uuid.Nil {
			return ErrMissingTransferTarget
		}
		if *t.TransferToAccountID == t.AccountID {
			return errors.New("cannot transfer to the same account")
		}
	} else if t.TransferToAccountID != nil {
		return ErrUnexpectedTarget
	}

	return nil
}

// IsTransfer returns true if the transaction moves money between two accounts
func (t *Transaction) IsTransfer() bool {
	return t.TransactionType == TransactionTypeTransfer
}

// SignedEffect returns the signed balance effect on the source account.
// Transfers additionally credit the target account with the raw amount.
func (t *Transaction) SignedEffect() decimal.Decimal {
	if t.TransactionType == TransactionTypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	default:
		return false
	}
}
