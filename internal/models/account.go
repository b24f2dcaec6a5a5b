package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccountTypeChecking   = "checking"
	AccountTypeSavings    = "savings"
	AccountTypeCreditCard = "credit_card"
	AccountTypeCash       = "cash"
	AccountTypeInvestment = "investment"
	AccountTypeLoan       = "loan"
	AccountTypeOther      = "other"
)

var (
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidCurrency    = errors.New("currency must be a 3-letter code")
)

// Account represents a financial account owned by a single user.
// Balance is maintained exclusively by the ledger service; no other
// code path may write it.
type Account struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Name              string           `gorm:"type:varchar(100);not null" json:"name"`
	AccountType       string           `gorm:"type:varchar(20);not null" json:"account_type"`
	Balance           decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	InitialBalance    decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"initial_balance"`
	Currency          string           `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	Institution       string           `gorm:"type:varchar(100)" json:"institution,omitempty"`
	CreditLimit       *decimal.Decimal `gorm:"type:decimal(15,2)" json:"credit_limit,omitempty"`
	Description       string           `gorm:"type:text" json:"description,omitempty"`
	Color             string           `gorm:"type:varchar(20)" json:"color,omitempty"`
	Icon              string           `gorm:"type:varchar(50)" json:"icon,omitempty"`
	IsActive          bool             `gorm:"not null" json:"is_active"`
	IncludeInNetWorth bool             `gorm:"not null" json:"include_in_net_worth"`
	CreatedAt         time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"not null" json:"updated_at"`
	DeletedAt         gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	if a.Currency == "" {
		a.Currency = "USD"
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return nil
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if a.Name == "" {
		return errors.New("account name is required")
	}

	if !IsValidAccountType(a.AccountType) {
		return ErrInvalidAccountType
	}

	if len(a.Currency) != 3 {
		return ErrInvalidCurrency
	}

	if a.CreditLimit != nil {
		if a.CreditLimit.LessThan(decimal.Zero) {
			return errors.New("credit limit cannot be negative")
		}

		// Business rule: only credit cards carry a credit limit
		if a.AccountType != AccountTypeCreditCard {
			return errors.New("credit limit is only valid for credit card accounts")
		}
	}

	return nil
}

// IsCreditCard returns true if the account is a credit card
func (a *Account) IsCreditCard() bool {
	return a.AccountType == AccountTypeCreditCard
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}

// IsValidAccountType checks if the account type is valid
func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCreditCard,
		AccountTypeCash, AccountTypeInvestment, AccountTypeLoan, AccountTypeOther:
		return true
	default:
		return false
	}
}
