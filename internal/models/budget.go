package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BudgetPeriodMonthly = "monthly"

	DefaultAlertThreshold = 80
)

var ErrInvalidBudgetPeriod = errors.New("invalid budget period")

// Budget caps spending for a category over a calendar month. At most one
// active monthly budget may exist per (user, category, month); the repository
// enforces this before insert.
type Budget struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name           string          `gorm:"type:varchar(100);not null" json:"name"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Period         string          `gorm:"type:varchar(10);not null;default:'monthly'" json:"period"`
	StartDate      time.Time       `gorm:"not null;index" json:"start_date"`
	EndDate        *time.Time      `json:"end_date,omitempty"`
	AlertThreshold int             `gorm:"not null;default:80" json:"alert_threshold"`
	SendAlerts     bool            `gorm:"not null" json:"send_alerts"`
	IsActive       bool            `gorm:"not null" json:"is_active"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Budget
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	if b.Period == "" {
		b.Period = BudgetPeriodMonthly
	}

	if b.AlertThreshold == 0 {
		b.AlertThreshold = DefaultAlertThreshold
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

// BeforeUpdate hook for Budget
func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now()
	return nil
}

// Validate validates the budget fields
func (b *Budget) Validate() error {
	if b.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if b.Name == "" {
		return errors.New("budget name is required")
	}

	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("budget amount must be positive")
	}

	if b.Period != BudgetPeriodMonthly {
		return ErrInvalidBudgetPeriod
	}

	if b.StartDate.IsZero() {
		return errors.New("start date is required")
	}

	if b.AlertThreshold < 1 || b.AlertThreshold > 100 {
		return errors.New("alert threshold must be between 1 and 100")
	}

	return nil
}

// Month returns the calendar month the budget applies to
func (b *Budget) Month() (year int, month time.Month) {
	return b.StartDate.Year(), b.StartDate.Month()
}

// TableName returns the table name for Budget
func (b *Budget) TableName() string {
	return "budgets"
}
