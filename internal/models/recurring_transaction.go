package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyBiWeekly  = "biweekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

var ErrInvalidFrequency = errors.New("invalid recurrence frequency")

// RecurringTransaction is a template from which a scheduler materializes
// future transactions. The scheduler itself runs as an external job; this
// model only tracks the schedule and the next due occurrence.
type RecurringTransaction struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID        *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	TransactionType   string          `gorm:"type:varchar(10);not null" json:"transaction_type"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description       string          `gorm:"type:varchar(255)" json:"description,omitempty"`
	Frequency         string          `gorm:"type:varchar(10);not null" json:"frequency"`
	FrequencyInterval int             `gorm:"not null;default:1" json:"frequency_interval"`
	StartDate         time.Time       `gorm:"not null" json:"start_date"`
	EndDate           *time.Time      `json:"end_date,omitempty"`
	NextOccurrence    *time.Time      `gorm:"index" json:"next_occurrence,omitempty"`
	IsActive          bool            `gorm:"not null" json:"is_active"`
	CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for RecurringTransaction
func (rt *RecurringTransaction) BeforeCreate(tx *gorm.DB) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}

	if rt.FrequencyInterval == 0 {
		rt.FrequencyInterval = 1
	}

	now := time.Now()
	if rt.CreatedAt.IsZero() {
		rt.CreatedAt = now
	}
	if rt.UpdatedAt.IsZero() {
		rt.UpdatedAt = now
	}

	return rt.Validate()
}

// BeforeUpdate hook for RecurringTransaction
func (rt *RecurringTransaction) BeforeUpdate(tx *gorm.DB) error {
	rt.UpdatedAt = time.Now()
	return nil
}

// Validate validates the recurring transaction fields
func (rt *RecurringTransaction) Validate() error {
	if rt.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if rt.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if !IsValidTransactionType(rt.TransactionType) {
		return ErrInvalidTransactionType
	}

	if rt.TransactionType == TransactionTypeTransfer {
		return errors.New("recurring transfers are not supported")
	}

	if rt.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !IsValidFrequency(rt.Frequency) {
		return ErrInvalidFrequency
	}

	if rt.FrequencyInterval < 1 {
		return errors.New("frequency interval must be at least 1")
	}

	if rt.StartDate.IsZero() {
		return errors.New("start date is required")
	}

	if rt.EndDate != nil && rt.EndDate.Before(rt.StartDate) {
		return errors.New("end date must not precede start date")
	}

	return nil
}

// NextAfter returns the occurrence that follows the given time according to
// the frequency and interval. It never returns a time at or before from.
func (rt *RecurringTransaction) NextAfter(from time.Time) time.Time {
	switch rt.Frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, rt.FrequencyInterval)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7*rt.FrequencyInterval)
	case FrequencyBiWeekly:
		return from.AddDate(0, 0, 14*rt.FrequencyInterval)
	case FrequencyMonthly:
		return from.AddDate(0, rt.FrequencyInterval, 0)
	case FrequencyQuarterly:
		return from.AddDate(0, 3*rt.FrequencyInterval, 0)
	case FrequencyYearly:
		return from.AddDate(rt.FrequencyInterval, 0, 0)
	default:
		return from.AddDate(0, rt.FrequencyInterval, 0)
	}
}

// FirstOccurrence computes the initial next-occurrence for a newly created
// template: the start date itself if it is still in the future, otherwise the
// first scheduled time after now. Returns nil when the schedule has already
// ended.
func (rt *RecurringTransaction) FirstOccurrence(now time.Time) *time.Time {
	next := rt.StartDate
	for !next.After(now) {
		next = rt.NextAfter(next)
	}

	if rt.EndDate != nil && next.After(*rt.EndDate) {
		return nil
	}

	return &next
}

// TableName returns the table name for RecurringTransaction
func (rt *RecurringTransaction) TableName() string {
	return "recurring_transactions"
}

// IsValidFrequency checks if the recurrence frequency is valid
func IsValidFrequency(frequency string) bool {
	switch frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiWeekly,
		FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	default:
		return false
	}
}
