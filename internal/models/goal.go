package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	GoalStatusInProgress = "in_progress"
	GoalStatusCompleted  = "completed"
	GoalStatusCancelled  = "cancelled"
	GoalStatusOnHold     = "on_hold"
)

var ErrInvalidGoalStatus = errors.New("invalid goal status")

// Goal represents a savings goal
type Goal struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string          `gorm:"type:varchar(100);not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"current_amount"`
	TargetDate    *time.Time      `json:"target_date,omitempty"`
	Status        string          `gorm:"type:varchar(20);not null;default:'in_progress'" json:"status"`
	Priority      int             `gorm:"default:0" json:"priority"`
	Icon          string          `gorm:"type:varchar(50)" json:"icon,omitempty"`
	Color         string          `gorm:"type:varchar(20)" json:"color,omitempty"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Goal
func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}

	if g.Status == "" {
		g.Status = GoalStatusInProgress
	}

	now := time.Now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	if g.UpdatedAt.IsZero() {
		g.UpdatedAt = now
	}

	return g.Validate()
}

// BeforeUpdate hook for Goal
func (g *Goal) BeforeUpdate(tx *gorm.DB) error {
	g.UpdatedAt = time.Now()
	return nil
}

// Validate validates the goal fields
func (g *Goal) Validate() error {
	if g.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if g.Name == "" {
		return errors.New("goal name is required")
	}

	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return errors.New("target amount must be positive")
	}

	if g.CurrentAmount.LessThan(decimal.Zero) {
		return errors.New("current amount cannot be negative")
	}

	if !IsValidGoalStatus(g.Status) {
		return ErrInvalidGoalStatus
	}

	return nil
}

// Progress returns the completion percentage, capped at 100
func (g *Goal) Progress() decimal.Decimal {
	if g.TargetAmount.IsZero() {
		return decimal.Zero
	}

	progress := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
	hundred := decimal.NewFromInt(100)
	if progress.GreaterThan(hundred) {
		return hundred
	}
	return progress
}

// TableName returns the table name for Goal
func (g *Goal) TableName() string {
	return "goals"
}

// IsValidGoalStatus checks if the goal status is valid
func IsValidGoalStatus(status string) bool {
	switch status {
	case GoalStatusInProgress, GoalStatusCompleted, GoalStatusCancelled, GoalStatusOnHold:
		return true
	default:
		return false
	}
}
